package command_test

import (
	"github.com/alecthomas/kong"
	"github.com/azavea/tilertwo/cmd/tilertwo/command"
	"github.com/azavea/tilertwo/internal/tools"
)

type tileCLI struct {
	command.Globals

	Tile command.TileCmd `cmd:"" default:"withargs"`
}

func (s *Suite) parseTile(args ...string) *tileCLI {
	cli := &tileCLI{}
	parser, err := kong.New(cli, command.Options()...)
	s.Require().NoError(err)
	_, err = parser.Parse(args)
	s.Require().NoError(err)
	return cli
}

func (s *Suite) TestTippecanoeOptsDefault() {
	cli := s.parseTile("file:///in/data.geojson", "file:///out/tiles")
	s.Equal(tools.DefaultTippecanoeOptions, cli.Tile.TippecanoeOpts)
	s.Equal("file:///in/data.geojson", cli.Tile.Source)
	s.Equal("file:///out/tiles", cli.Tile.Destination)
}

func (s *Suite) TestTippecanoeOptsLeadingDash() {
	cli := s.parseTile("tile", "file:///in/data.geojson", "file:///out/tiles", "--tippecanoe-opts", "-z14 -pk")
	s.Equal("-z14 -pk", cli.Tile.TippecanoeOpts)
}

func (s *Suite) TestTippecanoeOptsEqualsForm() {
	cli := s.parseTile("tile", "--tippecanoe-opts=-zg -l parcels", "file:///in/data.geojson", "file:///out/tiles")
	s.Equal("-zg -l parcels", cli.Tile.TippecanoeOpts)
}

func (s *Suite) TestTileShortFlags() {
	cli := s.parseTile("tile", "-s", "-n", "-t", "/scratch", "file:///in/data.geojson", "file:///out/tiles")
	s.True(cli.Tile.SkipExport)
	s.True(cli.Tile.NoClean)
	s.Equal("/scratch", cli.Tile.Tmp)
}
