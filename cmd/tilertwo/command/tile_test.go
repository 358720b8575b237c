package command_test

import (
	"context"
	"errors"
	"os"

	"github.com/azavea/tilertwo/cmd/tilertwo/command"
	"github.com/azavea/tilertwo/internal/location"
	"github.com/azavea/tilertwo/internal/tools"
)

func (s *Suite) tileCmd() *command.TileCmd {
	return &command.TileCmd{
		Source:         "file://" + s.path("in", "parcels.geojson"),
		Destination:    "file://" + s.path("out", "tiles"),
		Tmp:            s.path("tmp"),
		TippecanoeOpts: tools.DefaultTippecanoeOptions,
		TippecanoeBin:  tools.DefaultTippecanoe,
		MbutilBin:      tools.DefaultMBUtil,
	}
}

func (s *Suite) workspaces() []os.DirEntry {
	entries, err := os.ReadDir(s.path("tmp"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	s.Require().NoError(err)
	return entries
}

func (s *Suite) TestTileLocal() {
	runner := &fakeRunner{}
	cmd := s.tileCmd()

	s.Require().NoError(cmd.Run(context.Background(), &command.Globals{}, s.registry, runner))

	s.Equal([]string{"tippecanoe", "mb-util"}, runner.names)
	s.FileExists(s.path("out", "tiles", "2", "1", "1.pbf"))
	s.Empty(s.workspaces())
}

func (s *Suite) TestTilePlainHTTPSource() {
	runner := &fakeRunner{}
	cmd := s.tileCmd()
	cmd.Source = s.server.URL + "/parcels.geojson"

	err := cmd.Run(context.Background(), &command.Globals{}, s.registry, runner)

	// the test server speaks plain http, which is not a supported scheme
	var schemeErr *location.InvalidSchemeError
	s.Require().ErrorAs(err, &schemeErr)
	s.Empty(runner.names)
}

func (s *Suite) TestTileInvalidScheme() {
	runner := &fakeRunner{}
	cmd := s.tileCmd()
	cmd.Source = "ftp://example.com/parcels.geojson"

	err := cmd.Run(context.Background(), &command.Globals{}, s.registry, runner)

	var commandErr *command.CommandError
	s.Require().ErrorAs(err, &commandErr)
	var schemeErr *location.InvalidSchemeError
	s.Require().ErrorAs(err, &schemeErr)
	s.ErrorContains(err, `source scheme "ftp" is not supported`)
	s.Empty(runner.names)
	s.NoDirExists(s.path("out", "tiles"))
	s.Empty(s.workspaces())
}

func (s *Suite) TestTileMissingTool() {
	runner := &fakeRunner{}
	cmd := s.tileCmd()
	cmd.TippecanoeBin = "/nowhere/tippecanoe"

	err := cmd.Run(context.Background(), &command.Globals{}, s.registry, runner)

	var toolErr *tools.ExternalToolError
	s.Require().ErrorAs(err, &toolErr)
	s.ErrorContains(err, "is /nowhere/tippecanoe installed and on the PATH?")
	s.Empty(s.workspaces())
}

func (s *Suite) TestTileSkipExportNoClean() {
	runner := &fakeRunner{}
	cmd := s.tileCmd()
	cmd.SkipExport = true
	cmd.NoClean = true

	s.Require().NoError(cmd.Run(context.Background(), &command.Globals{}, s.registry, runner))

	s.Equal([]string{"tippecanoe"}, runner.names)
	s.NoDirExists(s.path("out", "tiles"))

	workspaces := s.workspaces()
	s.Require().Len(workspaces, 1)
	s.FileExists(s.path("tmp", workspaces[0].Name(), "out.mbtiles"))
	s.NoDirExists(s.path("tmp", workspaces[0].Name(), "static-tiles"))
}
