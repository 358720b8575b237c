package command_test

import (
	"context"
	"encoding/json"
	"io/fs"

	"github.com/azavea/tilertwo/cmd/tilertwo/command"
	"github.com/azavea/tilertwo/internal/location"
)

func (s *Suite) TestInspectJSON() {
	cmd := &command.InspectCmd{
		Source: "file://" + s.path("in", "parcels.geojson"),
		Format: "json",
		Tmp:    s.path("tmp"),
	}

	s.Require().NoError(cmd.Run(context.Background(), s.registry))

	info := &command.InspectInfo{}
	s.Require().NoError(json.Unmarshal(s.readStdout(), info))

	s.Equal(s.path("in", "parcels.geojson"), info.Source)
	s.Equal(2, info.Features)
	s.Equal(map[string]int{"Point": 2}, info.GeometryTypes)
	s.Equal([]string{"owner", "zoning"}, info.Properties)
	s.InDeltaSlice([]float64{-75.16, 39.95, -75.10, 40.01}, info.Bbox, 1e-9)
}

func (s *Suite) TestInspectText() {
	cmd := &command.InspectCmd{
		Source:   "file://" + s.path("in", "parcels.geojson"),
		Format:   "text",
		Unpretty: true,
		Tmp:      s.path("tmp"),
	}

	s.Require().NoError(cmd.Run(context.Background(), s.registry))

	output := string(s.readStdout())
	s.Contains(output, "Features")
	s.Contains(output, "Point (2)")
	s.Contains(output, "owner, zoning")
	s.Contains(output, "[-75.16, 39.95, -75.1, 40.01]")
}

func (s *Suite) TestInspectInvalidFormat() {
	cmd := &command.InspectCmd{
		Source: "file://" + s.path("in", "parcels.csv"),
		Format: "json",
	}

	err := cmd.Run(context.Background(), s.registry)
	var formatErr *location.InvalidInputFormatError
	s.ErrorAs(err, &formatErr)
}

func (s *Suite) TestInspectMissing() {
	cmd := &command.InspectCmd{
		Source: "file://" + s.path("in", "missing.geojson"),
		Format: "json",
		Tmp:    s.path("tmp"),
	}

	err := cmd.Run(context.Background(), s.registry)
	s.ErrorIs(err, fs.ErrNotExist)
	s.ErrorContains(err, "import "+s.path("in", "missing.geojson")+" (file) failed")
	s.Empty(s.workspaces())
}
