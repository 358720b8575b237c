// Copyright 2023 Planet Labs PBC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"context"

	"github.com/azavea/tilertwo/internal/pipeline"
	"github.com/azavea/tilertwo/internal/tools"
	"github.com/azavea/tilertwo/internal/transfer"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

type TileCmd struct {
	Source         string `arg:"" name:"source" help:"GeoJSON to tile, including the scheme, such as file:///absolute/path/to.geojson.  Supported schemes: ${import_schemes}."`
	Destination    string `arg:"" name:"destination" help:"Where static tiles are written, including the scheme, such as file:///absolute/path/to/tiles.  Supported schemes: ${export_schemes}."`
	SkipExport     bool   `short:"s" help:"Skip tile extraction and export and just run tippecanoe." env:"TILERTWO_SKIP_EXPORT"`
	NoClean        bool   `short:"n" help:"Keep the temporary working directory instead of removing it." env:"TILERTWO_NO_CLEAN"`
	Tmp            string `short:"t" help:"Directory to create the temporary working directory in.  Defaults to the system temp directory." type:"path" env:"TILERTWO_TMP"`
	TippecanoeOpts string `name:"tippecanoe-opts" help:"Options passed to tippecanoe, split with shell quoting rules." default:"${tippecanoe_opts}" env:"TILERTWO_TIPPECANOE_OPTS"`
	TippecanoeBin  string `help:"Path to the tippecanoe executable." default:"tippecanoe" env:"TILERTWO_TIPPECANOE_BIN"`
	MbutilBin      string `name:"mbutil-bin" help:"Path to the mb-util executable." default:"mb-util" env:"TILERTWO_MBUTIL_BIN"`
}

func (c *TileCmd) Run(ctx context.Context, globals *Globals, registry *transfer.Registry, runner tools.Runner) error {
	p := pipeline.New(registry, runner, log.StandardLogger())

	result, err := p.Run(ctx, pipeline.Options{
		Source:            c.Source,
		Destination:       c.Destination,
		TempDir:           c.Tmp,
		SkipExport:        c.SkipExport,
		NoClean:           c.NoClean,
		TippecanoeBinary:  c.TippecanoeBin,
		TippecanoeOptions: c.TippecanoeOpts,
		MBUtilBinary:      c.MbutilBin,
		MBUtilSilent:      !globals.Verbose,
	})

	if result.Workspace != "" {
		color.Yellow("Working directory kept at %s", result.Workspace)
	}
	if err != nil {
		return describeError(err)
	}

	if c.SkipExport {
		if result.Archive != "" {
			color.Green(" ✓ Tile archive written to %s", result.Archive)
		} else {
			color.Green(" ✓ Tile archive generated, export skipped")
		}
		return nil
	}
	color.Green(" ✓ Static tiles written to %s", c.Destination)
	return nil
}
