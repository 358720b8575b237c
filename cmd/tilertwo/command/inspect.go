package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/azavea/tilertwo/internal/geojson"
	"github.com/azavea/tilertwo/internal/location"
	"github.com/azavea/tilertwo/internal/transfer"
	"github.com/azavea/tilertwo/internal/workspace"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

type InspectCmd struct {
	Source   string `arg:"" name:"source" help:"GeoJSON to inspect, including the scheme.  Supported schemes: ${import_schemes}."`
	Format   string `help:"Report format.  Possible values: ${enum}." enum:"text, json" default:"text"`
	Unpretty bool   `help:"No colors in text output, no newlines and indentation in JSON output."`
	Tmp      string `short:"t" help:"Directory to stage remote sources in.  Defaults to the system temp directory." type:"path" env:"TILERTWO_TMP"`
}

type InspectInfo struct {
	Source string `json:"source"`
	*geojson.Summary
}

func (c *InspectCmd) Run(ctx context.Context, registry *transfer.Registry) error {
	source, err := location.ParseSource(c.Source, registry.ImportSchemes())
	if err != nil {
		return describeError(err)
	}

	ws, err := workspace.Create(c.Tmp)
	if err != nil {
		return describeError(err)
	}
	defer ws.Release(false)

	if err := registry.Import(ctx, source, ws.DataFile()); err != nil {
		return describeError(err)
	}

	input, err := os.Open(ws.DataFile())
	if err != nil {
		return NewCommandError("failed to read from %q: %w", ws.DataFile(), err)
	}
	defer input.Close()

	summary, err := geojson.Summarize(input)
	if err != nil {
		return NewCommandError("trouble reading %s as GeoJSON: %w", source, err)
	}

	info := &InspectInfo{Source: source.String(), Summary: summary}
	if c.Format == "json" {
		return c.formatJSON(info)
	}
	return c.formatText(info)
}

func (c *InspectCmd) formatJSON(info *InspectInfo) error {
	encoder := json.NewEncoder(os.Stdout)
	if !c.Unpretty {
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
	}
	if err := encoder.Encode(info); err != nil {
		return NewCommandError("failed to encode summary: %w", err)
	}
	return nil
}

func (c *InspectCmd) formatText(info *InspectInfo) error {
	if c.Unpretty {
		color.NoColor = true
	}

	out := os.Stdout
	tbl := table.NewWriter()
	if term.IsTerminal(int(out.Fd())) {
		width, _, err := term.GetSize(int(out.Fd()))
		if err == nil {
			tbl.SetAllowedRowLength(width)
		}
	}
	tbl.SetColumnConfigs([]table.ColumnConfig{{
		Number:           2,
		WidthMax:         60,
		WidthMaxEnforcer: text.WrapSoft,
	}})

	types := make([]string, 0, len(info.GeometryTypes))
	for _, name := range info.GeometryTypeNames() {
		types = append(types, fmt.Sprintf("%s (%d)", name, info.GeometryTypes[name]))
	}

	bounds := "none"
	if info.Bbox != nil {
		values := make([]string, len(info.Bbox))
		for i, v := range info.Bbox {
			values[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		bounds = fmt.Sprintf("[%s]", strings.Join(values, ", "))
	}

	source := info.Source
	if !c.Unpretty {
		source = text.Bold.Sprint(source)
	}
	tbl.AppendHeader(table.Row{"Source", source})
	tbl.AppendRow(table.Row{"Features", info.Features})
	tbl.AppendRow(table.Row{"Geometry Types", strings.Join(types, ", ")})
	tbl.AppendRow(table.Row{"Properties", strings.Join(info.Properties, ", ")})
	tbl.AppendRow(table.Row{"Bounds", bounds})

	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	tbl.SetStyle(style)
	tbl.SetOutputMirror(out)
	tbl.Render()

	if info.Features == 0 {
		color.Yellow("\nThe source has no features, tippecanoe will produce an empty tileset.\n")
	}
	return nil
}
