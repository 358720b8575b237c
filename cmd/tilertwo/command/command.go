package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/azavea/tilertwo/internal/location"
	"github.com/azavea/tilertwo/internal/tools"
	"github.com/azavea/tilertwo/internal/transfer"
	log "github.com/sirupsen/logrus"
)

type Globals struct {
	LogLevel string `help:"Log level.  Possible values: ${enum}." enum:"debug, info, warn, error" default:"info" env:"TILERTWO_LOG_LEVEL"`
	Verbose  bool   `short:"v" help:"Log debug detail and let mb-util report progress." env:"TILERTWO_VERBOSE"`
}

var CLI struct {
	Globals

	Tile    TileCmd    `cmd:"" default:"withargs" help:"Generate static vector tiles from GeoJSON and publish them (the default command)."`
	Inspect InspectCmd `cmd:"" help:"Summarize the features in a GeoJSON source."`
	Version VersionCmd `cmd:"" help:"Print the version of this program."`
}

// Options configures the parser for CLI.  Flag values may start with a dash,
// so `--tippecanoe-opts "-z14 -pk"` works as well as the `=` form.
func Options() []kong.Option {
	return []kong.Option{
		kong.Name("tilertwo"),
		kong.Description("Generate vector tile pyramids from GeoJSON."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/tilertwo.json", "tilertwo.json"),
		kong.Vars{
			"import_schemes":  location.ImportSchemes.String(),
			"export_schemes":  location.ExportSchemes.String(),
			"tippecanoe_opts": tools.DefaultTippecanoeOptions,
		},
		kong.WithHyphenPrefixedParameters(true),
	}
}

// ConfigureLogging applies the log flags to the standard logger.  Logs go to
// stderr so stdout stays free for command output.
func (g *Globals) ConfigureLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if g.Verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
}

type CommandError struct {
	err error
}

func NewCommandError(format string, a ...any) error {
	return &CommandError{err: fmt.Errorf(format, a...)}
}

func (e *CommandError) Error() string {
	return e.err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.err
}

// describeError turns a failed run into the message shown to the operator.
func describeError(err error) error {
	var toolErr *tools.ExternalToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode < 0 {
		return NewCommandError("%w (is %s installed and on the PATH?)", err, toolErr.Tool)
	}
	var registryErr *transfer.RegistryIncompleteError
	if errors.As(err, &registryErr) {
		return NewCommandError("storage handlers are misconfigured: %w", err)
	}
	return NewCommandError("%w", err)
}
