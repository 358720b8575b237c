package tools_test

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/azavea/tilertwo/internal/tools"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	name string
	args []string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return nil
}

func TestSplitOptions(t *testing.T) {
	cases := []struct {
		options  string
		expected []string
	}{
		{options: tools.DefaultTippecanoeOptions, expected: []string{"-zg", "--drop-densest-as-needed"}},
		{options: `-l "parcel layer" -n 'my tiles'`, expected: []string{"-l", "parcel layer", "-n", "my tiles"}},
		{options: `-x name\ with\ spaces`, expected: []string{"-x", "name with spaces"}},
		{options: "", expected: []string{}},
	}

	for _, c := range cases {
		t.Run(c.options, func(t *testing.T) {
			tokens, err := tools.SplitOptions(c.options)
			require.NoError(t, err)
			assert.Equal(t, c.expected, tokens)
		})
	}
}

func TestSplitOptionsUnbalanced(t *testing.T) {
	_, err := tools.SplitOptions(`-l "unterminated`)
	require.Error(t, err)

	var optionsErr *tools.InvalidOptionsError
	assert.ErrorAs(t, err, &optionsErr)
}

func TestTippecanoeArgs(t *testing.T) {
	tippecanoe := &tools.Tippecanoe{Options: []string{"-zg", "--drop-densest-as-needed"}}
	runner := &recordingRunner{}

	require.NoError(t, tippecanoe.Run(context.Background(), runner, "/ws/out.mbtiles", "/ws/data.geojson"))
	assert.Equal(t, "tippecanoe", runner.name)
	assert.Equal(t, []string{"-o", "/ws/out.mbtiles", "-zg", "--drop-densest-as-needed", "/ws/data.geojson"}, runner.args)
}

func TestTippecanoeNoOptions(t *testing.T) {
	tippecanoe := &tools.Tippecanoe{Binary: "/opt/bin/tippecanoe"}
	runner := &recordingRunner{}

	require.NoError(t, tippecanoe.Run(context.Background(), runner, "out.mbtiles", "data.geojson"))
	assert.Equal(t, "/opt/bin/tippecanoe", runner.name)
	assert.Equal(t, []string{"-o", "out.mbtiles", "data.geojson"}, runner.args)
}

func TestMBUtilArgs(t *testing.T) {
	runner := &recordingRunner{}

	require.NoError(t, (&tools.MBUtil{}).Run(context.Background(), runner, "/ws/out.mbtiles", "/ws/static-tiles"))
	assert.Equal(t, "mb-util", runner.name)
	assert.Equal(t, []string{"--image_format=pbf", "/ws/out.mbtiles", "/ws/static-tiles"}, runner.args)

	require.NoError(t, (&tools.MBUtil{Silent: true}).Run(context.Background(), runner, "/ws/out.mbtiles", "/ws/static-tiles"))
	assert.Equal(t, []string{"--image_format=pbf", "--silent", "/ws/out.mbtiles", "/ws/static-tiles"}, runner.args)
}

func requireShell(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
}

func TestExecRunner(t *testing.T) {
	requireShell(t)

	stdout := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(logs)

	runner := &tools.ExecRunner{Stdout: stdout, Stderr: &bytes.Buffer{}, Logger: logger}
	require.NoError(t, runner.Run(context.Background(), "sh", "-c", "echo tiled"))

	assert.Equal(t, "tiled\n", stdout.String())
	assert.Contains(t, logs.String(), "+ sh -c 'echo tiled'")
}

func TestExecRunnerExitCode(t *testing.T) {
	requireShell(t)

	runner := &tools.ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := runner.Run(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)

	var toolErr *tools.ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "sh", toolErr.Tool)
	assert.Equal(t, 3, toolErr.ExitCode)
	assert.EqualError(t, err, "sh failed with exit code 3")
}

func TestExecRunnerMissingBinary(t *testing.T) {
	runner := &tools.ExecRunner{}
	err := runner.Run(context.Background(), "tilertwo-no-such-tool")

	var toolErr *tools.ExternalToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, -1, toolErr.ExitCode)
	assert.ErrorContains(t, err, "failed to run tilertwo-no-such-tool")
}
