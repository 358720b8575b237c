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

// Package tools builds and runs the external programs that generate and
// extract tiles.
package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
	"github.com/google/shlex"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTippecanoe        = "tippecanoe"
	DefaultTippecanoeOptions = "-zg --drop-densest-as-needed"
	DefaultMBUtil            = "mb-util"
)

// Runner runs an external program to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type ExternalToolError struct {
	Tool     string
	ExitCode int
	Err      error
}

func (e *ExternalToolError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("failed to run %s: %s", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s failed with exit code %d", e.Tool, e.ExitCode)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

type InvalidOptionsError struct {
	Options string
	Err     error
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("could not split options %q: %s", e.Options, e.Err)
}

func (e *InvalidOptionsError) Unwrap() error {
	return e.Err
}

// SplitOptions tokenizes a user supplied option string with shell quoting
// rules.  The tokens are passed through as-is.
func SplitOptions(options string) ([]string, error) {
	tokens, err := shlex.Split(options)
	if err != nil {
		return nil, &InvalidOptionsError{Options: options, Err: err}
	}
	return tokens, nil
}

// ExecRunner runs programs as child processes.  Output goes to the
// configured writers (the process stdout and stderr by default) and the
// command line is logged before it runs.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger logrus.FieldLogger
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithField("tool", name).Info("+ " + shellescape.QuoteCommand(cmd.Args))

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExternalToolError{Tool: name, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return &ExternalToolError{Tool: name, ExitCode: -1, Err: err}
}
