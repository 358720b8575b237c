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

// Package pipeline turns a GeoJSON source into a published tile pyramid:
// import the data, run tippecanoe, extract static tiles with mb-util, and
// export the tiles.  The first failing step ends the run.
package pipeline

import (
	"context"
	"io"
	"os"

	"github.com/azavea/tilertwo/internal/location"
	"github.com/azavea/tilertwo/internal/tools"
	"github.com/azavea/tilertwo/internal/transfer"
	"github.com/azavea/tilertwo/internal/workspace"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Source      string
	Destination string
	// TempDir is the directory the working directory is created in.  The
	// platform temp directory is used when empty.
	TempDir string
	// SkipExport stops the run once the tile archive is written.
	SkipExport bool
	// NoClean keeps the working directory when the run ends.
	NoClean bool

	TippecanoeBinary  string
	TippecanoeOptions string
	MBUtilBinary      string
	MBUtilSilent      bool
}

type Pipeline struct {
	registry *transfer.Registry
	runner   tools.Runner
	logger   logrus.FieldLogger
}

func New(registry *transfer.Registry, runner tools.Runner, logger logrus.FieldLogger) *Pipeline {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Pipeline{registry: registry, runner: runner, logger: logger}
}

// Run executes a single run in its own working directory.  The directory is
// removed on every return path unless opts.NoClean is set, in which case the
// returned Result names it.  The Result is never nil.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{Stages: []Stage{Init}}
	logger := p.logger.WithField("run", uuid.NewString())

	ws, err := workspace.Create(opts.TempDir)
	if err != nil {
		result.advance(Failed)
		return result, err
	}
	logger = logger.WithField("workspace", ws.Dir())
	logger.Debug("created working directory")

	defer func() {
		if ws.Release(opts.NoClean) {
			result.Workspace = ws.Dir()
			if _, statErr := os.Stat(ws.Archive()); statErr == nil {
				result.Archive = ws.Archive()
			}
			logger.Info("keeping working directory")
			return
		}
		logger.Debug("removed working directory")
	}()

	if err := p.execute(ctx, opts, ws, result, logger); err != nil {
		logger.WithField("stage", result.Stage()).WithError(err).Debug("run failed")
		result.advance(Failed)
		return result, err
	}
	result.advance(Done)
	return result, nil
}

func (p *Pipeline) execute(ctx context.Context, opts Options, ws *workspace.Workspace, result *Result, logger logrus.FieldLogger) error {
	source, err := location.ParseSource(opts.Source, p.registry.ImportSchemes())
	if err != nil {
		return err
	}
	dest, err := location.ParseDestination(opts.Destination, p.registry.ExportSchemes())
	if err != nil {
		return err
	}
	tippecanoeOptions, err := tools.SplitOptions(opts.TippecanoeOptions)
	if err != nil {
		return err
	}
	result.advance(Validated)
	logger.WithFields(logrus.Fields{"source": source, "destination": dest}).Debug("validated locations")

	if err := p.registry.Import(ctx, source, ws.DataFile()); err != nil {
		return err
	}
	result.advance(Imported)
	logger.WithField("scheme", source.Scheme).Infof("copied %s to %s", source, ws.DataFile())

	tippecanoe := &tools.Tippecanoe{Binary: opts.TippecanoeBinary, Options: tippecanoeOptions}
	if err := tippecanoe.Run(ctx, p.runner, ws.Archive(), ws.DataFile()); err != nil {
		return err
	}
	result.advance(Tiled)
	logger.Infof("tippecanoe wrote %s", ws.Archive())

	if opts.SkipExport {
		if !opts.NoClean {
			logger.Warn("skipping export without --no-clean, the tile archive will be removed with the working directory")
		}
		logger.Info("skipping tile extraction and export")
		return nil
	}

	mbutil := &tools.MBUtil{Binary: opts.MBUtilBinary, Silent: opts.MBUtilSilent}
	if err := mbutil.Run(ctx, p.runner, ws.Archive(), ws.StaticTiles()); err != nil {
		return err
	}
	result.advance(Extracted)
	logger.Infof("mb-util wrote %s", ws.StaticTiles())

	if err := p.registry.Export(ctx, ws.StaticTiles(), dest); err != nil {
		return err
	}
	result.advance(Exported)
	logger.WithField("scheme", dest.Scheme).Infof("copied static tiles to %s", dest)
	return nil
}
