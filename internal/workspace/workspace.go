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

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DataFileName    = "data.geojson"
	ArchiveName     = "out.mbtiles"
	StaticTilesName = "static-tiles"

	dirPattern = "tilertwo-"
)

type CreationError struct {
	BaseDir string
	Err     error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create a working directory in %q: %s", e.BaseDir, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// Workspace is a temporary directory owned by a single run.
type Workspace struct {
	dir string
}

// Create makes a new, empty, uniquely named directory under baseDir.  The base
// directory is created if it does not exist.  An empty baseDir means the
// platform temp directory.
func Create(baseDir string) (*Workspace, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, &CreationError{BaseDir: baseDir, Err: err}
	}
	dir, err := os.MkdirTemp(baseDir, dirPattern)
	if err != nil {
		return nil, &CreationError{BaseDir: baseDir, Err: err}
	}
	return &Workspace{dir: dir}, nil
}

func (w *Workspace) Dir() string {
	return w.dir
}

// DataFile is where the imported GeoJSON is staged.
func (w *Workspace) DataFile() string {
	return filepath.Join(w.dir, DataFileName)
}

// Archive is where the tile generator writes its MBTiles output.
func (w *Workspace) Archive() string {
	return filepath.Join(w.dir, ArchiveName)
}

// StaticTiles is the directory the extractor writes individual tiles into.
func (w *Workspace) StaticTiles() string {
	return filepath.Join(w.dir, StaticTilesName)
}

// Release removes the workspace unless keep is true, in which case the
// directory is left in place for the caller.  It reports whether the
// directory was kept.
func (w *Workspace) Release(keep bool) bool {
	if keep {
		return true
	}
	Destroy(w.dir)
	return false
}

// Destroy removes dir and everything under it.  Errors are ignored, so it is
// safe to call on a path that has already been removed.
func Destroy(dir string) {
	if dir == "" {
		return
	}
	_ = os.RemoveAll(dir)
}
