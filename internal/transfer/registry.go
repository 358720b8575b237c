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

// Package transfer moves data between local disk and the supported storage
// locations.  Handlers are looked up by scheme in a Registry that refuses to
// be built unless every supported scheme has exactly one handler.
package transfer

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/azavea/tilertwo/internal/location"
)

// Importer materializes the resource at source as a local file at dest.
type Importer interface {
	Import(ctx context.Context, source location.Location, dest string) error
}

// Exporter publishes the contents of a local directory to dest.
type Exporter interface {
	Export(ctx context.Context, sourceDir string, dest location.Location) error
}

type Direction string

const (
	Import Direction = "import"
	Export Direction = "export"
)

type Config struct {
	ImportSchemes location.SchemeSet
	ExportSchemes location.SchemeSet
	Importers     map[location.Scheme]Importer
	Exporters     map[location.Scheme]Exporter
}

// Registry maps schemes to handlers.  It is immutable once built.
type Registry struct {
	importSchemes location.SchemeSet
	exportSchemes location.SchemeSet
	importers     map[location.Scheme]Importer
	exporters     map[location.Scheme]Exporter
}

// New builds a registry, failing with a RegistryIncompleteError if the
// handler keys for either direction differ from the declared schemes.
func New(config Config) (*Registry, error) {
	if err := checkComplete(Import, config.ImportSchemes, config.Importers); err != nil {
		return nil, err
	}
	if err := checkComplete(Export, config.ExportSchemes, config.Exporters); err != nil {
		return nil, err
	}

	r := &Registry{
		importSchemes: slices.Clone(config.ImportSchemes),
		exportSchemes: slices.Clone(config.ExportSchemes),
		importers:     make(map[location.Scheme]Importer, len(config.Importers)),
		exporters:     make(map[location.Scheme]Exporter, len(config.Exporters)),
	}
	for scheme, handler := range config.Importers {
		r.importers[scheme] = handler
	}
	for scheme, handler := range config.Exporters {
		r.exporters[scheme] = handler
	}
	return r, nil
}

// Default builds the registry for every supported scheme.  The client is
// used for https imports.
func Default(client *http.Client) (*Registry, error) {
	objectStoreImporter := &BlobImporter{}
	objectStoreExporter := &BlobExporter{}

	return New(Config{
		ImportSchemes: location.ImportSchemes,
		ExportSchemes: location.ExportSchemes,
		Importers: map[location.Scheme]Importer{
			location.File:  &LocalImporter{},
			location.HTTPS: &HTTPImporter{Client: client},
			location.S3:    objectStoreImporter,
			location.GCS:   objectStoreImporter,
			location.Azure: objectStoreImporter,
		},
		Exporters: map[location.Scheme]Exporter{
			location.File:  &LocalExporter{},
			location.S3:    objectStoreExporter,
			location.GCS:   objectStoreExporter,
			location.Azure: objectStoreExporter,
		},
	})
}

func checkComplete[H any](direction Direction, declared location.SchemeSet, handlers map[location.Scheme]H) error {
	var missing []location.Scheme
	for _, scheme := range declared {
		if _, ok := handlers[scheme]; !ok {
			missing = append(missing, scheme)
		}
	}
	var extra []location.Scheme
	for scheme := range handlers {
		if !declared.Contains(scheme) {
			extra = append(extra, scheme)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	slices.Sort(missing)
	slices.Sort(extra)
	return &RegistryIncompleteError{Direction: direction, Declared: declared, Missing: missing, Extra: extra}
}

func (r *Registry) ImportSchemes() location.SchemeSet {
	return slices.Clone(r.importSchemes)
}

func (r *Registry) ExportSchemes() location.SchemeSet {
	return slices.Clone(r.exportSchemes)
}

func (r *Registry) Importer(scheme location.Scheme) (Importer, error) {
	handler, ok := r.importers[scheme]
	if !ok {
		return nil, &location.InvalidSchemeError{Direction: location.Source, Scheme: scheme, Allowed: r.importSchemes}
	}
	return handler, nil
}

func (r *Registry) Exporter(scheme location.Scheme) (Exporter, error) {
	handler, ok := r.exporters[scheme]
	if !ok {
		return nil, &location.InvalidSchemeError{Direction: location.Destination, Scheme: scheme, Allowed: r.exportSchemes}
	}
	return handler, nil
}

// Import resolves the handler for the source scheme and runs it.  Handler
// failures are returned as a TransferError.
func (r *Registry) Import(ctx context.Context, source location.Location, dest string) error {
	handler, err := r.Importer(source.Scheme)
	if err != nil {
		return err
	}
	if err := handler.Import(ctx, source, dest); err != nil {
		return &TransferError{Direction: Import, Scheme: source.Scheme, Location: source.String(), Err: err}
	}
	return nil
}

// Export resolves the handler for the destination scheme and runs it.
func (r *Registry) Export(ctx context.Context, sourceDir string, dest location.Location) error {
	handler, err := r.Exporter(dest.Scheme)
	if err != nil {
		return err
	}
	if err := handler.Export(ctx, sourceDir, dest); err != nil {
		return &TransferError{Direction: Export, Scheme: dest.Scheme, Location: dest.String(), Err: err}
	}
	return nil
}

type RegistryIncompleteError struct {
	Direction Direction
	Declared  location.SchemeSet
	Missing   []location.Scheme
	Extra     []location.Scheme
}

func (e *RegistryIncompleteError) Error() string {
	problems := []string{}
	if len(e.Missing) > 0 {
		problems = append(problems, fmt.Sprintf("no handler for %s", location.SchemeSet(e.Missing)))
	}
	if len(e.Extra) > 0 {
		problems = append(problems, fmt.Sprintf("handler for undeclared %s", location.SchemeSet(e.Extra)))
	}
	return fmt.Sprintf("%s handlers must match the supported schemes (%s): %s", e.Direction, e.Declared, strings.Join(problems, "; "))
}

type TransferError struct {
	Direction Direction
	Scheme    location.Scheme
	Location  string
	Err       error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s (%s) failed: %s", e.Direction, e.Location, e.Scheme, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
