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

// Package location parses source and destination strings and checks them
// against the schemes each direction supports.
package location

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

type Scheme string

const (
	File  Scheme = "file"
	HTTPS Scheme = "https"
	S3    Scheme = "s3"
	GCS   Scheme = "gs"
	Azure Scheme = "azblob"
)

// IsObjectStore reports whether the scheme addresses a cloud bucket.
func (s Scheme) IsObjectStore() bool {
	return s == S3 || s == GCS || s == Azure
}

type SchemeSet []Scheme

func (s SchemeSet) Contains(scheme Scheme) bool {
	for _, candidate := range s {
		if candidate == scheme {
			return true
		}
	}
	return false
}

func (s SchemeSet) String() string {
	names := make([]string, len(s))
	for i, scheme := range s {
		names[i] = string(scheme)
	}
	return strings.Join(names, ", ")
}

var (
	ImportSchemes = SchemeSet{File, HTTPS, S3, GCS, Azure}
	ExportSchemes = SchemeSet{File, S3, GCS, Azure}
)

// ErrNoPath is the cause reported for a file location that has no path, such
// as "file://" or the opaque "file:data.geojson".
var ErrNoPath = errors.New("file locations need an absolute path, such as file:///path/to/data")

var DataExtensions = []string{".geojson", ".json"}

type Direction string

const (
	Source      Direction = "source"
	Destination Direction = "destination"
)

// Location is a parsed source or destination.  Path holds the filesystem
// path for file locations and the object key (without a leading slash) for
// object store locations.  URL is the full remote address for everything
// that is not a local file.
type Location struct {
	Raw    string
	Scheme Scheme
	Path   string
	URL    *url.URL
}

func (l Location) String() string {
	if l.Scheme == File {
		return l.Path
	}
	return l.Raw
}

// Parse splits a location string into its scheme and address without
// checking either against an allow list.
func Parse(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("failed to parse %q: %w", raw, err)
	}

	loc := Location{Raw: raw, Scheme: Scheme(strings.ToLower(u.Scheme))}
	switch {
	case loc.Scheme == File:
		loc.Path = u.Path
	case loc.Scheme.IsObjectStore():
		loc.URL = u
		loc.Path = strings.TrimPrefix(u.Path, "/")
	default:
		loc.URL = u
		loc.Path = u.Path
	}
	return loc, nil
}

// Classify parses raw and requires its scheme to be in allowed.
func Classify(raw string, direction Direction, allowed SchemeSet) (Location, error) {
	loc, err := Parse(raw)
	if err != nil {
		return Location{}, &InvalidSchemeError{Direction: direction, Location: raw, Allowed: allowed, Err: err}
	}
	if loc.Scheme == "" || !allowed.Contains(loc.Scheme) {
		return Location{}, &InvalidSchemeError{Direction: direction, Location: raw, Scheme: loc.Scheme, Allowed: allowed}
	}
	return loc, nil
}

// ParseSource classifies a source location and requires a GeoJSON path.  A
// file location without a path fails the same way.
func ParseSource(raw string, allowed SchemeSet) (Location, error) {
	loc, err := Classify(raw, Source, allowed)
	if err != nil {
		return Location{}, err
	}
	if !HasDataExtension(loc.Path) {
		return Location{}, &InvalidInputFormatError{Location: raw, Extensions: DataExtensions}
	}
	return loc, nil
}

// ParseDestination classifies a destination location.  File destinations
// must name a directory.
func ParseDestination(raw string, allowed SchemeSet) (Location, error) {
	loc, err := Classify(raw, Destination, allowed)
	if err != nil {
		return Location{}, err
	}
	if loc.Scheme == File && loc.Path == "" {
		return Location{}, &InvalidSchemeError{Direction: Destination, Location: raw, Scheme: loc.Scheme, Allowed: allowed, Err: ErrNoPath}
	}
	return loc, nil
}

func HasDataExtension(p string) bool {
	ext := path.Ext(p)
	for _, candidate := range DataExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
