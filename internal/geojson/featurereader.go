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

package geojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	orbjson "github.com/paulmach/orb/geojson"
)

// FeatureReader streams features from a FeatureCollection without loading
// the whole collection.  A single Feature or a bare Geometry is read as a
// collection of one.
type FeatureReader struct {
	decoder    *json.Decoder
	collection bool
	done       bool
}

func NewFeatureReader(input io.Reader) *FeatureReader {
	return &FeatureReader{
		decoder: json.NewDecoder(input),
	}
}

// Read returns the next feature or io.EOF when there are no more.
func (r *FeatureReader) Read() (*orbjson.Feature, error) {
	if r.done {
		return nil, io.EOF
	}
	if r.collection {
		return r.readFeature()
	}

	token, err := r.decoder.Token()
	if err == io.EOF {
		r.done = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	delim, ok := token.(json.Delim)
	if !ok || delim != json.Delim('{') {
		return nil, fmt.Errorf("expected a JSON object, got %v", token)
	}

	members := map[string]json.RawMessage{}
	for {
		keyToken, keyErr := r.decoder.Token()
		if keyErr != nil {
			return nil, unexpectedEOF(keyErr)
		}

		if delim, ok := keyToken.(json.Delim); ok && delim == json.Delim('}') {
			r.done = true
			return featureFromMembers(members)
		}

		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token: %v", keyToken)
		}

		if key == "features" {
			if err := expectDelim(r.decoder, '['); err != nil {
				return nil, fmt.Errorf("expected an array of features: %w", err)
			}
			r.collection = true
			return r.readFeature()
		}

		if _, duplicate := members[key]; duplicate {
			return nil, fmt.Errorf("found duplicate %s", key)
		}
		var value json.RawMessage
		if err := r.decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("trouble parsing %s: %w", key, err)
		}
		members[key] = value
	}
}

func (r *FeatureReader) readFeature() (*orbjson.Feature, error) {
	if !r.decoder.More() {
		r.done = true
		if err := expectDelim(r.decoder, ']'); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	feature := &orbjson.Feature{}
	if err := r.decoder.Decode(feature); err != nil {
		return nil, fmt.Errorf("trouble parsing feature: %w", err)
	}
	return feature, nil
}

func featureFromMembers(members map[string]json.RawMessage) (*orbjson.Feature, error) {
	rawType, ok := members["type"]
	if !ok {
		return nil, errors.New("expected a FeatureCollection, a Feature, or a Geometry object")
	}
	var geojsonType string
	if err := json.Unmarshal(rawType, &geojsonType); err != nil {
		return nil, fmt.Errorf("unexpected type: %s", rawType)
	}

	data, err := json.Marshal(members)
	if err != nil {
		return nil, err
	}

	switch geojsonType {
	case "FeatureCollection":
		return nil, io.EOF
	case "Feature":
		return orbjson.UnmarshalFeature(data)
	default:
		geometry, err := orbjson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("trouble parsing geometry: %w", err)
		}
		return orbjson.NewFeature(geometry.Geometry()), nil
	}
}

func expectDelim(decoder *json.Decoder, expected json.Delim) error {
	token, err := decoder.Token()
	if err != nil {
		return unexpectedEOF(err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != expected {
		return fmt.Errorf("expected %s, got %v", expected, token)
	}
	return nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
