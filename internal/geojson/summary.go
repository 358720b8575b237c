package geojson

import (
	"io"
	"slices"

	"github.com/paulmach/orb"
)

// NullGeometry is the geometry type recorded for features without one.
const NullGeometry = "null"

type Summary struct {
	Features      int            `json:"features"`
	GeometryTypes map[string]int `json:"geometryTypes"`
	Properties    []string       `json:"properties"`
	Bbox          []float64      `json:"bbox,omitempty"`
}

// Summarize reads every feature and reports counts, property names, and
// the bounding box of all geometries.
func Summarize(input io.Reader) (*Summary, error) {
	summary := &Summary{GeometryTypes: map[string]int{}, Properties: []string{}}
	properties := map[string]bool{}
	var bound *orb.Bound

	reader := NewFeatureReader(input)
	for {
		feature, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		summary.Features += 1

		for name := range feature.Properties {
			properties[name] = true
		}

		if feature.Geometry == nil {
			summary.GeometryTypes[NullGeometry] += 1
			continue
		}
		summary.GeometryTypes[feature.Geometry.GeoJSONType()] += 1

		b := feature.Geometry.Bound()
		if bound == nil {
			bound = &b
		} else {
			union := bound.Union(b)
			bound = &union
		}
	}

	for name := range properties {
		summary.Properties = append(summary.Properties, name)
	}
	slices.Sort(summary.Properties)

	if bound != nil {
		summary.Bbox = []float64{bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()}
	}
	return summary, nil
}

// GeometryTypeNames returns the geometry types in the summary, sorted.
func (s *Summary) GeometryTypeNames() []string {
	names := make([]string, 0, len(s.GeometryTypes))
	for name := range s.GeometryTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
