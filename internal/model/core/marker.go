// internal/model/core/marker.go
package core

import "slices"

// LineDash is the stroke pattern of a record. It is mapped to a dash array only at render time.
type LineDash string

const (
	LineSolid  LineDash = "solid"
	LineDashed LineDash = "dashed"
	LineDotted LineDash = "dotted"
)

// MarkerShape is the silhouette of a custom marker.
type MarkerShape string

const (
	MarkerCircle   MarkerShape = "circle"
	MarkerSquare   MarkerShape = "square"
	MarkerTriangle MarkerShape = "triangle"
	MarkerHexagon  MarkerShape = "hexagon"
)

// MarkerShapes lists the marker tools in toolbar order.
var MarkerShapes = []MarkerShape{MarkerCircle, MarkerSquare, MarkerTriangle, MarkerHexagon}

// Valid reports whether s is a known marker shape.
func (s MarkerShape) Valid() bool {
	return slices.Contains(MarkerShapes, s)
}

// Default style values applied once at insertion.
const (
	DefaultFillColor  = "#007bff"
	DefaultLineColor  = "#000000"
	DefaultOpacity    = 1.0
	DefaultLineWeight = 2
	DefaultLineDash   = LineSolid
	DefaultMarkerSize = 24
)

// Style is the visual parameter set of a record. It doubles as the custom-properties
// payload attached to surface objects.
type Style struct {
	FillColor   string      `json:"fillColor"`
	LineColor   string      `json:"lineColor"`
	Opacity     float64     `json:"opacity"`
	LineWeight  int         `json:"lineWeight"`
	LineDash    LineDash    `json:"lineDash"`
	MarkerSize  int         `json:"markerSize"`
	MarkerShape MarkerShape `json:"markerShape"`
}

// WithDefaults fills unset line and marker fields. Fill color and opacity are left alone.
func (s Style) WithDefaults() Style {
	if s.LineDash == "" {
		s.LineDash = DefaultLineDash
	}
	if s.LineWeight <= 0 {
		s.LineWeight = DefaultLineWeight
	}
	if s.LineColor == "" {
		s.LineColor = DefaultLineColor
	}
	if s.MarkerSize <= 0 {
		s.MarkerSize = DefaultMarkerSize
	}
	return s
}

// DefaultStyle is the style given to freshly drawn annotations.
func DefaultStyle() Style {
	return Style{
		FillColor:   DefaultFillColor,
		LineColor:   DefaultLineColor,
		Opacity:     DefaultOpacity,
		LineWeight:  DefaultLineWeight,
		LineDash:    DefaultLineDash,
		MarkerSize:  DefaultMarkerSize,
		MarkerShape: MarkerCircle,
	}
}
