// Package shape builds surface objects from semantic shape kinds and style
// parameters. Building is pure: the result is a surface.Spec the caller hands to the
// surface.
package shape

import (
	"fmt"

	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
)

// markerScale converts marker size units to degrees of latitude/longitude.
const markerScale = 10.0

// Factory builds surface specs for records.
type Factory struct {
	logger logging.Logger
}

// New creates a Factory.
func New(logger logging.Logger) *Factory {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Factory{logger: logger}
}

// Resolve returns s, or circle with a warning when s is not a known marker shape.
func (f *Factory) Resolve(s core.MarkerShape) core.MarkerShape {
	if s.Valid() {
		return s
	}
	f.logger.Warn("unknown marker shape, falling back to circle", "shape", string(s))
	return core.MarkerCircle
}

// Build returns the spec of a custom marker of the given shape at anchor. The spec
// carries the full style as its properties payload and is not editable.
func (f *Factory) Build(s core.MarkerShape, anchor core.LatLng, style core.Style) surface.Spec {
	style = style.WithDefaults()
	style.MarkerShape = f.Resolve(s)

	spec := surface.Spec{
		Style:    StyleFor(core.KindCustomMarker, style),
		Props:    &style,
		Editable: false,
	}

	if pts, ok := MarkerVertices(style.MarkerShape, anchor, style.MarkerSize); ok {
		spec.Shape = surface.ShapePolygon
		spec.Points = pts
		return spec
	}

	spec.Shape = surface.ShapePoint
	spec.Points = []core.LatLng{anchor}
	spec.Radius = float64(style.MarkerSize) / 2
	return spec
}

// BuildRecord returns the spec for an existing record, using its current geometry
// and style.
func (f *Factory) BuildRecord(rec core.Record) (surface.Spec, error) {
	style := rec.Style.WithDefaults()
	g := rec.Geometry

	switch g.Kind {
	case core.KindCustomMarker:
		return f.Build(style.MarkerShape, g.Anchor, style), nil
	case core.KindCircle:
		return surface.Spec{
			Shape:    surface.ShapeCircle,
			Points:   []core.LatLng{g.Center},
			Radius:   g.Radius,
			Style:    StyleFor(g.Kind, style),
			Props:    &style,
			Editable: true,
		}, nil
	case core.KindPolygon:
		return surface.Spec{
			Shape:    surface.ShapePolygon,
			Points:   clonePoints(g.Vertices),
			Style:    StyleFor(g.Kind, style),
			Props:    &style,
			Editable: true,
		}, nil
	case core.KindPolyline:
		return surface.Spec{
			Shape:    surface.ShapePolyline,
			Points:   clonePoints(g.Vertices),
			Style:    StyleFor(g.Kind, style),
			Props:    &style,
			Editable: true,
		}, nil
	}
	return surface.Spec{}, fmt.Errorf("build %q: %w", g.Kind, core.ErrUnrecognizedShape)
}

// MarkerVertices returns the polygon approximation of a square, triangle or hexagon
// marker centered at anchor. It reports false for circle markers, which are drawn as
// points. The result depends only on its inputs.
func MarkerVertices(s core.MarkerShape, anchor core.LatLng, size int) ([]core.LatLng, bool) {
	half := float64(size) / markerScale / 2
	lat, lng := anchor.Lat, anchor.Lng

	switch s {
	case core.MarkerSquare:
		return []core.LatLng{
			{Lat: lat - half, Lng: lng - half},
			{Lat: lat - half, Lng: lng + half},
			{Lat: lat + half, Lng: lng + half},
			{Lat: lat + half, Lng: lng - half},
		}, true
	case core.MarkerTriangle:
		return []core.LatLng{
			{Lat: lat + half, Lng: lng},
			{Lat: lat - half, Lng: lng + half},
			{Lat: lat - half, Lng: lng - half},
		}, true
	case core.MarkerHexagon:
		return []core.LatLng{
			{Lat: lat - half, Lng: lng},
			{Lat: lat - half/2, Lng: lng + half},
			{Lat: lat + half/2, Lng: lng + half},
			{Lat: lat + half, Lng: lng},
			{Lat: lat + half/2, Lng: lng - half},
			{Lat: lat - half/2, Lng: lng - half},
		}, true
	}
	return nil, false
}

// DashArray maps a line dash to the surface dash pattern.
func DashArray(d core.LineDash) string {
	switch d {
	case core.LineDashed:
		return "10,10"
	case core.LineDotted:
		return "2,6"
	default:
		return ""
	}
}

// StyleFor returns the surface style of a record of kind k. On filled kinds the
// record opacity is the fill opacity and the outline stays opaque; polylines get
// no fill and carry it on the stroke.
func StyleFor(k core.Kind, s core.Style) surface.PathStyle {
	ps := surface.PathStyle{
		Color:     s.LineColor,
		Opacity:   s.Opacity,
		Weight:    s.LineWeight,
		DashArray: DashArray(s.LineDash),
	}
	if k.Filled() {
		ps.Opacity = core.DefaultOpacity
		ps.FillColor = s.FillColor
		ps.FillOpacity = s.Opacity
		ps.Fill = true
	}
	return ps
}

func clonePoints(pts []core.LatLng) []core.LatLng {
	out := make([]core.LatLng, len(pts))
	copy(out, pts)
	return out
}
