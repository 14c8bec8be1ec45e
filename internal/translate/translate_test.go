package translate

import (
	"testing"

	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/shape"
	"github.com/mapsketch/annotator/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromObject(t *testing.T) {
	p := core.LatLng{Lat: 1, Lng: 2}
	tri := []core.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}}

	tests := []struct {
		name string
		obj  surface.Object
		want core.Geometry
	}{
		{"circle", surface.Object{Shape: surface.ShapeCircle, Points: []core.LatLng{p}, Radius: 40}, core.NewCircle(p, 40)},
		{"polygon", surface.Object{Shape: surface.ShapePolygon, Points: tri}, core.NewPolygon(tri)},
		{"polyline", surface.Object{Shape: surface.ShapePolyline, Points: tri[:2]}, core.NewPolyline(tri[:2])},
		{"point", surface.Object{Shape: surface.ShapePoint, Points: []core.LatLng{p}}, core.NewMarker(p)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.obj.Handle = 9
			rec, err := FromObject(tt.obj)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Geometry)
			assert.Equal(t, core.Handle(9), rec.Handle)
			assert.Empty(t, rec.Name)
		})
	}
}

func TestFromObject_Unrecognized(t *testing.T) {
	tests := []surface.Object{
		{Shape: surface.ShapeUnknown, Points: []core.LatLng{{}}},
		{Shape: surface.ShapePolygon, Points: []core.LatLng{{}, {}}},
		{Shape: surface.ShapePolyline, Points: []core.LatLng{{}}},
		{Shape: surface.ShapeCircle},
		{Shape: surface.ShapePoint},
	}
	for _, obj := range tests {
		_, err := FromObject(obj)
		assert.ErrorIs(t, err, core.ErrUnrecognizedShape, obj.Shape.String())
	}
}

func TestFromObject_CopiesPoints(t *testing.T) {
	pts := []core.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}
	rec, err := FromObject(surface.Object{Shape: surface.ShapePolyline, Points: pts})
	require.NoError(t, err)

	pts[0].Lat = 5
	assert.Equal(t, 0.0, rec.Geometry.Vertices[0].Lat)
}

func TestAnchor(t *testing.T) {
	a, err := Anchor(surface.Object{Shape: surface.ShapePolygon, Points: []core.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 4, Lng: 2}, {Lat: 4, Lng: 0}}})
	require.NoError(t, err)
	assert.Equal(t, core.LatLng{Lat: 2, Lng: 1}, a)

	_, err = Anchor(surface.Object{Shape: surface.ShapePolyline, Points: []core.LatLng{{}, {}}})
	assert.ErrorIs(t, err, core.ErrUnrecognizedShape)
}

func TestPosition_KindMismatch(t *testing.T) {
	_, err := Position(surface.Object{Shape: surface.ShapeCircle, Points: []core.LatLng{{}}, Radius: 1}, core.KindPolygon)
	assert.ErrorIs(t, err, core.ErrUnrecognizedShape)
}

func TestRoundTrip_Primitives(t *testing.T) {
	f := shape.New(logging.Nop())
	objs := []surface.Object{
		{Shape: surface.ShapeCircle, Points: []core.LatLng{{Lat: 48.1, Lng: 11.5}}, Radius: 321.5},
		{Shape: surface.ShapePolygon, Points: []core.LatLng{{Lat: 0, Lng: 0}, {Lat: 0.1, Lng: 0.3}, {Lat: 0.2, Lng: -0.1}}},
		{Shape: surface.ShapePolyline, Points: []core.LatLng{{Lat: 3, Lng: 4}, {Lat: 5, Lng: 6}}},
	}

	for _, obj := range objs {
		rec, err := FromObject(obj)
		require.NoError(t, err)
		rec.Style = core.DefaultStyle()

		spec, err := f.BuildRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, obj.Shape, spec.Shape)
		assert.InDeltaSlice(t, flatten(obj.Points), flatten(spec.Points), 1e-12)
		assert.InDelta(t, obj.Radius, spec.Radius, 1e-12)
	}
}

func TestRoundTrip_Markers(t *testing.T) {
	f := shape.New(logging.Nop())
	anchor := core.LatLng{Lat: 40.7128, Lng: -74.006}

	for _, s := range core.MarkerShapes {
		t.Run(string(s), func(t *testing.T) {
			style := core.DefaultStyle()
			style.MarkerShape = s
			style.MarkerSize = 10

			first := f.Build(s, anchor, style)
			obj := surface.Object{Shape: first.Shape, Points: first.Points, Radius: first.Radius}

			g, err := Position(obj, core.KindCustomMarker)
			require.NoError(t, err)
			assert.InDelta(t, anchor.Lat, g.Anchor.Lat, 1e-9)
			assert.InDelta(t, anchor.Lng, g.Anchor.Lng, 1e-9)

			// same anchor, same style: identical polygon
			exact, err := f.BuildRecord(core.Record{Geometry: core.NewMarker(anchor), Style: style})
			require.NoError(t, err)
			assert.Equal(t, first.Points, exact.Points)
			assert.Equal(t, first.Radius, exact.Radius)

			recovered, err := f.BuildRecord(core.Record{Geometry: g, Style: style})
			require.NoError(t, err)
			assert.InDeltaSlice(t, flatten(first.Points), flatten(recovered.Points), 1e-9)
		})
	}
}

func flatten(pts []core.LatLng) []float64 {
	out := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		out = append(out, p.Lat, p.Lng)
	}
	return out
}
