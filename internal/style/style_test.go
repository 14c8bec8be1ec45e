package style

import (
	"testing"

	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/render"
	"github.com/mapsketch/annotator/internal/shape"
	"github.com/mapsketch/annotator/internal/surface"
	"github.com/mapsketch/annotator/internal/surface/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*memory.Surface, *model.Model, *Applier, *int) {
	t.Helper()
	surf := memory.New()
	m, err := model.New(surf, nil)
	require.NoError(t, err)
	f := shape.New(nil)
	sync, err := render.New(surf, f, nil)
	require.NoError(t, err)

	refreshes := 0
	m.SetRefresher(model.RefresherFunc(func() {
		refreshes++
		sync.Rebuild(m)
	}))

	a, err := New(m, surf, f, logging.Nop())
	require.NoError(t, err)
	return surf, m, a, &refreshes
}

func params() Params {
	return Params{
		FillColor:   "#ff00ff",
		LineColor:   "#00ffff",
		Opacity:     0.25,
		LineDash:    core.LineDotted,
		LineWeight:  5,
		MarkerSize:  10,
		MarkerShape: core.MarkerSquare,
	}
}

func TestNew_MissingPrerequisites(t *testing.T) {
	surf := memory.New()
	m, _ := model.New(surf, nil)
	_, err := New(nil, surf, shape.New(nil), nil)
	assert.ErrorIs(t, err, core.ErrMissingPrerequisite)
	_, err = New(m, nil, shape.New(nil), nil)
	assert.ErrorIs(t, err, core.ErrMissingPrerequisite)
	_, err = New(m, surf, nil, nil)
	assert.ErrorIs(t, err, core.ErrMissingPrerequisite)
}

func TestApply_NoSelection(t *testing.T) {
	surf, m, a, refreshes := setup(t)
	h := surf.Create(surface.Spec{Shape: surface.ShapeCircle, Points: []core.LatLng{{}}, Radius: 5})
	m.Insert(core.Record{Geometry: core.NewCircle(core.LatLng{}, 5), Style: core.DefaultStyle(), Handle: h})
	before, _ := m.At(0)

	err := a.Apply(params())
	assert.ErrorIs(t, err, core.ErrInvalidIndex)

	after, _ := m.At(0)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, *refreshes)
}

func TestApply_Polygon(t *testing.T) {
	surf, m, a, _ := setup(t)
	ring := []core.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}}
	h := surf.Create(surface.Spec{Shape: surface.ShapePolygon, Points: ring})
	m.Insert(core.Record{Geometry: core.NewPolygon(ring), Style: core.DefaultStyle(), Handle: h})
	require.NoError(t, m.Select(0))

	require.NoError(t, a.Apply(params()))

	rec, _ := m.At(0)
	assert.Equal(t, h, rec.Handle, "restyled in place")
	assert.Equal(t, "#ff00ff", rec.Style.FillColor)
	assert.Equal(t, "#00ffff", rec.Style.LineColor)
	assert.Equal(t, 0.25, rec.Style.Opacity)
	assert.Equal(t, core.LineDotted, rec.Style.LineDash)
	assert.Equal(t, 5, rec.Style.LineWeight)
	assert.Equal(t, core.DefaultMarkerSize, rec.Style.MarkerSize, "marker fields untouched")
	assert.Equal(t, core.MarkerCircle, rec.Style.MarkerShape)

	obj, _ := surf.Object(h)
	assert.Equal(t, "2,6", obj.Style.DashArray)
	assert.Equal(t, "#ff00ff", obj.Style.FillColor)
	require.NotNil(t, obj.Props)
	assert.Equal(t, rec.Style, *obj.Props)
}

func TestApply_PolylineKeepsFill(t *testing.T) {
	surf, m, a, _ := setup(t)
	line := []core.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}
	h := surf.Create(surface.Spec{Shape: surface.ShapePolyline, Points: line})
	m.Insert(core.Record{Geometry: core.NewPolyline(line), Style: core.DefaultStyle(), Handle: h})
	require.NoError(t, m.Select(0))

	for _, fill := range []string{"#ff0000", "", "#123456"} {
		p := params()
		p.FillColor = fill
		require.NoError(t, a.Apply(p))

		rec, _ := m.At(0)
		assert.Equal(t, core.DefaultFillColor, rec.Style.FillColor)
		assert.Equal(t, "#00ffff", rec.Style.LineColor)
	}
}

func TestApply_MarkerShapeChange(t *testing.T) {
	surf, m, a, _ := setup(t)
	anchor := core.LatLng{Lat: 10, Lng: 20}
	f := shape.New(nil)
	spec := f.Build(core.MarkerCircle, anchor, core.DefaultStyle())
	h := surf.Create(spec)
	m.Insert(core.Record{Geometry: core.NewMarker(anchor), Style: *spec.Props, Handle: h})
	require.NoError(t, m.Select(0))

	require.NoError(t, a.Apply(params()))

	rec, _ := m.At(0)
	assert.Equal(t, core.MarkerSquare, rec.Style.MarkerShape)
	assert.Equal(t, 10, rec.Style.MarkerSize)
	assert.Equal(t, anchor, rec.Geometry.Anchor)

	obj, ok := surf.Object(rec.Handle)
	require.True(t, ok)
	assert.Equal(t, surface.ShapePolygon, obj.Shape)
	require.Len(t, obj.Points, 4)

	var lat, lng float64
	for _, p := range obj.Points {
		lat += p.Lat
		lng += p.Lng
	}
	assert.InDelta(t, anchor.Lat, lat/4, 1e-9)
	assert.InDelta(t, anchor.Lng, lng/4, 1e-9)

	assert.Len(t, surf.Objects(), 1)
	assert.Equal(t, 1, surf.Len(), "old marker objects are gone")
	assert.False(t, obj.Editable)
}

func TestApply_ZeroParamsTakeDefaults(t *testing.T) {
	surf, m, a, _ := setup(t)
	h := surf.Create(surface.Spec{Shape: surface.ShapeCircle, Points: []core.LatLng{{}}, Radius: 5})
	m.Insert(core.Record{Geometry: core.NewCircle(core.LatLng{}, 5), Style: core.DefaultStyle(), Handle: h})
	require.NoError(t, m.Select(0))

	require.NoError(t, a.Apply(Params{FillColor: "#111111", Opacity: 0.5}))

	rec, _ := m.At(0)
	assert.Equal(t, core.LineSolid, rec.Style.LineDash)
	assert.Equal(t, 2, rec.Style.LineWeight)
	assert.Equal(t, "#000000", rec.Style.LineColor)
}

func TestApply_Refreshes(t *testing.T) {
	surf, m, a, refreshes := setup(t)
	h := surf.Create(surface.Spec{Shape: surface.ShapeCircle, Points: []core.LatLng{{}}, Radius: 5})
	m.Insert(core.Record{Geometry: core.NewCircle(core.LatLng{}, 5), Style: core.DefaultStyle(), Handle: h})
	require.NoError(t, m.Select(0))

	require.NoError(t, a.Apply(params()))
	assert.Equal(t, 2, *refreshes)
}

func TestFromStyle(t *testing.T) {
	s := core.DefaultStyle()
	p := FromStyle(s)
	assert.Equal(t, s, p.Merge(core.KindCustomMarker, core.Style{}))
}
