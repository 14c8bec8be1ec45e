package render

import (
	"testing"

	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/shape"
	"github.com/mapsketch/annotator/internal/surface"
	"github.com/mapsketch/annotator/internal/surface/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*memory.Surface, *model.Model, *Synchronizer) {
	t.Helper()
	surf := memory.New()
	m, err := model.New(surf, logging.Nop())
	require.NoError(t, err)
	sync, err := New(surf, shape.New(nil), logging.Nop())
	require.NoError(t, err)
	m.SetRefresher(model.RefresherFunc(func() { sync.Rebuild(m) }))
	return surf, m, sync
}

func TestNew_MissingPrerequisites(t *testing.T) {
	_, err := New(nil, shape.New(nil), nil)
	assert.ErrorIs(t, err, core.ErrMissingPrerequisite)
	_, err = New(memory.New(), nil, nil)
	assert.ErrorIs(t, err, core.ErrMissingPrerequisite)
}

func TestRebuild_RestylesPrimitivesInPlace(t *testing.T) {
	surf, m, _ := setup(t)

	h := surf.Create(surface.Spec{Shape: surface.ShapePolyline, Points: []core.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}})
	style := core.DefaultStyle()
	style.LineDash = core.LineDashed
	m.Insert(core.Record{Geometry: core.NewPolyline([]core.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}), Style: style, Handle: h})

	objs := surf.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, h, objs[0].Handle)
	assert.Equal(t, "10,10", objs[0].Style.DashArray)
	assert.False(t, objs[0].Style.Fill)
}

func TestRebuild_RegeneratesMarkers(t *testing.T) {
	surf, m, sync := setup(t)

	old := surf.Create(surface.Spec{Shape: surface.ShapePoint, Points: []core.LatLng{{Lat: 5, Lng: 5}}})
	style := core.DefaultStyle()
	style.MarkerShape = core.MarkerTriangle
	m.Insert(core.Record{Geometry: core.NewMarker(core.LatLng{Lat: 5, Lng: 5}), Style: style, Handle: old})

	rec, _ := m.At(0)
	assert.NotEqual(t, old, rec.Handle)
	_, ok := surf.Object(old)
	assert.False(t, ok, "old marker object removed")

	obj, ok := surf.Object(rec.Handle)
	require.True(t, ok)
	assert.Equal(t, surface.ShapePolygon, obj.Shape)
	assert.Len(t, obj.Points, 3)
	assert.False(t, obj.Editable)

	// rebuilding again swaps the object but keeps exactly one alive
	sync.Rebuild(m)
	again, _ := m.At(0)
	assert.NotEqual(t, rec.Handle, again.Handle)
	assert.Equal(t, 1, surf.Len())
	assert.Len(t, surf.Objects(), 1)
}

func TestRebuild_KeepsModelOrder(t *testing.T) {
	surf, m, _ := setup(t)

	a := surf.Create(surface.Spec{Shape: surface.ShapeCircle, Points: []core.LatLng{{}}, Radius: 10})
	b := surf.Create(surface.Spec{Shape: surface.ShapeCircle, Points: []core.LatLng{{}}, Radius: 20})
	m.Insert(core.Record{Geometry: core.NewCircle(core.LatLng{}, 10), Style: core.DefaultStyle(), Handle: a})
	m.Insert(core.Record{Geometry: core.NewMarker(core.LatLng{Lat: 1, Lng: 1}), Style: core.DefaultStyle()})
	m.Insert(core.Record{Geometry: core.NewCircle(core.LatLng{}, 20), Style: core.DefaultStyle(), Handle: b})

	objs := surf.Objects()
	require.Len(t, objs, 3)
	recs := m.Records()
	for i := range recs {
		assert.Equal(t, recs[i].Handle, objs[i].Handle)
	}
}

func TestRebuild_RecreatesMissingObjects(t *testing.T) {
	surf, m, sync := setup(t)

	h := surf.Create(surface.Spec{Shape: surface.ShapeCircle, Points: []core.LatLng{{}}, Radius: 10})
	m.Insert(core.Record{Geometry: core.NewCircle(core.LatLng{Lat: 3, Lng: 3}, 10), Style: core.DefaultStyle(), Handle: h})
	surf.Remove(h)

	sync.Rebuild(m)

	rec, _ := m.At(0)
	assert.NotEqual(t, h, rec.Handle)
	obj, ok := surf.Object(rec.Handle)
	require.True(t, ok)
	assert.Equal(t, core.LatLng{Lat: 3, Lng: 3}, obj.Points[0])
	assert.True(t, obj.Editable)
	assert.True(t, surf.InGroup(rec.Handle))
}

func TestRebuild_Empty(t *testing.T) {
	surf, m, sync := setup(t)
	h := surf.Create(surface.Spec{Shape: surface.ShapeCircle})
	require.NoError(t, surf.Add(h))

	sync.Rebuild(m)
	assert.Empty(t, surf.Objects())
}
