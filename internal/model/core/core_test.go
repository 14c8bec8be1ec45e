package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyle_WithDefaults(t *testing.T) {
	s := Style{FillColor: "#ff0000", Opacity: 0.5}.WithDefaults()

	assert.Equal(t, "#ff0000", s.FillColor)
	assert.Equal(t, 0.5, s.Opacity)
	assert.Equal(t, LineSolid, s.LineDash)
	assert.Equal(t, 2, s.LineWeight)
	assert.Equal(t, "#000000", s.LineColor)
	assert.Equal(t, 24, s.MarkerSize)
}

func TestStyle_WithDefaults_KeepsSetValues(t *testing.T) {
	in := Style{LineDash: LineDotted, LineWeight: 5, LineColor: "#123456", MarkerSize: 10}
	assert.Equal(t, in, in.WithDefaults())
}

func TestKind(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, Kind("Rectangle").Valid())
	assert.False(t, KindPolyline.Filled())
	assert.True(t, KindPolygon.Filled())
}

func TestMarkerShape_Valid(t *testing.T) {
	for _, s := range MarkerShapes {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, MarkerShape("star").Valid())
}

func TestGeometry_CloneIsDeep(t *testing.T) {
	ring := []LatLng{{1, 1}, {1, 2}, {2, 2}}
	g := NewPolygon(ring)
	ring[0].Lat = 99

	c := g.Clone()
	c.Vertices[1].Lng = 42

	assert.Equal(t, 1.0, g.Vertices[0].Lat)
	assert.Equal(t, 2.0, g.Vertices[1].Lng)
}
