package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/mapsketch/annotator/internal/config"
	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderer() *Renderer {
	return New(config.PreviewConfig{Width: 200, Height: 100, Padding: 10, Background: "#ffffff"}, logging.Nop())
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderer().Render(&buf, nil))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	r, g, b, _ := img.At(100, 50).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRender_FilledPolygon(t *testing.T) {
	square := surface.Object{
		Handle: 1,
		Shape:  surface.ShapePolygon,
		Points: []core.LatLng{{Lat: -1, Lng: -1}, {Lat: -1, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: -1}},
		Style: surface.PathStyle{
			Color: "#000000", FillColor: "#ff0000", FillOpacity: 1, Opacity: 1, Weight: 2, Fill: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer().Render(&buf, []surface.Object{square}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	r, g, b, _ := img.At(100, 50).RGBA()
	assert.Greater(t, r, uint32(0xf000))
	assert.Less(t, g, uint32(0x1000))
	assert.Less(t, b, uint32(0x1000))

	// outside the fitted square stays background
	r, g, b, _ = img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRender_MixedObjects(t *testing.T) {
	objs := []surface.Object{
		{Handle: 1, Shape: surface.ShapeCircle, Points: []core.LatLng{{Lat: 10, Lng: 10}}, Radius: 5000,
			Style: surface.PathStyle{Color: "#000000", FillColor: "#00ff00", FillOpacity: 0.5, Opacity: 1, Weight: 2, Fill: true}},
		{Handle: 2, Shape: surface.ShapePolyline, Points: []core.LatLng{{Lat: 10, Lng: 10}, {Lat: 10.2, Lng: 10.3}},
			Style: surface.PathStyle{Color: "#0000ff", Opacity: 1, Weight: 3, DashArray: "10,10"}},
		{Handle: 3, Shape: surface.ShapePoint, Points: []core.LatLng{{Lat: 10.1, Lng: 10.1}}, Radius: 12,
			Style: surface.PathStyle{Color: "#000000", FillColor: "#007bff", FillOpacity: 1, Opacity: 1, Weight: 2, DashArray: "2,6", Fill: true}},
		{Handle: 4, Shape: surface.ShapePolygon, Points: []core.LatLng{{}}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer().Render(&buf, objs))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}

func TestRender_SinglePoint(t *testing.T) {
	pt := surface.Object{Handle: 1, Shape: surface.ShapePoint, Points: []core.LatLng{{Lat: 48, Lng: 2}}, Radius: 12,
		Style: surface.PathStyle{Color: "#000000", FillColor: "#ff0000", FillOpacity: 1, Opacity: 1, Weight: 1, Fill: true}}

	var buf bytes.Buffer
	require.NoError(t, renderer().Render(&buf, []surface.Object{pt}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	r, g, _, _ := img.At(100, 50).RGBA()
	assert.Greater(t, r, uint32(0xf000))
	assert.Less(t, g, uint32(0x1000))
}

func TestNew_Defaults(t *testing.T) {
	r := New(config.PreviewConfig{Padding: 5000}, nil)
	assert.Equal(t, 1024, r.width)
	assert.Equal(t, 768, r.height)
	assert.Equal(t, 0, r.padding)
	assert.Equal(t, "#ffffff", r.background)
}

func TestParseDash(t *testing.T) {
	assert.Nil(t, ParseDash(""))
	assert.Nil(t, ParseDash("  "))
	assert.Equal(t, []float64{10, 10}, ParseDash("10,10"))
	assert.Equal(t, []float64{2, 6}, ParseDash("2, 6"))
	assert.Nil(t, ParseDash("a,b"))
	assert.Nil(t, ParseDash("-1,2"))
}
