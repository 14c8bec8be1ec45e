package projector

import (
	"testing"

	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records  []core.Record
	selected int
	title    string
}

func (f fakeSource) Records() []core.Record { return f.records }
func (f fakeSource) Title() string          { return f.title }
func (f fakeSource) Selected() (int, bool) {
	if f.selected < 0 {
		return -1, false
	}
	return f.selected, true
}

func rec(name string, g core.Geometry, mutate func(*core.Style)) core.Record {
	s := core.DefaultStyle()
	if mutate != nil {
		mutate(&s)
	}
	return core.Record{Name: name, Geometry: g, Style: s}
}

func TestList(t *testing.T) {
	src := fakeSource{
		records: []core.Record{
			rec("Circle 1", core.NewCircle(core.LatLng{}, 10), nil),
			rec("Polyline 1", core.NewPolyline([]core.LatLng{{}, {Lat: 1}}), func(s *core.Style) {
				s.LineDash = core.LineDashed
			}),
		},
		selected: 1,
	}

	rows := List(src)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Index: 0, Name: "Circle 1", Kind: core.KindCircle,
		FillColor: "#007bff", LineColor: "#000000", Opacity: 1, LineWeight: 2,
		LineDash: core.LineSolid, MarkerSize: 24, MarkerShape: core.MarkerCircle,
		Selected: false, FillEditable: true,
	}, rows[0])

	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, core.LineDashed, rows[1].LineDash)
	assert.True(t, rows[1].Selected)
	assert.False(t, rows[1].FillEditable)
}

func TestList_Empty(t *testing.T) {
	assert.Empty(t, List(fakeSource{selected: -1}))
}

func TestLegend_Empty(t *testing.T) {
	lg := LegendOf(fakeSource{selected: -1, title: "Trip"})
	assert.True(t, lg.Empty)
	assert.Equal(t, "Trip", lg.Title)
	assert.NotNil(t, lg.Entries)
	assert.Empty(t, lg.Entries)
}

func TestSwatchOf_Markers(t *testing.T) {
	tests := []struct {
		shape  core.MarkerShape
		radius string
		clip   string
	}{
		{core.MarkerCircle, "50%", ""},
		{core.MarkerSquare, "0%", ""},
		{core.MarkerTriangle, "", "polygon(50% 0%, 0% 100%, 100% 100%)"},
		{core.MarkerHexagon, "", "polygon(50% 0%, 100% 25%, 100% 75%, 50% 100%, 0% 75%, 0% 25%)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			sw := SwatchOf(rec("m", core.NewMarker(core.LatLng{}), func(s *core.Style) {
				s.MarkerShape = tt.shape
				s.MarkerSize = 16
				s.LineWeight = 3
				s.LineColor = "#ff0000"
			}))
			assert.Equal(t, 16, sw.Width)
			assert.Equal(t, 16, sw.Height)
			assert.Equal(t, "#007bff", sw.Background)
			assert.Equal(t, "3px solid #ff0000", sw.Border)
			assert.Equal(t, tt.radius, sw.BorderRadius)
			assert.Equal(t, tt.clip, sw.ClipPath)
		})
	}
}

func TestSwatchOf_Paths(t *testing.T) {
	line := SwatchOf(rec("l", core.NewPolyline(nil), func(s *core.Style) {
		s.LineDash = core.LineDotted
		s.Opacity = 0.5
	}))
	assert.Equal(t, Swatch{BorderTop: "2px solid #000000", BorderTopStyle: "dotted", Opacity: 0.5}, line)

	poly := SwatchOf(rec("p", core.NewPolygon(nil), func(s *core.Style) {
		s.LineDash = core.LineDashed
		s.Opacity = 0.4
	}))
	assert.Equal(t, Swatch{Background: "#007bff", Opacity: 0.4, Border: "2px solid #000000", BorderStyle: "dashed"}, poly)

	circle := SwatchOf(rec("c", core.NewCircle(core.LatLng{}, 1), nil))
	assert.Equal(t, Swatch{Background: "#007bff", Opacity: 1, BorderRadius: "50%"}, circle)
}

func TestLegend_Entries(t *testing.T) {
	src := fakeSource{
		records: []core.Record{
			rec("Camp", core.NewMarker(core.LatLng{}), nil),
			rec("Route", core.NewPolyline(nil), nil),
		},
		selected: -1,
	}
	lg := LegendOf(src)
	assert.False(t, lg.Empty)
	require.Len(t, lg.Entries, 2)
	assert.Equal(t, "Camp", lg.Entries[0].Name)
	assert.Equal(t, core.KindPolyline, lg.Entries[1].Kind)
}

func TestSwatch_CSS(t *testing.T) {
	sw := Swatch{Width: 24, Height: 24, Background: "#fff", Border: "2px solid #000", BorderRadius: "50%"}
	assert.Equal(t, "width: 24px; height: 24px; background-color: #fff; border: 2px solid #000; border-radius: 50%", sw.CSS())
	assert.Equal(t, "", Swatch{}.CSS())
}
