// Package projector derives read-only list and legend views from the model.
package projector

import (
	"fmt"
	"strings"

	"github.com/mapsketch/annotator/internal/model/core"
)

// Source is the model as seen by the projectors.
type Source interface {
	Records() []core.Record
	Selected() (int, bool)
	Title() string
}

// Row is one list panel entry.
type Row struct {
	Index        int              `json:"index"`
	Name         string           `json:"name"`
	Kind         core.Kind        `json:"kind"`
	FillColor    string           `json:"fillColor"`
	LineColor    string           `json:"lineColor"`
	Opacity      float64          `json:"opacity"`
	LineWeight   int              `json:"lineWeight"`
	LineDash     core.LineDash    `json:"lineDash"`
	MarkerSize   int              `json:"markerSize"`
	MarkerShape  core.MarkerShape `json:"markerShape"`
	Selected     bool             `json:"selected"`
	FillEditable bool             `json:"fillEditable"`
}

// List returns one row per record in model order.
func List(src Source) []Row {
	sel, hasSel := src.Selected()
	recs := src.Records()

	rows := make([]Row, len(recs))
	for i, r := range recs {
		rows[i] = Row{
			Index:        i,
			Name:         r.Name,
			Kind:         r.Kind(),
			FillColor:    r.Style.FillColor,
			LineColor:    r.Style.LineColor,
			Opacity:      r.Style.Opacity,
			LineWeight:   r.Style.LineWeight,
			LineDash:     r.Style.LineDash,
			MarkerSize:   r.Style.MarkerSize,
			MarkerShape:  r.Style.MarkerShape,
			Selected:     hasSel && sel == i,
			FillEditable: r.Kind().Filled(),
		}
	}
	return rows
}

// Swatch describes the legend symbol of a record as box properties.
// Empty fields are not set.
type Swatch struct {
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	Background     string  `json:"background,omitempty"`
	Opacity        float64 `json:"opacity,omitempty"`
	Border         string  `json:"border,omitempty"`
	BorderStyle    string  `json:"borderStyle,omitempty"`
	BorderTop      string  `json:"borderTop,omitempty"`
	BorderTopStyle string  `json:"borderTopStyle,omitempty"`
	BorderRadius   string  `json:"borderRadius,omitempty"`
	ClipPath       string  `json:"clipPath,omitempty"`
}

// CSS renders the swatch as an inline style declaration list.
func (s Swatch) CSS() string {
	var decls []string
	add := func(prop, val string) {
		if val != "" {
			decls = append(decls, prop+": "+val)
		}
	}
	if s.Width > 0 {
		add("width", fmt.Sprintf("%dpx", s.Width))
	}
	if s.Height > 0 {
		add("height", fmt.Sprintf("%dpx", s.Height))
	}
	add("background-color", s.Background)
	if s.Opacity > 0 {
		add("opacity", fmt.Sprintf("%g", s.Opacity))
	}
	add("border", s.Border)
	add("border-style", s.BorderStyle)
	add("border-top", s.BorderTop)
	add("border-top-style", s.BorderTopStyle)
	add("border-radius", s.BorderRadius)
	add("clip-path", s.ClipPath)
	return strings.Join(decls, "; ")
}

// Entry is one legend line.
type Entry struct {
	Name   string    `json:"name"`
	Kind   core.Kind `json:"kind"`
	Swatch Swatch    `json:"swatch"`
}

// Legend is the legend panel content. Empty is set when there is nothing to show.
type Legend struct {
	Title   string  `json:"title"`
	Empty   bool    `json:"empty"`
	Entries []Entry `json:"entries"`
}

// LegendOf returns the legend for src.
func LegendOf(src Source) Legend {
	recs := src.Records()
	lg := Legend{Title: src.Title(), Empty: len(recs) == 0, Entries: make([]Entry, 0, len(recs))}
	for _, r := range recs {
		lg.Entries = append(lg.Entries, Entry{Name: r.Name, Kind: r.Kind(), Swatch: SwatchOf(r)})
	}
	return lg
}

// SwatchOf returns the legend symbol of one record.
func SwatchOf(r core.Record) Swatch {
	s := r.Style.WithDefaults()
	border := fmt.Sprintf("%dpx solid %s", s.LineWeight, s.LineColor)

	switch r.Kind() {
	case core.KindCustomMarker:
		sw := Swatch{
			Width:      s.MarkerSize,
			Height:     s.MarkerSize,
			Background: s.FillColor,
			Border:     border,
		}
		switch s.MarkerShape {
		case core.MarkerCircle:
			sw.BorderRadius = "50%"
		case core.MarkerTriangle:
			sw.ClipPath = "polygon(50% 0%, 0% 100%, 100% 100%)"
		case core.MarkerHexagon:
			sw.ClipPath = "polygon(50% 0%, 100% 25%, 100% 75%, 50% 100%, 0% 75%, 0% 25%)"
		default:
			sw.BorderRadius = "0%"
		}
		return sw
	case core.KindPolyline:
		opacity := s.Opacity
		if opacity == 0 {
			opacity = core.DefaultOpacity
		}
		return Swatch{
			BorderTop:      border,
			BorderTopStyle: borderStyle(s.LineDash),
			Opacity:        opacity,
		}
	case core.KindPolygon:
		return Swatch{
			Background:  s.FillColor,
			Opacity:     s.Opacity,
			Border:      border,
			BorderStyle: borderStyle(s.LineDash),
		}
	case core.KindCircle:
		return Swatch{
			Background:   s.FillColor,
			Opacity:      s.Opacity,
			BorderRadius: "50%",
		}
	}
	return Swatch{Background: s.FillColor, Opacity: s.Opacity}
}

func borderStyle(d core.LineDash) string {
	switch d {
	case core.LineDashed, core.LineDotted:
		return string(d)
	default:
		return string(core.LineSolid)
	}
}
