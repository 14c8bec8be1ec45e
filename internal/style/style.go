// Package style applies style-panel parameters to the selected record.
package style

import (
	"fmt"

	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/shape"
	"github.com/mapsketch/annotator/internal/surface"
)

// Params is the validated parameter set delivered by the style panel.
type Params struct {
	FillColor   string           `json:"fillColor"`
	LineColor   string           `json:"lineColor"`
	Opacity     float64          `json:"opacity"`
	LineDash    core.LineDash    `json:"lineDash"`
	LineWeight  int              `json:"lineWeight"`
	MarkerSize  int              `json:"markerSize"`
	MarkerShape core.MarkerShape `json:"markerShape"`
}

// FromStyle returns the parameters that reproduce s.
func FromStyle(s core.Style) Params {
	return Params{
		FillColor:   s.FillColor,
		LineColor:   s.LineColor,
		Opacity:     s.Opacity,
		LineDash:    s.LineDash,
		LineWeight:  s.LineWeight,
		MarkerSize:  s.MarkerSize,
		MarkerShape: s.MarkerShape,
	}
}

// Merge returns s updated with p for a record of kind k. Marker shape and size only
// apply to custom markers; fill color never applies to polylines.
func (p Params) Merge(k core.Kind, s core.Style) core.Style {
	if k == core.KindCustomMarker {
		if p.MarkerShape != "" {
			s.MarkerShape = p.MarkerShape
		}
		s.MarkerSize = p.MarkerSize
	}
	if k.Filled() {
		s.FillColor = p.FillColor
	}
	s.LineColor = p.LineColor
	s.Opacity = p.Opacity
	s.LineDash = p.LineDash
	s.LineWeight = p.LineWeight
	return s.WithDefaults()
}

// Applier applies parameters to the model's selected record.
type Applier struct {
	model   *model.Model
	surf    surface.Surface
	factory *shape.Factory
	logger  logging.Logger
}

// New creates an Applier.
func New(m *model.Model, surf surface.Surface, factory *shape.Factory, logger logging.Logger) (*Applier, error) {
	switch {
	case m == nil:
		return nil, fmt.Errorf("style: model: %w", core.ErrMissingPrerequisite)
	case surf == nil:
		return nil, fmt.Errorf("style: rendering surface: %w", core.ErrMissingPrerequisite)
	case factory == nil:
		return nil, fmt.Errorf("style: shape factory: %w", core.ErrMissingPrerequisite)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Applier{model: m, surf: surf, factory: factory, logger: logger}, nil
}

// Apply updates the selected record's style and its surface object, then refreshes.
// Without a selection it logs and does nothing.
func (a *Applier) Apply(p Params) error {
	idx, ok := a.model.Selected()
	if !ok {
		a.logger.Error("style applied without selection")
		return fmt.Errorf("apply style: no selection: %w", core.ErrInvalidIndex)
	}
	rec, _ := a.model.At(idx)

	style := p.Merge(rec.Kind(), rec.Style)
	if rec.Kind() == core.KindCustomMarker {
		style.MarkerShape = a.factory.Resolve(style.MarkerShape)
	}
	if err := a.model.SetStyle(idx, style); err != nil {
		return err
	}

	if rec.Kind() == core.KindCustomMarker {
		spec := a.factory.Build(style.MarkerShape, rec.Geometry.Anchor, style)
		h := a.surf.Create(spec)
		if err := a.model.Rebind(idx, h); err != nil {
			a.surf.Remove(h)
			return err
		}
		if err := a.surf.Add(h); err != nil {
			return err
		}
		if err := a.surf.SetEditable(h, false); err != nil {
			return err
		}
	} else {
		if err := a.surf.SetProps(rec.Handle, style); err != nil {
			a.logger.Warn("selected record has no surface object", "index", idx, "error", err)
		} else if err := a.surf.SetStyle(rec.Handle, shape.StyleFor(rec.Kind(), style)); err != nil {
			return err
		}
	}

	a.logger.Debug("style applied", "index", idx, "name", rec.Name)
	a.model.Refresh()
	return nil
}
