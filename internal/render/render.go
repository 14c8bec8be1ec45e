// Package render redraws the rendering surface from the model. Every rebuild is a
// full redraw: the display group is cleared and each record is attached again in
// model order.
package render

import (
	"fmt"

	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/shape"
	"github.com/mapsketch/annotator/internal/surface"
)

// Source is the model as seen by the synchronizer.
type Source interface {
	Records() []core.Record
	Rebind(i int, h core.Handle) error
}

// Synchronizer rebuilds surface objects from records.
type Synchronizer struct {
	surf    surface.Surface
	factory *shape.Factory
	logger  logging.Logger
}

// New creates a Synchronizer.
func New(surf surface.Surface, factory *shape.Factory, logger logging.Logger) (*Synchronizer, error) {
	if surf == nil {
		return nil, fmt.Errorf("render: rendering surface: %w", core.ErrMissingPrerequisite)
	}
	if factory == nil {
		return nil, fmt.Errorf("render: shape factory: %w", core.ErrMissingPrerequisite)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Synchronizer{surf: surf, factory: factory, logger: logger}, nil
}

// Rebuild clears the display group and redraws every record. Custom markers get a
// fresh object each time; other kinds are restyled in place.
func (s *Synchronizer) Rebuild(src Source) {
	s.surf.Clear()

	for i, rec := range src.Records() {
		var err error
		if rec.Kind() == core.KindCustomMarker {
			err = s.regenerate(src, i, rec)
		} else {
			err = s.restyle(src, i, rec)
		}
		if err != nil {
			s.logger.Error("record not redrawn", "index", i, "name", rec.Name, "error", err)
		}
	}
}

func (s *Synchronizer) regenerate(src Source, i int, rec core.Record) error {
	spec := s.factory.Build(rec.Style.MarkerShape, rec.Geometry.Anchor, rec.Style)
	return s.install(src, i, spec)
}

func (s *Synchronizer) restyle(src Source, i int, rec core.Record) error {
	if _, ok := s.surf.Object(rec.Handle); !ok {
		// the object went missing behind our back; draw it again from the record
		s.logger.Warn("record object missing, recreating", "index", i, "handle", uint64(rec.Handle))
		spec, err := s.factory.BuildRecord(rec)
		if err != nil {
			return err
		}
		return s.install(src, i, spec)
	}

	if err := s.surf.SetStyle(rec.Handle, shape.StyleFor(rec.Kind(), rec.Style)); err != nil {
		return err
	}
	return s.surf.Add(rec.Handle)
}

func (s *Synchronizer) install(src Source, i int, spec surface.Spec) error {
	h := s.surf.Create(spec)
	if err := src.Rebind(i, h); err != nil {
		s.surf.Remove(h)
		return err
	}
	if err := s.surf.Add(h); err != nil {
		return err
	}
	return s.surf.SetEditable(h, spec.Editable)
}
