// Package router turns rendering-surface interaction events into model mutations.
// The router holds no per-interaction state; each event is handled to completion.
package router

import (
	"fmt"

	"github.com/mapsketch/annotator/internal/geo"
	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/shape"
	"github.com/mapsketch/annotator/internal/surface"
	"github.com/mapsketch/annotator/internal/translate"
)

// VertexAddedStyle selects which style fields survive a vertex insertion.
type VertexAddedStyle string

const (
	// PreserveFull copies every style field, like a vertex edit.
	PreserveFull VertexAddedStyle = "full"
	// PreserveFillOnly copies only fill color and opacity; the rest take defaults.
	PreserveFillOnly VertexAddedStyle = "fillOnly"
)

// Valid reports whether v names a preservation mode.
func (v VertexAddedStyle) Valid() bool {
	return v == PreserveFull || v == PreserveFillOnly
}

// ToolState exposes the toolbar selection the router needs on create.
type ToolState interface {
	ActiveMarkerShape() core.MarkerShape
}

// Router dispatches surface events to the model. It implements surface.Listener.
type Router struct {
	model   *model.Model
	surf    surface.Surface
	factory *shape.Factory
	tools   ToolState

	defaults    core.Style
	vertexAdded VertexAddedStyle
	logger      logging.Logger
}

var _ surface.Listener = (*Router)(nil)

// Option configures a Router.
type Option func(*Router)

// WithDefaults sets the style given to newly drawn annotations.
func WithDefaults(s core.Style) Option {
	return func(r *Router) {
		r.defaults = s.WithDefaults()
	}
}

// WithVertexAddedStyle sets the vertex insertion preservation mode.
func WithVertexAddedStyle(v VertexAddedStyle) Option {
	return func(r *Router) {
		if v.Valid() {
			r.vertexAdded = v
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Router. All collaborators are required.
func New(m *model.Model, surf surface.Surface, factory *shape.Factory, tools ToolState, opts ...Option) (*Router, error) {
	switch {
	case m == nil:
		return nil, fmt.Errorf("router: model: %w", core.ErrMissingPrerequisite)
	case surf == nil:
		return nil, fmt.Errorf("router: rendering surface: %w", core.ErrMissingPrerequisite)
	case factory == nil:
		return nil, fmt.Errorf("router: shape factory: %w", core.ErrMissingPrerequisite)
	case tools == nil:
		return nil, fmt.Errorf("router: tool state: %w", core.ErrMissingPrerequisite)
	}

	r := &Router{
		model:       m,
		surf:        surf,
		factory:     factory,
		tools:       tools,
		defaults:    core.DefaultStyle(),
		vertexAdded: PreserveFull,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.vertexAdded == PreserveFillOnly {
		r.logger.Debug("vertex insertion keeps only fill color and opacity; vertex edits keep every style field")
	}
	return r, nil
}

// OnCreate inserts a record for a finished draw interaction.
func (r *Router) OnCreate(e surface.CreateEvent) error {
	obj, ok := r.surf.Object(e.Handle)
	if !ok {
		r.logger.Warn("created object not on surface", "handle", uint64(e.Handle), "tool", string(e.Tool))
		return fmt.Errorf("create %d: %w", e.Handle, core.ErrLookupMiss)
	}

	switch e.Tool {
	case surface.ToolMarker:
		return r.createMarker(obj)
	case surface.ToolRectangle:
		return r.createRectangle(obj)
	default:
		return r.createPrimitive(obj, e.Tool)
	}
}

func (r *Router) createMarker(scratch surface.Object) error {
	anchor, err := translate.Anchor(scratch)
	r.surf.Remove(scratch.Handle)
	if err != nil {
		r.logger.Error("marker create abandoned", "handle", uint64(scratch.Handle), "error", err)
		return err
	}

	s := r.factory.Resolve(r.tools.ActiveMarkerShape())
	style := r.defaults
	style.MarkerShape = s

	spec := r.factory.Build(s, anchor, style)
	h, err := r.install(spec)
	if err != nil {
		return err
	}
	r.model.Insert(core.Record{Geometry: core.NewMarker(anchor), Style: *spec.Props, Handle: h})
	return nil
}

func (r *Router) createRectangle(scratch surface.Object) error {
	corners, ok := geo.RectangleCorners(scratch.Points)
	r.surf.Remove(scratch.Handle)
	if !ok || len(scratch.Points) < 2 {
		err := fmt.Errorf("rectangle with %d points: %w", len(scratch.Points), core.ErrUnrecognizedShape)
		r.logger.Error("rectangle create abandoned", "handle", uint64(scratch.Handle), "error", err)
		return err
	}

	rec := core.Record{Geometry: core.NewPolygon(corners), Style: r.defaults}
	spec, err := r.factory.BuildRecord(rec)
	if err != nil {
		return err
	}
	h, err := r.install(spec)
	if err != nil {
		return err
	}
	rec.Handle = h
	r.model.Insert(rec)
	return nil
}

func (r *Router) createPrimitive(obj surface.Object, tool surface.DrawTool) error {
	rec, err := translate.FromObject(obj)
	if err == nil && rec.Kind() == core.KindCustomMarker {
		err = fmt.Errorf("point drawn with %q tool: %w", tool, core.ErrUnrecognizedShape)
	}
	if err != nil {
		r.surf.Remove(obj.Handle)
		r.logger.Error("create abandoned", "handle", uint64(obj.Handle), "tool", string(tool), "error", err)
		return err
	}

	rec.Style = r.defaults
	if err := r.surf.SetStyle(obj.Handle, shape.StyleFor(rec.Kind(), rec.Style)); err != nil {
		return err
	}
	if err := r.surf.SetProps(obj.Handle, rec.Style); err != nil {
		return err
	}
	r.model.Insert(rec)
	return nil
}

// install creates spec on the surface and attaches it to the display group.
func (r *Router) install(spec surface.Spec) (core.Handle, error) {
	h := r.surf.Create(spec)
	if err := r.surf.Add(h); err != nil {
		r.surf.Remove(h)
		return 0, err
	}
	if err := r.surf.SetEditable(h, spec.Editable); err != nil {
		r.surf.Remove(h)
		return 0, err
	}
	return h, nil
}

// OnRemove takes over removal of objects owned by a record.
func (r *Router) OnRemove(e surface.RemoveEvent) error {
	idx, err := r.lookup("remove", e.Handle)
	if err != nil {
		return err
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	return r.model.DeleteAt(idx)
}

// OnEdit re-derives a record's geometry after a vertex edit and keeps its style.
func (r *Router) OnEdit(e surface.EditEvent) error {
	return r.reshape("edit", e.Handle, func(prev core.Style) core.Style {
		return prev
	})
}

// OnVertexAdded re-derives a record's geometry after a vertex insertion.
func (r *Router) OnVertexAdded(e surface.EditEvent) error {
	return r.reshape("vertex added", e.Handle, r.vertexAddedKeep)
}

// vertexAddedKeep returns the style kept after a vertex insertion. Marker shape
// and size always survive.
func (r *Router) vertexAddedKeep(prev core.Style) core.Style {
	if r.vertexAdded == PreserveFull {
		return prev
	}
	return core.Style{
		FillColor:   prev.FillColor,
		Opacity:     prev.Opacity,
		MarkerShape: prev.MarkerShape,
		MarkerSize:  prev.MarkerSize,
	}.WithDefaults()
}

func (r *Router) reshape(op string, h core.Handle, keep func(core.Style) core.Style) error {
	idx, err := r.lookup(op, h)
	if err != nil {
		return err
	}
	prev, _ := r.model.At(idx)
	if prev.Kind() == core.KindCustomMarker {
		// markers move by drag and change through style application only
		r.logger.Warn("vertex edit on marker ignored", "op", op, "handle", uint64(h), "name", prev.Name)
		r.model.Refresh()
		return nil
	}

	obj, ok := r.surf.Object(h)
	if !ok {
		r.logger.Warn("edited object not on surface", "op", op, "handle", uint64(h))
		return fmt.Errorf("%s %d: %w", op, h, core.ErrLookupMiss)
	}
	g, err := translate.Position(obj, prev.Kind())
	if err != nil {
		r.logger.Error("edit abandoned", "op", op, "handle", uint64(h), "error", err)
		return err
	}

	style := keep(prev.Style)
	if err := r.surf.SetProps(h, style); err != nil {
		return err
	}
	return r.model.Replace(idx, core.Record{Geometry: g, Style: style, Handle: h})
}

// OnDragEnd restores the intended style from the properties payload and records
// the new position.
func (r *Router) OnDragEnd(e surface.EditEvent) error {
	idx, err := r.lookup("drag end", e.Handle)
	if err != nil {
		return err
	}
	rec, _ := r.model.At(idx)

	obj, ok := r.surf.Object(e.Handle)
	if !ok {
		r.logger.Warn("dragged object not on surface", "handle", uint64(e.Handle))
		return fmt.Errorf("drag end %d: %w", e.Handle, core.ErrLookupMiss)
	}

	props := rec.Style
	if obj.Props != nil {
		props = *obj.Props
	} else {
		r.logger.Warn("dragged object has no properties payload", "handle", uint64(e.Handle))
	}
	if err := r.surf.SetStyle(e.Handle, shape.StyleFor(rec.Kind(), props)); err != nil {
		return err
	}

	g, err := translate.Position(obj, rec.Kind())
	if err != nil {
		r.logger.Error("drag end abandoned", "handle", uint64(e.Handle), "error", err)
		return err
	}
	return r.model.UpdateCoordinates(idx, g)
}

func (r *Router) lookup(op string, h core.Handle) (int, error) {
	idx, ok := r.model.FindByRenderHandle(h)
	if !ok {
		r.logger.Warn("object not found in model", "op", op, "handle", uint64(h))
		return -1, fmt.Errorf("%s %d: %w", op, h, core.ErrLookupMiss)
	}
	return idx, nil
}
