// Package editor wires the annotation core together in a fixed order: model first,
// then the shape factory and render synchronizer, then style application and the
// event router, and finally the views that follow every refresh.
package editor

import (
	"fmt"

	"github.com/mapsketch/annotator/internal/config"
	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/projector"
	"github.com/mapsketch/annotator/internal/render"
	"github.com/mapsketch/annotator/internal/router"
	"github.com/mapsketch/annotator/internal/shape"
	"github.com/mapsketch/annotator/internal/style"
	"github.com/mapsketch/annotator/internal/surface"
)

// View is a panel that re-renders from projections after every refresh.
type View interface {
	Update(rows []projector.Row, legend projector.Legend)
}

// ViewFunc adapts a function to View.
type ViewFunc func(rows []projector.Row, legend projector.Legend)

// Update calls f.
func (f ViewFunc) Update(rows []projector.Row, legend projector.Legend) { f(rows, legend) }

// Options holds the editor settings.
type Options struct {
	Defaults         core.Style
	MarkerShape      core.MarkerShape
	VertexAddedStyle router.VertexAddedStyle
}

// DefaultOptions returns the built-in settings.
func DefaultOptions() Options {
	return Options{
		Defaults:         core.DefaultStyle(),
		MarkerShape:      core.MarkerCircle,
		VertexAddedStyle: router.PreserveFull,
	}
}

// OptionsFrom converts editor configuration.
func OptionsFrom(c config.EditorConfig) Options {
	return Options{
		Defaults: core.Style{
			FillColor:   c.FillColor,
			LineColor:   c.LineColor,
			Opacity:     c.Opacity,
			LineWeight:  c.LineWeight,
			LineDash:    core.LineDash(c.LineDash),
			MarkerSize:  c.MarkerSize,
			MarkerShape: core.MarkerShape(c.MarkerShape),
		}.WithDefaults(),
		MarkerShape:      core.MarkerShape(c.MarkerShape),
		VertexAddedStyle: router.VertexAddedStyle(c.VertexAddedStyle),
	}
}

// EditForm is the context-menu editor prefill for one record.
type EditForm struct {
	Index        int          `json:"index"`
	Name         string       `json:"name"`
	Kind         core.Kind    `json:"kind"`
	Params       style.Params `json:"params"`
	FillEditable bool         `json:"fillEditable"`
}

// Editor is one editing session over a rendering surface.
// It is not safe for concurrent use; callers serialize access.
type Editor struct {
	surf    surface.Surface
	model   *model.Model
	factory *shape.Factory
	sync    *render.Synchronizer
	applier *style.Applier
	router  *router.Router
	views   []View

	tool        surface.DrawTool
	markerShape core.MarkerShape
	logger      logging.Logger
}

// New builds an editor over surf.
func New(surf surface.Surface, opts Options, logger logging.Logger, views ...View) (*Editor, error) {
	if surf == nil {
		return nil, fmt.Errorf("editor: rendering surface: %w", core.ErrMissingPrerequisite)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	m, err := model.New(surf, logger)
	if err != nil {
		return nil, err
	}
	factory := shape.New(logger)
	sync, err := render.New(surf, factory, logger)
	if err != nil {
		return nil, err
	}
	applier, err := style.New(m, surf, factory, logger)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		surf:        surf,
		model:       m,
		factory:     factory,
		sync:        sync,
		applier:     applier,
		views:       views,
		markerShape: factory.Resolve(opts.MarkerShape),
		logger:      logger,
	}

	e.router, err = router.New(m, surf, factory, e,
		router.WithDefaults(opts.Defaults),
		router.WithVertexAddedStyle(opts.VertexAddedStyle),
		router.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	m.SetRefresher(e)
	return e, nil
}

// Refresh rebuilds the surface from the model, then updates every view.
func (e *Editor) Refresh() {
	e.sync.Rebuild(e.model)

	if len(e.views) == 0 {
		return
	}
	rows := projector.List(e.model)
	legend := projector.LegendOf(e.model)
	for _, v := range e.views {
		v.Update(rows, legend)
	}
}

// AddView subscribes v to refreshes.
func (e *Editor) AddView(v View) {
	e.views = append(e.views, v)
}

// Router returns the event router to install as the surface listener.
func (e *Editor) Router() *router.Router {
	return e.router
}

// Model returns the underlying model.
func (e *Editor) Model() *model.Model {
	return e.model
}

// SelectTool activates a draw tool. For the marker tool, shape picks the marker
// silhouette; unknown shapes fall back to circle.
func (e *Editor) SelectTool(tool surface.DrawTool, s core.MarkerShape) error {
	if err := e.surf.EnableDraw(tool); err != nil {
		return err
	}
	e.tool = tool
	if tool == surface.ToolMarker && s != "" {
		e.markerShape = e.factory.Resolve(s)
	}
	e.logger.Debug("draw tool selected", "tool", string(tool), "markerShape", string(e.markerShape))
	return nil
}

// ActiveTool returns the last selected draw tool.
func (e *Editor) ActiveTool() surface.DrawTool {
	return e.tool
}

// ActiveMarkerShape returns the marker silhouette used for new markers.
func (e *Editor) ActiveMarkerShape() core.MarkerShape {
	return e.markerShape
}

// Rename renames the record at i.
func (e *Editor) Rename(i int, name string) error {
	return e.model.Rename(i, name)
}

// RequestDelete deletes the record at i.
func (e *Editor) RequestDelete(i int) error {
	return e.model.DeleteAt(i)
}

// RequestEdit selects the record at i and returns the editor prefill.
func (e *Editor) RequestEdit(i int) (EditForm, error) {
	if err := e.model.Select(i); err != nil {
		return EditForm{}, err
	}
	rec, _ := e.model.At(i)
	e.Refresh()

	return EditForm{
		Index:        i,
		Name:         rec.Name,
		Kind:         rec.Kind(),
		Params:       style.FromStyle(rec.Style),
		FillEditable: rec.Kind().Filled(),
	}, nil
}

// ApplyStyle applies p to the selected record.
func (e *Editor) ApplyStyle(p style.Params) error {
	return e.applier.Apply(p)
}

// SetTitle changes the map title.
func (e *Editor) SetTitle(title string) {
	e.model.SetTitle(title)
}

// Title returns the map title.
func (e *Editor) Title() string {
	return e.model.Title()
}

// List returns the list panel rows.
func (e *Editor) List() []projector.Row {
	return projector.List(e.model)
}

// Legend returns the legend panel content.
func (e *Editor) Legend() projector.Legend {
	return projector.LegendOf(e.model)
}
