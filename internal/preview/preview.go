// Package preview rasterizes the display group to a PNG, fitted to the extent of
// the drawn objects in Web Mercator.
package preview

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/mapsketch/annotator/internal/config"
	"github.com/mapsketch/annotator/internal/geo"
	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
	geom "github.com/peterstace/simplefeatures/geom"
)

const circleSegments = 64

// Renderer draws surface objects onto a fixed-size canvas.
type Renderer struct {
	width, height, padding int
	background             string
	logger                 logging.Logger
}

// New creates a Renderer from preview settings.
func New(cfg config.PreviewConfig, logger logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.Nop()
	}
	r := &Renderer{
		width:      cfg.Width,
		height:     cfg.Height,
		padding:    cfg.Padding,
		background: cfg.Background,
		logger:     logger,
	}
	if r.width <= 0 {
		r.width = 1024
	}
	if r.height <= 0 {
		r.height = 768
	}
	if r.padding < 0 || 2*r.padding >= min(r.width, r.height) {
		r.padding = 0
	}
	if r.background == "" {
		r.background = "#ffffff"
	}
	return r
}

// shape is one object projected to Mercator, ready to be placed on the canvas.
type shape struct {
	obj    surface.Object
	points []geom.XY
	closed bool
}

// Render draws objs in order and writes the PNG to w.
func (r *Renderer) Render(w io.Writer, objs []surface.Object) error {
	dc := gg.NewContext(r.width, r.height)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(r.background))

	shapes := make([]shape, 0, len(objs))
	var ext extent
	for _, obj := range objs {
		s, ok := project(obj)
		if !ok {
			r.logger.Warn("object skipped in preview", "handle", uint64(obj.Handle), "shape", obj.Shape.String())
			continue
		}
		for _, xy := range s.points {
			ext.include(xy)
		}
		shapes = append(shapes, s)
	}

	if len(shapes) > 0 {
		toCanvas := r.fit(ext)
		for _, s := range shapes {
			if err := r.draw(dc, s, toCanvas); err != nil {
				return fmt.Errorf("drawing object %d: %w", s.obj.Handle, err)
			}
		}
	}

	return dc.EncodePNG(w)
}

func project(obj surface.Object) (shape, bool) {
	var pts []core.LatLng
	closed := false

	switch obj.Shape {
	case surface.ShapePoint:
		if len(obj.Points) < 1 {
			return shape{}, false
		}
		pts = obj.Points[:1]
	case surface.ShapeCircle:
		if len(obj.Points) < 1 || obj.Radius <= 0 {
			return shape{}, false
		}
		pts = geo.CircleRing(obj.Points[0], obj.Radius, circleSegments)
		closed = true
	case surface.ShapePolygon:
		if len(obj.Points) < 3 {
			return shape{}, false
		}
		pts = obj.Points
		closed = true
	case surface.ShapePolyline:
		if len(obj.Points) < 2 {
			return shape{}, false
		}
		pts = obj.Points
	default:
		return shape{}, false
	}

	xys := make([]geom.XY, len(pts))
	for i, p := range pts {
		xys[i] = geo.Project(p)
	}
	return shape{obj: obj, points: xys, closed: closed}, true
}

// extent is the Mercator bounding box of everything drawn.
type extent struct {
	min, max geom.XY
	set      bool
}

func (e *extent) include(xy geom.XY) {
	if !e.set {
		e.min, e.max, e.set = xy, xy, true
		return
	}
	e.min.X = math.Min(e.min.X, xy.X)
	e.min.Y = math.Min(e.min.Y, xy.Y)
	e.max.X = math.Max(e.max.X, xy.X)
	e.max.Y = math.Max(e.max.Y, xy.Y)
}

// fit returns the Mercator to canvas transform that centers ext in the padded
// canvas, y axis pointing down.
func (r *Renderer) fit(ext extent) func(geom.XY) (float64, float64) {
	minXY, maxXY := ext.min, ext.max
	dx, dy := maxXY.X-minXY.X, maxXY.Y-minXY.Y

	innerW := float64(r.width - 2*r.padding)
	innerH := float64(r.height - 2*r.padding)

	scale := 1.0
	switch {
	case dx > 0 && dy > 0:
		scale = math.Min(innerW/dx, innerH/dy)
	case dx > 0:
		scale = innerW / dx
	case dy > 0:
		scale = innerH / dy
	}

	cx, cy := (minXY.X+maxXY.X)/2, (minXY.Y+maxXY.Y)/2
	midX, midY := float64(r.width)/2, float64(r.height)/2
	return func(xy geom.XY) (float64, float64) {
		return midX + (xy.X-cx)*scale, midY - (xy.Y-cy)*scale
	}
}

func (r *Renderer) draw(dc *gg.Context, s shape, toCanvas func(geom.XY) (float64, float64)) error {
	st := s.obj.Style

	if s.obj.Shape == surface.ShapePoint {
		x, y := toCanvas(s.points[0])
		dc.DrawCircle(x, y, math.Max(s.obj.Radius, 1))
	} else {
		for i, xy := range s.points {
			x, y := toCanvas(xy)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if s.closed {
			dc.ClosePath()
		}
	}

	if st.Fill && (s.closed || s.obj.Shape == surface.ShapePoint) {
		setColor(dc, st.FillColor, st.FillOpacity)
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}

	setColor(dc, st.Color, st.Opacity)
	dc.SetLineWidth(float64(max(st.Weight, 1)))
	dc.SetDash(ParseDash(st.DashArray)...)
	return dc.Stroke()
}

func setColor(dc *gg.Context, hex string, alpha float64) {
	c := gg.Hex(hex)
	dc.SetRGBA(c.R, c.G, c.B, c.A*clamp01(alpha))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// ParseDash parses a comma separated dash array such as "10,10". Invalid or
// empty input yields no dashes.
func ParseDash(s string) []float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return nil
		}
		out = append(out, v)
	}
	return out
}
