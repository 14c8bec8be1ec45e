// Package surface defines the contract between the editor core and the interactive
// map that draws annotations. The map is an external collaborator: the core only
// creates objects, styles them, attaches them to the display group and listens for
// interaction events.
package surface

import (
	"github.com/mapsketch/annotator/internal/model/core"
)

// Shape is the native object type on the surface.
type Shape int

const (
	ShapeUnknown  Shape = iota
	ShapeCircle         // center + radius in meters
	ShapePolygon        // closed ring
	ShapePolyline       // open vertex list
	ShapePoint          // single position, radius in pixels
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	case ShapePolyline:
		return "polyline"
	case ShapePoint:
		return "point"
	default:
		return "unknown"
	}
}

// DrawTool is a draw mode of the surface.
type DrawTool string

const (
	ToolNone      DrawTool = ""
	ToolMarker    DrawTool = "marker"
	ToolCircle    DrawTool = "circle"
	ToolPolygon   DrawTool = "polygon"
	ToolPolyline  DrawTool = "polyline"
	ToolRectangle DrawTool = "rectangle"
)

// Valid reports whether t names a draw mode.
func (t DrawTool) Valid() bool {
	switch t {
	case ToolMarker, ToolCircle, ToolPolygon, ToolPolyline, ToolRectangle:
		return true
	}
	return false
}

// PathStyle is the visual style of one surface object.
type PathStyle struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
	Opacity     float64 `json:"opacity"`
	Weight      int     `json:"weight"`
	DashArray   string  `json:"dashArray"`
	Fill        bool    `json:"fill"`
}

// Spec describes an object to be created. Building a Spec has no side effects.
type Spec struct {
	Shape    Shape
	Points   []core.LatLng
	Radius   float64
	Style    PathStyle
	Props    *core.Style
	Editable bool
}

// Object is a snapshot of a surface object.
type Object struct {
	Handle   core.Handle
	Shape    Shape
	Points   []core.LatLng
	Radius   float64
	Style    PathStyle
	Props    *core.Style
	Editable bool
}

// Surface is the rendering surface as seen by the editor core.
type Surface interface {
	// Create constructs an object outside the display group and returns its handle.
	Create(spec Spec) core.Handle
	// Object returns a snapshot of the object behind h.
	Object(h core.Handle) (Object, bool)
	// Objects returns snapshots of the display group in drawing order.
	Objects() []Object
	// Add attaches an object to the display group.
	Add(h core.Handle) error
	// Remove detaches an object and discards it.
	Remove(h core.Handle)
	// Clear detaches every object from the display group without discarding them.
	Clear()
	SetStyle(h core.Handle, style PathStyle) error
	SetProps(h core.Handle, props core.Style) error
	SetEditable(h core.Handle, editable bool) error
	// EnableDraw switches the surface into the given draw mode.
	EnableDraw(tool DrawTool) error
}

// CreateEvent reports a finished draw interaction. Handle is the surface's scratch object.
type CreateEvent struct {
	Handle core.Handle
	Tool   DrawTool
}

// RemoveEvent reports a removal interaction. Calling Cancel stops the surface from
// removing the object itself.
type RemoveEvent struct {
	Handle core.Handle
	Cancel func()
}

// EditEvent reports an edit, vertex-added or drag-end interaction on one object.
type EditEvent struct {
	Handle core.Handle
}

// Listener receives interaction events from the surface, one method per event kind.
type Listener interface {
	OnCreate(e CreateEvent) error
	OnRemove(e RemoveEvent) error
	OnEdit(e EditEvent) error
	OnVertexAdded(e EditEvent) error
	OnDragEnd(e EditEvent) error
}
