package memory

import (
	"fmt"
	"math"

	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
)

// Draw replays a finished draw interaction: a scratch object is created with the
// native style, attached to the display group and reported to the listener.
//
// Points per tool: marker 1, circle 1 (plus radius), polygon >= 3, polyline >= 2,
// rectangle 2 opposite corners.
func (s *Surface) Draw(tool surface.DrawTool, points []core.LatLng, radius float64) (core.Handle, error) {
	spec, err := nativeSpec(tool, points, radius)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	h := s.createLocked(spec)
	s.group = append(s.group, h)
	l := s.listener
	s.mu.Unlock()

	if l == nil {
		return h, nil
	}
	return h, l.OnCreate(surface.CreateEvent{Handle: h, Tool: tool})
}

// RequestRemove replays a removal interaction. Unless the listener cancels it, the
// surface discards the object itself.
func (s *Surface) RequestRemove(h core.Handle) error {
	s.mu.RLock()
	_, ok := s.objects[h]
	l := s.listener
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("remove %d: %w", h, ErrUnknownHandle)
	}

	cancelled := false
	var err error
	if l != nil {
		err = l.OnRemove(surface.RemoveEvent{Handle: h, Cancel: func() { cancelled = true }})
	}
	if !cancelled {
		s.Remove(h)
	}
	return err
}

// Reshape replays a completed vertex edit. For circles the first point is the new
// center and a positive radius replaces the old one. Objects with vertex editing
// disabled refuse the edit.
func (s *Surface) Reshape(h core.Handle, points []core.LatLng, radius float64) error {
	s.mu.Lock()
	obj, ok := s.objects[h]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("reshape %d: %w", h, ErrUnknownHandle)
	}
	if !obj.Editable {
		s.mu.Unlock()
		return fmt.Errorf("reshape %d: not editable: %w", h, ErrInvalidInteraction)
	}
	if len(points) > 0 {
		obj.Points = clonePoints(points)
	}
	if radius > 0 {
		obj.Radius = radius
	}
	l := s.listener
	s.mu.Unlock()

	if l == nil {
		return nil
	}
	return l.OnEdit(surface.EditEvent{Handle: h})
}

// AddVertex replays a vertex insertion at index at (clamped to the vertex list).
// Like Reshape it is refused on objects with vertex editing disabled.
func (s *Surface) AddVertex(h core.Handle, p core.LatLng, at int) error {
	s.mu.Lock()
	obj, ok := s.objects[h]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("add vertex %d: %w", h, ErrUnknownHandle)
	}
	if obj.Shape != surface.ShapePolygon && obj.Shape != surface.ShapePolyline {
		s.mu.Unlock()
		return fmt.Errorf("add vertex to %s: %w", obj.Shape, ErrInvalidInteraction)
	}
	if !obj.Editable {
		s.mu.Unlock()
		return fmt.Errorf("add vertex %d: not editable: %w", h, ErrInvalidInteraction)
	}
	if at < 0 || at > len(obj.Points) {
		at = len(obj.Points)
	}
	pts := make([]core.LatLng, 0, len(obj.Points)+1)
	pts = append(pts, obj.Points[:at]...)
	pts = append(pts, p)
	pts = append(pts, obj.Points[at:]...)
	obj.Points = pts
	l := s.listener
	s.mu.Unlock()

	if l == nil {
		return nil
	}
	return l.OnVertexAdded(surface.EditEvent{Handle: h})
}

// Drag replays a drag interaction. Like the browser editing plugin it leaves the
// native style behind on the dragged object.
func (s *Surface) Drag(h core.Handle, dLat, dLng float64) error {
	s.mu.Lock()
	obj, ok := s.objects[h]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("drag %d: %w", h, ErrUnknownHandle)
	}
	for i := range obj.Points {
		obj.Points[i] = obj.Points[i].Offset(dLat, dLng)
	}
	obj.Style = NativeStyle
	l := s.listener
	s.mu.Unlock()

	if l == nil {
		return nil
	}
	return l.OnDragEnd(surface.EditEvent{Handle: h})
}

func nativeSpec(tool surface.DrawTool, points []core.LatLng, radius float64) (surface.Spec, error) {
	spec := surface.Spec{Style: NativeStyle, Editable: true}

	switch tool {
	case surface.ToolMarker:
		if len(points) != 1 {
			return spec, fmt.Errorf("marker needs 1 point, got %d: %w", len(points), ErrInvalidInteraction)
		}
		spec.Shape = surface.ShapePoint
		spec.Points = points
	case surface.ToolCircle:
		if len(points) != 1 || radius <= 0 {
			return spec, fmt.Errorf("circle needs a center and a positive radius: %w", ErrInvalidInteraction)
		}
		spec.Shape = surface.ShapeCircle
		spec.Points = points
		spec.Radius = radius
	case surface.ToolPolygon:
		if len(points) < 3 {
			return spec, fmt.Errorf("polygon needs at least 3 points, got %d: %w", len(points), ErrInvalidInteraction)
		}
		spec.Shape = surface.ShapePolygon
		spec.Points = points
	case surface.ToolPolyline:
		if len(points) < 2 {
			return spec, fmt.Errorf("polyline needs at least 2 points, got %d: %w", len(points), ErrInvalidInteraction)
		}
		spec.Shape = surface.ShapePolyline
		spec.Points = points
		spec.Style.Fill = false
	case surface.ToolRectangle:
		if len(points) != 2 {
			return spec, fmt.Errorf("rectangle needs 2 corners, got %d: %w", len(points), ErrInvalidInteraction)
		}
		spec.Shape = surface.ShapePolygon
		spec.Points = rectangle(points[0], points[1])
	default:
		return spec, fmt.Errorf("draw tool %q: %w", tool, ErrInvalidInteraction)
	}
	return spec, nil
}

// rectangle returns the corners spanned by a and b, counter-clockwise from south-west.
func rectangle(a, b core.LatLng) []core.LatLng {
	south, north := math.Min(a.Lat, b.Lat), math.Max(a.Lat, b.Lat)
	west, east := math.Min(a.Lng, b.Lng), math.Max(a.Lng, b.Lng)
	return []core.LatLng{
		{Lat: south, Lng: west},
		{Lat: south, Lng: east},
		{Lat: north, Lng: east},
		{Lat: north, Lng: west},
	}
}
