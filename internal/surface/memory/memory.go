// internal/surface/memory/memory.go
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
)

var (
	// ErrUnknownHandle is returned for operations on objects the surface does not hold.
	ErrUnknownHandle = errors.New("unknown surface object")

	// ErrInvalidInteraction is returned when a simulated interaction has unusable input.
	ErrInvalidInteraction = errors.New("invalid interaction")
)

// NativeStyle is the style the surface gives to objects it draws or drags itself.
var NativeStyle = surface.PathStyle{
	Color:       "#3388ff",
	FillColor:   "#3388ff",
	FillOpacity: 0.2,
	Opacity:     1,
	Weight:      3,
	DashArray:   "",
	Fill:        true,
}

// Surface is an in-memory rendering surface. It keeps every object in an arena keyed
// by handle plus an ordered display group, and can replay user interactions so the
// editor core can be driven without a browser.
type Surface struct {
	objects map[core.Handle]*surface.Object
	group   []core.Handle
	tool    surface.DrawTool

	listener surface.Listener

	idCounter uint64
	mu        sync.RWMutex
}

// New creates an empty surface.
func New() *Surface {
	return &Surface{
		objects: make(map[core.Handle]*surface.Object),
	}
}

// SetListener installs the receiver of interaction events.
func (s *Surface) SetListener(l surface.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// Create constructs an object outside the display group.
func (s *Surface) Create(spec surface.Spec) core.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(spec)
}

func (s *Surface) createLocked(spec surface.Spec) core.Handle {
	s.idCounter++
	h := core.Handle(s.idCounter)

	obj := &surface.Object{
		Handle:   h,
		Shape:    spec.Shape,
		Points:   clonePoints(spec.Points),
		Radius:   spec.Radius,
		Style:    spec.Style,
		Editable: spec.Editable,
	}
	if spec.Props != nil {
		p := *spec.Props
		obj.Props = &p
	}
	s.objects[h] = obj
	return h
}

// Object returns a snapshot of the object behind h.
func (s *Surface) Object(h core.Handle) (surface.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if obj, ok := s.objects[h]; ok {
		return snapshot(obj), true
	}
	return surface.Object{}, false
}

// Objects returns snapshots of the display group in drawing order.
func (s *Surface) Objects() []surface.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]surface.Object, 0, len(s.group))
	for _, h := range s.group {
		if obj, ok := s.objects[h]; ok {
			out = append(out, snapshot(obj))
		}
	}
	return out
}

// Add attaches an object to the display group. Adding twice is a no-op.
func (s *Surface) Add(h core.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[h]; !ok {
		return fmt.Errorf("add %d: %w", h, ErrUnknownHandle)
	}
	if s.inGroupLocked(h) {
		return nil
	}
	s.group = append(s.group, h)
	return nil
}

// Remove detaches an object and discards it. Unknown handles are ignored.
func (s *Surface) Remove(h core.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(h)
}

func (s *Surface) removeLocked(h core.Handle) {
	delete(s.objects, h)
	for i, g := range s.group {
		if g == h {
			s.group = append(s.group[:i], s.group[i+1:]...)
			break
		}
	}
}

// Clear detaches every object from the display group. Objects stay in the arena.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.group = nil
}

// SetStyle replaces the visual style of an object.
func (s *Surface) SetStyle(h core.Handle, style surface.PathStyle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[h]
	if !ok {
		return fmt.Errorf("set style %d: %w", h, ErrUnknownHandle)
	}
	obj.Style = style
	return nil
}

// SetProps replaces the custom-properties payload of an object.
func (s *Surface) SetProps(h core.Handle, props core.Style) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[h]
	if !ok {
		return fmt.Errorf("set props %d: %w", h, ErrUnknownHandle)
	}
	obj.Props = &props
	return nil
}

// SetEditable toggles direct vertex editing on an object.
func (s *Surface) SetEditable(h core.Handle, editable bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[h]
	if !ok {
		return fmt.Errorf("set editable %d: %w", h, ErrUnknownHandle)
	}
	obj.Editable = editable
	return nil
}

// EnableDraw switches the surface into the given draw mode.
func (s *Surface) EnableDraw(tool surface.DrawTool) error {
	if !tool.Valid() {
		return fmt.Errorf("draw tool %q: %w", tool, ErrInvalidInteraction)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tool = tool
	return nil
}

// Tool returns the active draw mode.
func (s *Surface) Tool() surface.DrawTool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

// InGroup reports whether h is attached to the display group.
func (s *Surface) InGroup(h core.Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inGroupLocked(h)
}

func (s *Surface) inGroupLocked(h core.Handle) bool {
	for _, g := range s.group {
		if g == h {
			return true
		}
	}
	return false
}

// Len returns the number of objects alive on the surface, attached or not.
func (s *Surface) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func snapshot(obj *surface.Object) surface.Object {
	out := *obj
	out.Points = clonePoints(obj.Points)
	if obj.Props != nil {
		p := *obj.Props
		out.Props = &p
	}
	return out
}

func clonePoints(pts []core.LatLng) []core.LatLng {
	if pts == nil {
		return nil
	}
	out := make([]core.LatLng, len(pts))
	copy(out, pts)
	return out
}
