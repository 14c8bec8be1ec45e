package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mapsketch/annotator/internal/dispatcher"
	"github.com/mapsketch/annotator/internal/geo"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
)

// Interaction event types accepted on the events endpoint.
const (
	EventCreate      = "create"
	EventRemove      = "remove"
	EventEdit        = "edit"
	EventVertexAdded = "vertexAdded"
	EventDragEnd     = "dragEnd"
)

// eventRequest is a map interaction forwarded by the browser. Points are GeoJSON
// ordered, [[lng,lat],...].
type eventRequest struct {
	Session string           `json:"session,omitempty"`
	Type    string           `json:"type"`
	Tool    surface.DrawTool `json:"tool,omitempty"`
	Handle  core.Handle      `json:"handle,omitempty"`
	Points  json.RawMessage  `json:"points,omitempty"`
	Radius  float64          `json:"radius,omitempty"`
	At      *int             `json:"at,omitempty"`
	Delta   *core.LatLng     `json:"delta,omitempty"`
}

// eventResult reports the outcome of an interaction. Handle is the current handle
// of the record the interaction created or changed.
type eventResult struct {
	Applied bool        `json:"applied"`
	Handle  core.Handle `json:"handle,omitempty"`
	Records int         `json:"records"`
	Reason  string      `json:"reason,omitempty"`
}

func (r eventRequest) points() ([]core.LatLng, error) {
	if len(r.Points) == 0 {
		return nil, nil
	}
	pts, err := geo.ParsePoints(r.Points)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return pts, nil
}

// handleEvent replays the interaction on the session surface, which reports it
// to the editor's router. Lookup misses and unrecognized shapes are absorbed.
func (s *Server) handleEvent(e dispatcher.Event) (any, error) {
	var req eventRequest
	if err := decode(e.Body, &req); err != nil {
		return nil, err
	}
	if req.Session != "" && req.Session != s.session {
		return nil, fmt.Errorf("%w: %q", ErrSessionMismatch, req.Session)
	}

	pts, err := req.points()
	if err != nil {
		return nil, err
	}

	m := s.deps.Editor.Model()
	idx, known := m.FindByRenderHandle(req.Handle)

	var h core.Handle
	switch req.Type {
	case EventCreate:
		if !req.Tool.Valid() {
			return nil, fmt.Errorf("%w: unknown tool %q", ErrBadRequest, req.Tool)
		}
		h, err = s.deps.Surface.Draw(req.Tool, pts, req.Radius)
	case EventRemove:
		h = req.Handle
		err = s.deps.Surface.RequestRemove(h)
	case EventEdit:
		h = req.Handle
		err = s.deps.Surface.Reshape(h, pts, req.Radius)
	case EventVertexAdded:
		if len(pts) != 1 {
			return nil, fmt.Errorf("%w: vertexAdded takes exactly one point", ErrBadRequest)
		}
		at := -1
		if req.At != nil {
			at = *req.At
		}
		h = req.Handle
		err = s.deps.Surface.AddVertex(h, pts[0], at)
	case EventDragEnd:
		if req.Delta == nil {
			return nil, fmt.Errorf("%w: dragEnd needs a delta", ErrBadRequest)
		}
		h = req.Handle
		err = s.deps.Surface.Drag(h, req.Delta.Lat, req.Delta.Lng)
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrBadRequest, req.Type)
	}

	res := eventResult{Applied: true, Records: m.Len()}
	if err != nil {
		if !errors.Is(err, core.ErrLookupMiss) && !errors.Is(err, core.ErrUnrecognizedShape) {
			return nil, err
		}
		s.logger.Warn("interaction ignored", "type", req.Type, "handle", uint64(h), "error", err)
		res.Applied = false
		res.Reason = err.Error()
		return res, nil
	}

	// markers get a new object on every redraw, so answer with the record's
	// current handle rather than the one the interaction touched
	switch {
	case req.Type == EventCreate:
		if rec, ok := m.At(m.Len() - 1); ok {
			res.Handle = rec.Handle
		}
	case req.Type != EventRemove && known:
		if rec, ok := m.At(idx); ok {
			res.Handle = rec.Handle
		}
	}
	return res, nil
}
