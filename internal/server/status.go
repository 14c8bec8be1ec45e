package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mapsketch/annotator/internal/dispatcher"
	"github.com/mapsketch/annotator/internal/feed"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/surface"
)

// Status is a snapshot of the session.
type Status struct {
	Session     string           `json:"session"`
	StartedAt   time.Time        `json:"startedAt"`
	UptimeSec   float64          `json:"uptimeSec"`
	Title       string           `json:"title"`
	Records     int              `json:"records"`
	Objects     int              `json:"objects"`
	Selected    *int             `json:"selected"`
	Tool        surface.DrawTool `json:"tool"`
	MarkerShape core.MarkerShape `json:"markerShape"`
	UpdateSeq   uint64           `json:"updateSeq"`
	Backlog     int              `json:"backlog"`
}

type updatesResult struct {
	Seq     uint64        `json:"seq"`
	Updates []feed.Update `json:"updates"`
}

func (s *Server) handleStatus(dispatcher.Event) (any, error) {
	ed := s.deps.Editor
	st := Status{
		Session:     s.session,
		StartedAt:   s.started,
		UptimeSec:   time.Since(s.started).Seconds(),
		Title:       ed.Title(),
		Records:     ed.Model().Len(),
		Objects:     len(s.deps.Surface.Objects()),
		Tool:        ed.ActiveTool(),
		MarkerShape: ed.ActiveMarkerShape(),
		UpdateSeq:   s.updates.Seq(),
		Backlog:     s.updates.Len(),
	}
	if i, ok := ed.Model().Selected(); ok {
		st.Selected = &i
	}
	return st, nil
}

// handleUpdates returns the refreshes after the "since" sequence number.
func (s *Server) handleUpdates(e dispatcher.Event) (any, error) {
	var since uint64
	if len(e.Args) > 0 && e.Args[0] != "" {
		v, err := strconv.ParseUint(e.Args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: since %q", ErrBadRequest, e.Args[0])
		}
		since = v
	}
	return updatesResult{Seq: s.updates.Seq(), Updates: s.updates.Since(since)}, nil
}
