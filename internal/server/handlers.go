package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/mapsketch/annotator/internal/dispatcher"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/style"
	"github.com/mapsketch/annotator/internal/surface"
)

var (
	ErrBadRequest      = errors.New("bad request")
	ErrSessionMismatch = errors.New("session mismatch")
	ErrNoSelection     = errors.New("no record selected")
)

type pngImage []byte

type toolRequest struct {
	Tool        surface.DrawTool `json:"tool"`
	MarkerShape core.MarkerShape `json:"markerShape"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type titleRequest struct {
	Title string `json:"title"`
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func indexArg(e dispatcher.Event) (int, error) {
	if len(e.Args) == 0 {
		return 0, fmt.Errorf("%w: missing index", ErrBadRequest)
	}
	i, err := strconv.Atoi(e.Args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrBadRequest, e.Args[0])
	}
	return i, nil
}

func (s *Server) handleList(dispatcher.Event) (any, error) {
	return s.deps.Editor.List(), nil
}

func (s *Server) handleLegend(dispatcher.Event) (any, error) {
	return s.deps.Editor.Legend(), nil
}

func (s *Server) handleRename(e dispatcher.Event) (any, error) {
	i, err := indexArg(e)
	if err != nil {
		return nil, err
	}
	var req nameRequest
	if err := decode(e.Body, &req); err != nil {
		return nil, err
	}
	if err := s.deps.Editor.Rename(i, req.Name); err != nil {
		return nil, err
	}
	return s.deps.Editor.List(), nil
}

func (s *Server) handleDelete(e dispatcher.Event) (any, error) {
	i, err := indexArg(e)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Editor.RequestDelete(i); err != nil {
		return nil, err
	}
	return s.deps.Editor.List(), nil
}

func (s *Server) handleEdit(e dispatcher.Event) (any, error) {
	i, err := indexArg(e)
	if err != nil {
		return nil, err
	}
	return s.deps.Editor.RequestEdit(i)
}

func (s *Server) handleStyle(e dispatcher.Event) (any, error) {
	var p style.Params
	if err := decode(e.Body, &p); err != nil {
		return nil, err
	}
	if err := s.deps.Editor.ApplyStyle(p); err != nil {
		if errors.Is(err, core.ErrInvalidIndex) {
			return nil, fmt.Errorf("%w: %w", ErrNoSelection, err)
		}
		return nil, err
	}
	return s.deps.Editor.List(), nil
}

func (s *Server) handleTool(e dispatcher.Event) (any, error) {
	var req toolRequest
	if err := decode(e.Body, &req); err != nil {
		return nil, err
	}
	if !req.Tool.Valid() {
		return nil, fmt.Errorf("%w: unknown tool %q", ErrBadRequest, req.Tool)
	}
	if err := s.deps.Editor.SelectTool(req.Tool, req.MarkerShape); err != nil {
		return nil, err
	}
	return toolRequest{Tool: s.deps.Editor.ActiveTool(), MarkerShape: s.deps.Editor.ActiveMarkerShape()}, nil
}

func (s *Server) handleTitle(dispatcher.Event) (any, error) {
	return titleRequest{Title: s.deps.Editor.Title()}, nil
}

func (s *Server) handleSetTitle(e dispatcher.Event) (any, error) {
	var req titleRequest
	if err := decode(e.Body, &req); err != nil {
		return nil, err
	}
	s.deps.Editor.SetTitle(req.Title)
	return titleRequest{Title: s.deps.Editor.Title()}, nil
}

func (s *Server) handleLayers(dispatcher.Event) (any, error) {
	return layers(s.deps.Surface.Objects(), s.deps.Editor.Model().Records(), s.logger), nil
}

func (s *Server) handlePreview(dispatcher.Event) (any, error) {
	var buf bytes.Buffer
	if err := s.deps.Preview.Render(&buf, s.deps.Surface.Objects()); err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}
	return pngImage(buf.Bytes()), nil
}

func (s *Server) listBasemaps(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"default": s.deps.Basemaps.Default().Name,
		"sources": s.deps.Basemaps.All(),
	})
}

func (s *Server) getBasemap(c fiber.Ctx) error {
	src, err := s.deps.Basemaps.Lookup(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(src)
}
