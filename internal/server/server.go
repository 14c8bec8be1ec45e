// Package server exposes one editing session over HTTP. Every request that reads
// or mutates session state runs through the dispatcher under a single lock, so
// interactions are applied one at a time in arrival order.
package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/mapsketch/annotator/internal/basemap"
	"github.com/mapsketch/annotator/internal/config"
	"github.com/mapsketch/annotator/internal/dispatcher"
	"github.com/mapsketch/annotator/internal/editor"
	"github.com/mapsketch/annotator/internal/feed"
	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/model/core"
	"github.com/mapsketch/annotator/internal/preview"
	"github.com/mapsketch/annotator/internal/surface/memory"
)

// Commands registered on the session dispatcher.
const (
	cmdEvent    = "event"
	cmdLayers   = "layers"
	cmdList     = "list"
	cmdLegend   = "legend"
	cmdRename   = "record.rename"
	cmdDelete   = "record.delete"
	cmdEdit     = "record.edit"
	cmdStyle    = "style"
	cmdTool     = "tool"
	cmdTitle    = "title"
	cmdSetTitle = "title.set"
	cmdPreview  = "preview"
	cmdUpdates  = "updates"
	cmdStatus   = "status"
)

// Dependencies holds everything a session server is built from. Surface must be
// the surface Editor was built on, with the editor's router installed as its
// listener.
type Dependencies struct {
	Editor   *editor.Editor
	Surface  *memory.Surface
	Basemaps *basemap.Catalog
	Preview  *preview.Renderer
	Logger   logging.Logger
}

// Server is the HTTP front of one editor session.
type Server struct {
	deps    Dependencies
	app     *fiber.App
	disp    *dispatcher.Dispatcher
	updates *feed.Feed
	session string
	started time.Time
	logger  logging.Logger
}

// New wires the session routes and subscribes the update feed to the editor.
func New(cfg config.ServerConfig, deps Dependencies) (*Server, error) {
	switch {
	case deps.Editor == nil:
		return nil, fmt.Errorf("server: editor: %w", core.ErrMissingPrerequisite)
	case deps.Surface == nil:
		return nil, fmt.Errorf("server: surface: %w", core.ErrMissingPrerequisite)
	case deps.Basemaps == nil:
		return nil, fmt.Errorf("server: basemap catalog: %w", core.ErrMissingPrerequisite)
	case deps.Preview == nil:
		return nil, fmt.Errorf("server: preview renderer: %w", core.ErrMissingPrerequisite)
	}
	log := deps.Logger
	if log == nil {
		log = logging.Nop()
	}

	disp, err := dispatcher.New(log)
	if err != nil {
		return nil, fmt.Errorf("server: dispatcher: %w", err)
	}

	appName := cfg.AppName
	if appName == "" {
		appName = "annotator"
	}

	s := &Server{
		deps:    deps,
		app:     fiber.New(fiber.Config{AppName: appName}),
		disp:    disp,
		updates: feed.New(cfg.UpdateBacklog),
		session: uuid.NewString(),
		started: time.Now(),
		logger:  log,
	}
	deps.Editor.AddView(s.updates)
	s.registerCommands()
	s.routes()

	log.Info("session created", "session", s.session)
	return s, nil
}

func (s *Server) registerCommands() {
	register := func(cmd string, h dispatcher.HandlerFunc) {
		s.disp.Register(cmd, h, dispatcher.Serialized(), dispatcher.Logged())
	}

	register(cmdEvent, s.handleEvent)
	register(cmdLayers, s.handleLayers)
	register(cmdList, s.handleList)
	register(cmdLegend, s.handleLegend)
	register(cmdRename, s.handleRename)
	register(cmdDelete, s.handleDelete)
	register(cmdEdit, s.handleEdit)
	register(cmdStyle, s.handleStyle)
	register(cmdTool, s.handleTool)
	register(cmdTitle, s.handleTitle)
	register(cmdSetTitle, s.handleSetTitle)
	register(cmdPreview, s.handlePreview)
	register(cmdUpdates, s.handleUpdates)
	register(cmdStatus, s.handleStatus)
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	api := s.app.Group("/api/v1")

	api.Get("/session", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": s.session})
	})

	api.Post("/events", s.command(cmdEvent))
	api.Get("/layers", s.command(cmdLayers))
	api.Get("/list", s.command(cmdList))
	api.Get("/legend", s.command(cmdLegend))

	api.Put("/records/:index/name", s.command(cmdRename, "index"))
	api.Delete("/records/:index", s.command(cmdDelete, "index"))
	api.Post("/records/:index/edit", s.command(cmdEdit, "index"))

	api.Post("/style", s.command(cmdStyle))
	api.Post("/tool", s.command(cmdTool))
	api.Get("/title", s.command(cmdTitle))
	api.Put("/title", s.command(cmdSetTitle))

	api.Get("/basemaps", s.listBasemaps)
	api.Get("/basemaps/:name", s.getBasemap)

	api.Get("/preview.png", s.command(cmdPreview))
	api.Get("/updates", func(c fiber.Ctx) error {
		return s.dispatch(c, cmdUpdates, c.Query("since"))
	})
	api.Get("/status", s.command(cmdStatus))
}

// command returns a route handler that dispatches cmd with the named path
// parameters as arguments and the request body as payload.
func (s *Server) command(cmd string, params ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		args := make([]string, len(params))
		for i, p := range params {
			args[i] = c.Params(p)
		}
		return s.dispatch(c, cmd, args...)
	}
}

func (s *Server) dispatch(c fiber.Ctx, cmd string, args ...string) error {
	result, err := s.disp.Dispatch(dispatcher.Event{Command: cmd, Args: args, Body: c.Body()})
	if err != nil {
		return s.fail(c, err)
	}

	if img, ok := result.(pngImage); ok {
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(img)
	}
	return c.JSON(result)
}

func (s *Server) fail(c fiber.Ctx, err error) error {
	status := statusOf(err)
	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrSessionMismatch), errors.Is(err, ErrNoSelection):
		return fiber.StatusConflict
	case errors.Is(err, core.ErrInvalidIndex),
		errors.Is(err, memory.ErrUnknownHandle),
		errors.Is(err, basemap.ErrUnknownBasemap):
		return fiber.StatusNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, memory.ErrInvalidInteraction):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Session returns the session id clients must echo on interaction events.
func (s *Server) Session() string {
	return s.session
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", "address", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
