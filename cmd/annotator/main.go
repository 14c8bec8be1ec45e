package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mapsketch/annotator/internal/basemap"
	"github.com/mapsketch/annotator/internal/config"
	"github.com/mapsketch/annotator/internal/editor"
	"github.com/mapsketch/annotator/internal/logging"
	"github.com/mapsketch/annotator/internal/preview"
	"github.com/mapsketch/annotator/internal/server"
	"github.com/mapsketch/annotator/internal/surface/memory"
)

// BuildDate can be set at build time via ldflags
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	if err := run(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configDir string) error {
	sessionStart := time.Now()

	configErr := config.Load(configDir)
	cfg, err := config.Get()
	if err != nil {
		return err
	}

	logManager := logging.NewManager()
	var logFile *os.File
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
			return fmt.Errorf("creating logs directory: %w", err)
		}
		path := logging.LogFilePath(cfg.LogsDir, cfg.Server.AppName, sessionStart)
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
	}
	if logFile != nil {
		logManager.Setup(os.Stdout, logFile, cfg.LogLevel)
	} else {
		logManager.Setup(os.Stdout, nil, cfg.LogLevel)
	}
	log := logManager.Logger()

	log.Info("starting annotator", "version", Version, "buildDate", BuildDate)
	if configErr != nil {
		log.Warn("config file not loaded, using defaults",
			"path", filepath.Join(configDir, config.FileName), "error", configErr)
	}

	surf := memory.New()
	ed, err := editor.New(surf, editor.OptionsFrom(cfg.Editor), log)
	if err != nil {
		return fmt.Errorf("creating editor: %w", err)
	}
	surf.SetListener(ed.Router())

	catalog, err := basemap.New(cfg.Basemap)
	if err != nil {
		return fmt.Errorf("loading basemaps: %w", err)
	}
	renderer := preview.New(cfg.Preview, log)

	srv, err := server.New(cfg.Server, server.Dependencies{
		Editor:   ed,
		Surface:  surf,
		Basemaps: catalog,
		Preview:  renderer,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Server.Address)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		log.Info("shutting down", "signal", s.String())
		return srv.Shutdown()
	}
}
