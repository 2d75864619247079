package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/truesize/engine/internal/config"
	"github.com/truesize/engine/internal/logging"
	intOtel "github.com/truesize/engine/internal/otel"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "truesize"
)

var (
	// ConfigDir holds truesize.cfg.json and an optional .env file.
	ConfigDir string = "."

	SessionStartTime time.Time = time.Now()

	// SlogManager handles slog-based logging when logBackend is slog
	SlogManager *logging.SlogManager

	// Logger is the active logger for either backend
	Logger logging.Logger = logging.Nop()

	// OTelProvider exports ingest metrics when otel.enabled is set
	OTelProvider *intOtel.Provider

	// metricsOut receives exported metrics; the log file when one is open
	metricsOut io.Writer = os.Stderr
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() error {
	if dir := os.Getenv("TRUESIZE_CONFIG_DIR"); dir != "" {
		ConfigDir = dir
	}
	return config.Load(ConfigDir)
}

// setupLogging builds Logger from cfg. The returned func closes any files
// and network sinks that were opened.
func setupLogging(cfg config.LogConfig) (func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	var file io.Writer
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return closeAll, fmt.Errorf("creating logs dir: %w", err)
		}
		f, err := os.OpenFile(logging.LogFilePath(cfg.Dir, AppName, SessionStartTime), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closeAll, fmt.Errorf("opening log file: %w", err)
		}
		closers = append(closers, f)
		file = f
		metricsOut = f
	}

	var graylog io.Writer
	var graylogErr error
	if cfg.Graylog.Enabled {
		w, err := logging.NewGraylogWriter(cfg.Graylog.Address, AppName)
		if err != nil {
			graylogErr = err
		} else {
			closers = append(closers, w)
			graylog = w
		}
	}

	switch cfg.Backend {
	case "zerolog":
		var writers []io.Writer
		if file != nil {
			writers = append(writers, file)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		}
		if graylog != nil {
			writers = append(writers, graylog)
		}
		Logger = logging.NewZerologLogger(logging.NewZerolog(zerolog.MultiLevelWriter(writers...), cfg.Level))
	case "slog", "":
		SlogManager = logging.NewSlogManager()
		SlogManager.Setup(logging.Options{File: file, Graylog: graylog, Level: cfg.Level})
		Logger = SlogManager.Logger()
	default:
		return closeAll, fmt.Errorf("unknown log backend %q", cfg.Backend)
	}

	if graylogErr != nil {
		Logger.Warn("Graylog disabled", "error", graylogErr)
	}
	return closeAll, nil
}

// setupOTel installs the metrics provider. The returned func flushes and
// stops it.
func setupOTel(cfg config.OTelConfig) (func(), error) {
	var err error
	OTelProvider, err = intOtel.New(intOtel.Config{
		Enabled:        cfg.Enabled,
		ServiceName:    cfg.ServiceName,
		ExportInterval: cfg.ExportInterval,
		MetricWriter:   metricsOut,
	})
	if err != nil {
		return func() {}, fmt.Errorf("setting up otel: %w", err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("Failed to shut down OTel", "error", err)
		}
	}, nil
}

// resolveDataFile makes a relative data file path relative to ConfigDir.
func resolveDataFile(path string) (string, error) {
	if path == "" {
		return "", errors.New("no data file configured")
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(ConfigDir, path), nil
}
