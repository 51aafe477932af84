package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Constants for log levels that match slog.Level values.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Type aliases for commonly used slog types.
type (
	Logger  = *slog.Logger
	Handler = slog.Handler
	Level   = slog.Level
)

//nolint:gochecknoglobals
var logLevelStrToLevel = map[string]Level{
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// LoggerConfig holds configuration parameters for logging.
type LoggerConfig struct {
	// AppName is the application identifier added to all log entries
	AppName string

	// Output specifies where logs are written ("stdout", "stderr", "discard" or a file path)
	Output string `env:"OUTPUT" default:"stderr"`

	// Level sets the minimum log level ("debug", "info", "warn", "error")
	Level string `env:"LEVEL" default:"info"`

	// Filter specifies logger-level overrides ("svc.authsvc:debug,repo:warn")
	Filter string `env:"FILTER" default:""`

	// JSON enables JSON-formatted output instead of human-readable console output
	JSON bool `env:"JSON" default:"false"`

	OutputHandle io.Writer
}

//nolint:gochecknoglobals
var (
	Group      = slog.Group
	GroupValue = slog.GroupValue

	config     LoggerConfig
	configLock sync.Mutex
	outputLock = new(sync.Mutex)
)

// Configure sets up the global logging configuration.
// Loggers obtained before Configure keep their previous settings.
func Configure(ctx context.Context, cfg LoggerConfig, appName string) {
	if err := configure(cfg, appName); err != nil {
		panic(err)
	}

	GetLogger("infra.logging").With(Group("config",
		"appName", appName,
		"output", cfg.Output,
		"level", cfg.Level,
		"filter", cfg.Filter,
		"json", cfg.JSON,
	)).DebugContext(ctx, "logging configured")
}

func configure(cfg LoggerConfig, appName string) error {
	configLock.Lock()
	defer configLock.Unlock()

	cfg.AppName = appName

	if cfg.OutputHandle == nil {
		switch cfg.Output {
		case "", "discard":
			cfg.OutputHandle = io.Discard
		case "stdout":
			cfg.OutputHandle = os.Stdout
		case "stderr":
			cfg.OutputHandle = os.Stderr
		default:
			file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}

			cfg.OutputHandle = file
		}
	}

	config = cfg

	slog.SetLogLoggerLevel(parseLogLevel(config.Level, LevelInfo))

	return nil
}

// GetLogLogger creates a standard library *log.Logger that writes through a slog.Logger.
// Used for http.Server.ErrorLog.
func GetLogLogger(logger Logger, level Level) *log.Logger {
	return slog.NewLogLogger(logger.With("stdlog", true).Handler(), level)
}

// GetLogger creates a named logger using the global configuration.
// The name identifies the source module, e.g. "repo.user.sql_user_repository".
func GetLogger(name string) Logger {
	cfg := currentConfig()

	if cfg.OutputHandle == nil || cfg.OutputHandle == io.Discard {
		return NewNopLogger()
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLogLevel(cfg.Level, LevelInfo))

	var handler slog.Handler

	if cfg.JSON {
		//nolint:exhaustruct
		handler = slog.NewJSONHandler(cfg.OutputHandle, &slog.HandlerOptions{
			AddSource: true,
			Level:     levelVar,
		})
	} else {
		//nolint:exhaustruct
		handler = &ConsoleHandler{
			Output:    cfg.OutputHandle,
			Level:     levelVar,
			PkgLevels: cfg.pkgLevels(),
			mu:        outputLock,
		}
	}

	logger := slog.New(NewTracingHandler(handler))

	if cfg.AppName != "" {
		logger = logger.With("app", cfg.AppName)
	}

	return logger.With("logger", name)
}

func currentConfig() LoggerConfig {
	configLock.Lock()
	defer configLock.Unlock()

	return config
}

func (cfg LoggerConfig) pkgLevels() map[string]slog.Level {
	levels := make(map[string]slog.Level)

	for _, pkgLevel := range strings.Split(cfg.Filter, ",") {
		pkg, level, ok := strings.Cut(strings.TrimSpace(pkgLevel), ":")
		if !ok {
			continue
		}

		levels[pkg] = parseLogLevel(level, LevelDebug)
	}

	return levels
}

func parseLogLevel(levelStr string, fallback Level) Level {
	level, ok := logLevelStrToLevel[strings.ToLower(strings.TrimSpace(levelStr))]
	if !ok {
		return fallback
	}

	return level
}
