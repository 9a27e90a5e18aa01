// Package logging applies LoggingConfig to the process-wide stdlib
// logger and adds level-gated helpers around it.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/planforge/aps-go/internal/infrastructure/config"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var minLevel = levelInfo

func parseLevel(name string) level {
	switch name {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Setup configures the process-wide logger: output destination, caller
// reporting and the minimum level the helpers below emit. When output is
// "file" the returned closer owns the opened file; for stdout/stderr it
// is a no-op.
func Setup(cfg config.LoggingConfig) (io.Closer, error) {
	minLevel = parseLevel(cfg.Level)

	flags := log.LstdFlags
	if cfg.IncludeCaller {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)

	switch cfg.Output {
	case "stderr":
		log.SetOutput(os.Stderr)
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging output is \"file\" but no file_path is configured")
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	default:
		log.SetOutput(os.Stdout)
	}
	return nopCloser{}, nil
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) { logf(levelDebug, "DEBUG", format, args...) }

// Infof logs at info level.
func Infof(format string, args ...any) { logf(levelInfo, "INFO", format, args...) }

// Warnf logs at warn level.
func Warnf(format string, args ...any) { logf(levelWarn, "WARN", format, args...) }

// Errorf logs at error level.
func Errorf(format string, args ...any) { logf(levelError, "ERROR", format, args...) }

func logf(l level, tag, format string, args ...any) {
	if l < minLevel {
		return
	}
	// calldepth 3: the caller of the exported helper.
	_ = log.Output(3, tag+" "+fmt.Sprintf(format, args...))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
