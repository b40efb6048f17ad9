// Package log builds the structured loggers shared by the CLI and the server.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// DefaultName is the root logger name.
const DefaultName = "like-that"

// Options configures a root logger.
type Options struct {
	Name   string
	Level  string
	JSON   bool
	Output io.Writer
}

// New creates a root logger. Unknown levels fall back to info.
func New(opts Options) hclog.Logger {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      ParseLevel(opts.Level),
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// ParseLevel maps a level name to an hclog level.
func ParseLevel(s string) hclog.Level {
	level := hclog.LevelFromString(strings.TrimSpace(s))
	if level == hclog.NoLevel {
		return hclog.Info
	}
	return level
}

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	return hclog.LevelFromString(strings.TrimSpace(s)) != hclog.NoLevel
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
