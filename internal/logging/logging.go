// Package logging builds the slog logger used for diagnostics. Diagnostics
// always go to stderr so that stdout only carries command results.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	perrors "github.com/jmgilman/go/errors"
	"github.com/mattn/go-isatty"
)

const (
	DefaultLevel  = "warn"
	DefaultFormat = FormatAuto

	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, perrors.Newf(perrors.CodeInvalidInput, "unknown log level: %q", s)
}

// New returns a logger writing to w. format "auto" selects text output when
// w is a terminal and JSON otherwise.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch resolveFormat(w, format) {
	case FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, perrors.Newf(perrors.CodeInvalidInput, "unknown log format: %q", format)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func resolveFormat(w io.Writer, format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f != "" && f != FormatAuto {
		return f
	}
	if isTerminal(w) {
		return FormatText
	}
	return FormatJSON
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
