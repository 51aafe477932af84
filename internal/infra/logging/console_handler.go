package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/gookit/color"
)

//nolint:gochecknoglobals
var levelColors = map[slog.Level]color.Color{
	slog.LevelDebug: color.Cyan,
	slog.LevelInfo:  color.Green,
	slog.LevelWarn:  color.Yellow,
	slog.LevelError: color.Red,
}

// ConsoleHandler implements slog.Handler and renders colored, human-readable
// records for development use.
type ConsoleHandler struct {
	// Output is the destination for log output (typically os.Stdout or os.Stderr)
	Output io.Writer
	// Level is the minimum level for log records to be processed
	Level slog.Leveler
	// PkgLevels maps logger names to minimum log levels
	PkgLevels map[string]slog.Level

	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*ConsoleHandler)(nil)

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.attrs))
	attrs = append(attrs, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)

		return true
	})

	if !h.pkgEnabled(loggerName(attrs), r.Level) {
		return nil
	}

	var line strings.Builder

	line.WriteString(color.Gray.Sprint(r.Time.Format("15:04:05.000000")))
	line.WriteString(" ")
	line.WriteString(levelColors[r.Level].Sprint("[" + r.Level.String() + "]"))
	line.WriteString(" ")
	line.WriteString(r.Message)

	if len(attrs) > 0 {
		var prefix string
		if len(h.groups) > 0 {
			prefix = strings.Join(h.groups, ".") + "."
		}

		line.WriteString(" ")
		line.WriteString(color.Gray.Sprint("|"))
		renderAttrs(&line, prefix, attrs)
	}

	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fn := strings.Split(frame.Function, string(os.PathSeparator))

		line.WriteString("\n-> ")
		line.WriteString(color.Gray.Sprint(fn[len(fn)-1] + "()"))
		line.WriteString(" in ")
		line.WriteString(color.OpUnderscore.Sprint(frame.File + ":" + strconv.Itoa(frame.Line)))
	}

	if h.mu != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
	}

	if _, err := fmt.Fprintln(h.Output, line.String()); err != nil {
		return fmt.Errorf("write log: %w", err)
	}

	return nil
}

// pkgEnabled applies the most specific PkgLevels entry matching the dotted logger name.
// The empty key acts as a catch-all.
func (h *ConsoleHandler) pkgEnabled(name string, level slog.Level) bool {
	parts := strings.Split(name, ".")

	for i := len(parts); i >= 0; i-- {
		minLevel, ok := h.PkgLevels[strings.Join(parts[:i], ".")]
		if ok {
			return level >= minLevel
		}
	}

	return true
}

func loggerName(attrs []slog.Attr) string {
	for _, attr := range attrs {
		if attr.Key == "logger" {
			return attr.Value.String()
		}
	}

	return ""
}

func renderAttrs(out *strings.Builder, prefix string, attrs []slog.Attr) {
	for _, attr := range attrs {
		if attr.Value.Kind() == slog.KindGroup {
			renderAttrs(out, prefix+attr.Key+".", attr.Value.Group())

			continue
		}

		out.WriteString(" " + prefix + attr.Key + "=")
		out.WriteString(color.Gray.Sprint(attr.Value.String()))
	}
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		Output:    h.Output,
		Level:     h.Level,
		PkgLevels: h.PkgLevels,
		mu:        h.mu,
		attrs:     append([]slog.Attr(nil), h.attrs...),
		groups:    append([]string(nil), h.groups...),
	}
}

// WithAttrs implements slog.Handler.WithAttrs.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) Handler {
	c := h.clone()
	c.attrs = append(c.attrs, attrs...)

	return c
}

// WithGroup implements slog.Handler.WithGroup.
func (h *ConsoleHandler) WithGroup(name string) Handler {
	c := h.clone()
	c.groups = append(c.groups, name)

	return c
}

// Enabled implements slog.Handler.Enabled.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.Level.Level() <= level
}
