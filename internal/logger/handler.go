package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	warningSymbol = "⚠"
	crossSymbol   = "✗"
)

var (
	slate  = lipgloss.Color("#94A3B8")
	yellow = lipgloss.Color("#EAB308")
	red    = lipgloss.Color("#EF4444")
	dim    = lipgloss.Color("#64748B")
)

// PrettyHandler is a slog.Handler producing short colored lines for terminals.
// Colors are dropped when NO_COLOR is set or the writer is not a terminal.
type PrettyHandler struct {
	mu       *sync.Mutex
	w        io.Writer
	renderer *lipgloss.Renderer
	level    slog.Leveler
	attrs    []slog.Attr
	group    string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	r := lipgloss.NewRenderer(w)
	if os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return &PrettyHandler{mu: &sync.Mutex{}, w: w, renderer: r, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	color := slate
	switch {
	case r.Level >= slog.LevelError:
		msg = crossSymbol + " " + msg
		color = red
	case r.Level >= slog.LevelWarn:
		msg = warningSymbol + " " + msg
		color = yellow
	case r.Level < slog.LevelInfo:
		color = dim
	}

	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		parts = append(parts, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(h.group, attr))
		return true
	})
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}

	// Styled per line so lipgloss does not pad multi-line messages.
	style := h.renderer.NewStyle().Foreground(color)
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, strings.Join(lines, "\n")+"\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = name
	return &next
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
