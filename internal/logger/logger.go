// Package logger builds the slog loggers used by cssmod and renders zerr chains for humans.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Options selects the handler and level of a logger.
type Options struct {
	Level slog.Level
	// JSON switches to slog's JSON handler.
	JSON bool
}

// New returns a logger writing to w. A nil w writes to stderr.
func New(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(NewPrettyHandler(w, handlerOpts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LogError logs err as a formatted chain on pretty loggers and as an error
// attribute on everything else.
func LogError(l *slog.Logger, err error) {
	if err == nil {
		return
	}
	if _, ok := l.Handler().(*PrettyHandler); !ok {
		l.Error("operation failed", "error", err)
		return
	}
	l.Error(FormatError(err))
}

// messager matches zerr errors, which report their own message without the chain.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// FormatError renders err as "Error: ..." followed by its causes.
func FormatError(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}

func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	// Metadata of message-less links, as zerr.With leaves on plain errors,
	// moves to the next link.
	var carried map[string]any
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: carried})
			break
		}
		var meta map[string]any
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}
		if m.Message() == "" {
			carried = merge(carried, meta)
			current = errors.Unwrap(current)
			continue
		}
		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: merge(carried, meta)})
		carried = nil
		current = errors.Unwrap(current)
	}
	return entries
}

func merge(a, b map[string]any) map[string]any {
	if len(a) == 0 {
		return b
	}
	for k, v := range b {
		a[k] = v
	}
	return a
}

func formatErrorEntries(entries []ErrorEntry) string {
	lines := make([]string, 0, len(entries)*2)
	for i, entry := range entries {
		msg := strings.Split(entry.Message, "\n")
		head, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}
		lines = append(lines, head+msg[0])
		for _, line := range msg[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range sortedKeys(entry.Metadata) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
