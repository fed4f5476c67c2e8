// Package report renders build results and failures for people and machines.
package report

import (
	"errors"
	"os"
	"strings"
)

// Pos is a 1-based location in a program source.
type Pos struct {
	Filename string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Diagnostic describes a build failure at a source location.
type Diagnostic struct {
	Pos  Pos
	Text string
	// SourceLines holds the source line at Pos when it could be read.
	SourceLines []string
	// Metadata is the error metadata other than the position.
	Metadata map[string]any
}

// Site summarizes one compiled literal.
type Site struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Binding string `json:"binding,omitempty"`
	Classes int    `json:"classes"`
	Bytes   int    `json:"bytes"`
}

// File is the report for one transformed file.
type File struct {
	Path    string `json:"path"`
	Sites   []Site `json:"sites"`
	Lookups int    `json:"lookups"`
}

// Summary aggregates a build.
type Summary struct {
	FilesScanned int      `json:"files_scanned"`
	FilesSkipped int      `json:"files_skipped"`
	Literals     int      `json:"literals"`
	Lookups      int      `json:"lookups"`
	Bundles      []string `json:"bundles"`
}

// Result is everything a reporter prints for one build.
type Result struct {
	Files       []File
	Summary     Summary
	Diagnostics []Diagnostic
}

type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// FromError builds a diagnostic from a zerr chain. Metadata set by outer
// errors wins over metadata of the same key further down the chain. The
// source line is read from disk when the position is known.
func FromError(err error) Diagnostic {
	var d Diagnostic
	var messages []string
	meta := make(map[string]any)
	for current := err; current != nil; current = errors.Unwrap(current) {
		if md, ok := current.(metadataer); ok {
			for k, v := range md.Metadata() {
				if _, seen := meta[k]; !seen {
					meta[k] = v
				}
			}
		}
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		if m.Message() != "" {
			messages = append(messages, m.Message())
		}
	}
	d.Text = strings.Join(messages, ": ")

	d.Pos.Filename, _ = meta["file"].(string)
	d.Pos.Line, _ = meta["line"].(int)
	d.Pos.Column, _ = meta["column"].(int)
	delete(meta, "file")
	delete(meta, "line")
	delete(meta, "column")
	if len(meta) > 0 {
		d.Metadata = meta
	}

	if d.Pos.Filename != "" && d.Pos.Line > 0 {
		// #nosec G304 - path comes from the failing build input
		if src, err := os.ReadFile(d.Pos.Filename); err == nil {
			if line, ok := sourceLine(string(src), d.Pos.Line); ok {
				d.SourceLines = []string{line}
			}
		}
	}
	return d
}

func sourceLine(src string, n int) (string, bool) {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[n-1], "\r"), true
}
