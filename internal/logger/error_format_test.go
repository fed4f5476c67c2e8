package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssmod/internal/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{name: "nil", err: nil},
		{name: "standard error", err: errors.New("simple error"), wantMessages: []string{"simple error"}},
		{name: "zerr sentinel", err: zerr.New("unrecognised class name"), wantMessages: []string{"unrecognised class name"}},
		{
			name:         "wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("permission denied"), "write bundle"), "flush"),
			wantMessages: []string{"flush", "write bundle", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			messages := make([]string, 0, len(entries))
			for _, e := range entries {
				messages = append(messages, e.Message)
			}
			if tt.wantMessages == nil {
				assert.Empty(t, entries)
				return
			}
			assert.Equal(t, tt.wantMessages, messages)
		})
	}
}

func TestCollectErrorEntriesMetadata(t *testing.T) {
	inner := zerr.With(zerr.New("inner"), "class", "btn")
	outer := zerr.With(zerr.Wrap(inner, "outer"), "file", "/src/a.js")

	entries := logger.CollectErrorEntries(outer)

	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"file": "/src/a.js"}, entries[0].Metadata)
	assert.Equal(t, map[string]any{"class": "btn"}, entries[1].Metadata)
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{name: "empty", entries: nil, want: ""},
		{name: "single", entries: []logger.ErrorEntry{{Message: "single error"}}, want: "Error: single error"},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{{
				Message:  "rewrite lookup",
				Metadata: map[string]any{"line": 2, "file": "/src/a.js", "column": 3},
			}},
			want: "Error: rewrite lookup\n       column: 3\n       file: /src/a.js\n       line: 2",
		},
		{
			name:    "multiline cause",
			entries: []logger.ErrorEntry{{Message: "main"}, {Message: "cause line1\ncause line2", Metadata: map[string]any{"k": "v"}}},
			want:    "Error: main\n\n  Caused by:\n    → cause line1\n      cause line2\n      k: v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}

func TestLogError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New(buf, logger.Options{})
	err := zerr.With(zerr.Wrap(zerr.New("unrecognised class name"), "rewrite lookup"), "file", "/src/a.js")
	logger.LogError(lg, err)
	logger.LogError(lg, nil)

	g := goldie.New(t)
	g.Assert(t, "log_error", buf.Bytes())
}

func TestLogErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.New(buf, logger.Options{JSON: true})
	logger.LogError(lg, errors.New("boom"))

	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestCollectErrorEntriesCarriesMetadataOfPlainErrors(t *testing.T) {
	err := zerr.With(errors.New("permission denied"), "path", "dist/app.css")

	entries := logger.CollectErrorEntries(err)

	require.Len(t, entries, 1)
	assert.Equal(t, "permission denied", entries[0].Message)
	assert.Equal(t, map[string]any{"path": "dist/app.css"}, entries[0].Metadata)
}
