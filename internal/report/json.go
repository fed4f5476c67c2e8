package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput is the machine-readable report schema.
type JSONOutput struct {
	Version     string           `json:"version"`
	Timestamp   string           `json:"timestamp"`
	Summary     Summary          `json:"summary"`
	Files       []File           `json:"files"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
}

// JSONDiagnostic is a diagnostic in the JSON report.
type JSONDiagnostic struct {
	Pos
	Message  string         `json:"message"`
	Source   string         `json:"source,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// WriteJSON writes result as indented JSON.
func WriteJSON(w io.Writer, version string, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(version, result))
}

func buildJSONOutput(version string, result *Result) JSONOutput {
	diags := make([]JSONDiagnostic, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		source := ""
		if len(d.SourceLines) > 0 {
			source = d.SourceLines[0]
		}
		diags[i] = JSONDiagnostic{Pos: d.Pos, Message: d.Text, Source: source, Metadata: d.Metadata}
	}

	files := result.Files
	if files == nil {
		files = []File{}
	}
	summary := result.Summary
	if summary.Bundles == nil {
		summary.Bundles = []string{}
	}

	return JSONOutput{
		Version:     version,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Summary:     summary,
		Files:       files,
		Diagnostics: diags,
	}
}
