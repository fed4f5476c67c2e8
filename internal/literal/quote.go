package literal

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Quote returns s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
