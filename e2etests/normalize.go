package e2etests

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Normalizer rewrites the parts of command output that change from run to
// run: calendar dates and the sandbox path.
type Normalizer struct {
	sandbox string
}

// NewNormalizer creates a Normalizer for output produced in sandbox.
func NewNormalizer(sandbox string) *Normalizer {
	return &Normalizer{sandbox: sandbox}
}

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// NormalizeText replaces dates and the sandbox path in plain text output and
// drops trailing newlines.
func (n *Normalizer) NormalizeText(s string) string {
	if n.sandbox != "" {
		s = strings.ReplaceAll(s, n.sandbox, "SANDBOX")
	}
	s = datePattern.ReplaceAllString(s, "DATE")
	return strings.TrimRight(s, "\n")
}

// NormalizeJSON takes raw JSON bytes, normalizes string values, and returns
// pretty-printed JSON with sorted keys. Input that is not JSON is normalized
// as text.
func (n *Normalizer) NormalizeJSON(input []byte) string {
	var data any
	if err := json.Unmarshal(input, &data); err != nil {
		return n.NormalizeText(string(input))
	}

	output, err := json.MarshalIndent(n.walk(data), "", "  ")
	if err != nil {
		return n.NormalizeText(string(input))
	}
	return string(output)
}

func (n *Normalizer) walk(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = n.walk(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = n.walk(item)
		}
		return out
	case string:
		return n.NormalizeText(val)
	default:
		return val
	}
}

// ExtractID extracts the issue ID from a JSON create response.
func ExtractID(jsonOutput []byte) string {
	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(jsonOutput, &result); err != nil {
		return ""
	}
	return result.ID
}
