// Package frontmatter reads and writes the "---" delimited key/value block
// at the head of an issue file.
//
// The format has no escaping rule. A metadata line is split on its first
// colon, so values may contain colons, but a value can never span lines.
// Everything after the closing delimiter is returned untouched.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter is the line that opens and closes the metadata block.
const Delimiter = "---"

// ErrFormat is returned when content does not start with a complete
// metadata block.
var ErrFormat = errors.New("invalid frontmatter")

const (
	openLine  = Delimiter + "\n"
	closeLine = "\n" + Delimiter + "\n"
)

// Field is a single key/value pair. Format writes fields in slice order.
type Field struct {
	Key   string
	Value string
}

// Parse splits content into its metadata fields and the body that follows.
// Duplicate keys keep the last value.
func Parse(content string) (map[string]string, string, error) {
	if !strings.HasPrefix(content, openLine) {
		return nil, "", fmt.Errorf("%w: missing opening %q line", ErrFormat, Delimiter)
	}
	rest := content[len(openLine):]

	end := strings.Index(rest, closeLine)
	if end < 0 {
		return nil, "", fmt.Errorf("%w: missing closing %q line", ErrFormat, Delimiter)
	}

	fields := make(map[string]string)
	for _, line := range strings.Split(rest[:end], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}

	return fields, rest[end+len(closeLine):], nil
}

// Format renders fields as a metadata block followed by body. With at least
// one field the output parses back to the same fields and body.
func Format(fields []Field, body string) string {
	var b strings.Builder
	b.WriteString(openLine)
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	b.WriteString(Delimiter)
	b.WriteString("\n")
	b.WriteString(body)
	return b.String()
}
