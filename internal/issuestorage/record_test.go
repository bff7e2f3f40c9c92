package issuestorage

import (
	"errors"
	"testing"
)

func TestPadID(t *testing.T) {
	tests := map[string]string{
		"":     "000",
		"7":    "007",
		"07":   "007",
		"007":  "007",
		"42":   "042",
		"1234": "1234",
	}
	for in, want := range tests {
		if got := PadID(in); got != want {
			t.Errorf("PadID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty", nil, "001"},
		{"single", []string{"001"}, "002"},
		{"max not count", []string{"001", "002", "005"}, "006"},
		{"unsorted", []string{"010", "003"}, "011"},
		{"non-numeric ignored", []string{"abc", "004"}, "005"},
		{"past width", []string{"999"}, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.existing); got != tt.want {
				t.Errorf("NextID(%v) = %q, want %q", tt.existing, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Fix login bug", "fix-login-bug"},
		{"Add OAuth2 support!!", "add-oauth2-support-"},
		{"  spaced  out  ", "-spaced-out-"},
		{"Crème brûlée", "cr-me-br-l-e"},
		{"a/b\\c:d", "a-b-c-d"},
		{"This title is definitely longer than forty characters", "this-title-is-definitely-longer-than-for"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if len(got) > MaxSlugLength {
				t.Errorf("Slugify(%q) length %d exceeds %d", tt.title, len(got), MaxSlugLength)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("006", "Untitled"); got != "006-untitled.md" {
		t.Errorf("Filename = %q, want %q", got, "006-untitled.md")
	}
}

func TestFilenameID(t *testing.T) {
	tests := map[string]string{
		"001-fix.md": "001",
		"1000-x.md":  "1000",
		"notes.md":   "",
		"12.md":      "12",
	}
	for name, want := range tests {
		if got := FilenameID(name); got != want {
			t.Errorf("FilenameID(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestEncode(t *testing.T) {
	issue := &Issue{
		ID:       "003",
		Title:    "Ratio 1:2",
		Status:   StatusReview,
		Priority: "high",
		Created:  "2026-01-01",
		Updated:  "2026-02-03",
		Body:     "\nbody\n",
	}

	want := "---\nid: 003\ntitle: Ratio 1:2\nstatus: review\npriority: high\ncreated: 2026-01-01\nupdated: 2026-02-03\n---\n\nbody\n"
	if got := Encode(issue); got != want {
		t.Errorf("Encode mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	contents := []string{
		"---\nid: 001\ntitle: First\nstatus: pending\npriority: medium\ncreated: 2026-01-01\nupdated: 2026-01-01\n---\n" + DefaultBody,
		"---\nid: 002\ntitle: a: b\nstatus: done\npriority: whatever you like\ncreated: 2025-12-31\nupdated: 2026-01-05\n---\n",
		"---\nid: 010\ntitle: Body keeps delimiters\nstatus: blocked\npriority: low\ncreated: 2026-01-01\nupdated: 2026-01-01\n---\n---\nnot metadata\n---\n",
	}

	for _, content := range contents {
		issue, err := Decode(content)
		if err != nil {
			t.Fatalf("Decode failed: %v\n%s", err, content)
		}
		if got := Encode(issue); got != content {
			t.Errorf("round trip mismatch:\ngot  %q\nwant %q", got, content)
		}
	}
}

func TestDecodeKeepsUnvalidatedValues(t *testing.T) {
	issue, err := Decode("---\nid: 004\nstatus: someday\npriority: P0!!\n---\n")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if issue.Status != "someday" || issue.Priority != "P0!!" {
		t.Errorf("Decode altered values: %+v", issue)
	}
	if issue.Title != "" || issue.Created != "" {
		t.Errorf("missing keys should decode empty: %+v", issue)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"no frontmatter": "# just markdown\n",
		"unterminated":   "---\nid: 001\n",
		"missing id":     "---\ntitle: no id\n---\n",
		"empty id":       "---\nid:\ntitle: x\n---\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(content); !errors.Is(err, ErrFormat) {
				t.Errorf("Decode error = %v, want ErrFormat", err)
			}
		})
	}
}
