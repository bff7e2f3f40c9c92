package issuestorage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"issues-lite/internal/frontmatter"
)

const (
	// IDWidth is the fixed number of digits in an issue ID.
	IDWidth = 3
	// MaxSlugLength bounds the title-derived part of a file name.
	MaxSlugLength = 40
	// FileExt is the extension of every issue file.
	FileExt = ".md"
)

// DefaultBody is the body written into every new issue.
const DefaultBody = `
## Description
<!-- Describe the issue -->

## Acceptance Criteria
- [ ]

## Notes
<!-- Agent notes, findings, blockers go here -->
`

// Encode renders the issue in its on-disk form. Keys are always written in
// the order id, title, status, priority, created, updated.
func Encode(issue *Issue) string {
	return frontmatter.Format([]frontmatter.Field{
		{Key: "id", Value: issue.ID},
		{Key: "title", Value: issue.Title},
		{Key: "status", Value: string(issue.Status)},
		{Key: "priority", Value: issue.Priority},
		{Key: "created", Value: issue.Created},
		{Key: "updated", Value: issue.Updated},
	}, issue.Body)
}

// Decode parses an issue file. Unknown keys are dropped and missing ones are
// left empty, except id: a record without an id cannot be addressed and is
// rejected with ErrFormat.
func Decode(content string) (*Issue, error) {
	fields, body, err := frontmatter.Parse(content)
	if err != nil {
		return nil, err
	}
	if fields["id"] == "" {
		return nil, fmt.Errorf("%w: missing id", ErrFormat)
	}
	return &Issue{
		ID:       fields["id"],
		Title:    fields["title"],
		Status:   Status(fields["status"]),
		Priority: fields["priority"],
		Created:  fields["created"],
		Updated:  fields["updated"],
		Body:     body,
	}, nil
}

// PadID left-pads id with zeros to IDWidth. Longer IDs are returned as is.
func PadID(id string) string {
	if len(id) >= IDWidth {
		return id
	}
	return strings.Repeat("0", IDWidth-len(id)) + id
}

// NextID returns one more than the largest numeric ID in existing, padded
// to IDWidth. IDs that are not integers are ignored. With no numeric IDs
// the result is "001".
func NextID(existing []string) string {
	highest := 0
	for _, id := range existing {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return PadID(strconv.Itoa(highest + 1))
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a file-name-safe fragment from a title: lower-cased, every
// run of characters other than a-z and 0-9 replaced by a single "-", and cut
// to MaxSlugLength.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
	}
	return slug
}

// Filename returns the file name for a new issue.
func Filename(id, title string) string {
	return id + "-" + Slugify(title) + FileExt
}

// FilenameID returns the leading ID part of an issue file name, or "" if
// the name doesn't start with one.
func FilenameID(name string) string {
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	return name[:end]
}
