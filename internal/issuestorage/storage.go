// Package issuestorage defines the issue record, its on-disk encoding and the
// interface for issue persistence in issues-lite.
package issuestorage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"issues-lite/internal/frontmatter"
)

// Sentinel errors returned by IssueStore implementations.
var (
	ErrNotFound      = errors.New("issue not found")
	ErrAlreadyExists = errors.New("issue already exists")
	ErrInvalidStatus = errors.New("invalid status")
	ErrLockTimeout   = errors.New("could not acquire lock")

	// ErrFormat marks a record whose metadata block is missing or malformed.
	ErrFormat = frontmatter.ErrFormat
)

// Status represents the current state of an issue.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// ValidStatuses lists every status an issue may hold, in display order.
// Any status may move to any other.
var ValidStatuses = []Status{
	StatusPending, StatusInProgress, StatusBlocked, StatusReview, StatusDone,
}

// ParseStatus returns s as a Status if it is one of ValidStatuses.
// Matching is exact and case-sensitive.
func ParseStatus(s string) (Status, error) {
	for _, status := range ValidStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrInvalidStatus, s)
}

// StatusNames returns ValidStatuses as a comma separated list.
func StatusNames() string {
	names := make([]string, len(ValidStatuses))
	for i, s := range ValidStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// DefaultPriority is the priority given to every new issue. Priorities are
// free text and never validated.
const DefaultPriority = "medium"

// DateLayout is the format of the created and updated fields.
const DateLayout = "2006-01-02"

// Issue is one tracked unit of work, persisted as exactly one file.
type Issue struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   Status `json:"status"`
	Priority string `json:"priority"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`

	// Body is everything after the metadata block. It is never parsed.
	Body string `json:"body,omitempty"`

	// File is the base name of the file backing the issue. Not persisted.
	File string `json:"file,omitempty"`
}

// ListFilter specifies criteria for listing issues.
type ListFilter struct {
	Status *Status // nil means any; compared exactly, never validated
}

// Matches reports whether issue passes the filter. A nil filter matches all.
func (f *ListFilter) Matches(issue *Issue) bool {
	if f == nil {
		return true
	}
	if f.Status != nil && issue.Status != *f.Status {
		return false
	}
	return true
}

// IssueStore defines the interface for issue persistence.
type IssueStore interface {
	// Init prepares the storage (creates the directory, etc.).
	Init(ctx context.Context) error

	// List returns all issues matching the filter, sorted by ID ascending.
	// A nil filter returns every issue. Any unparseable record fails the
	// whole call with an error wrapping ErrFormat.
	List(ctx context.Context, filter *ListFilter) ([]*Issue, error)

	// Get retrieves an issue by ID. The ID is zero-padded before matching,
	// so "7" and "007" are the same issue.
	// Returns ErrNotFound if no record carries that ID.
	Get(ctx context.Context, id string) (*Issue, error)

	// Raw returns the unmodified file content of the issue with the given ID.
	// Returns ErrNotFound if no record carries that ID.
	Raw(ctx context.Context, id string) (string, error)

	// Create assigns the next sequential ID, fills creation defaults and
	// writes a new record. Returns the new ID; issue.File is set to the
	// file name that was written.
	Create(ctx context.Context, issue *Issue) (string, error)

	// Modify reads an issue, applies fn to it, stamps Updated with the
	// current date and writes it back in place. The body is preserved.
	// Returns ErrNotFound, without writing, if the issue doesn't exist.
	Modify(ctx context.Context, id string, fn func(*Issue) error) error

	// Doctor reports inconsistencies in the stored records.
	Doctor(ctx context.Context) ([]string, error)
}
