// Package testutil provides test utilities for issues-lite storage testing.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"issues-lite/internal/issuestorage"
)

// FixtureDate is the created/updated date given to generated issues.
const FixtureDate = "2026-01-01"

// IssueGenerator writes issue files straight into a directory, bypassing the
// store, so tests can set up IDs and statuses that Create would never produce.
type IssueGenerator struct {
	t   testing.TB
	dir string
	ids []string
}

// NewIssueGenerator creates a new generator writing into dir.
// The directory is created if needed.
func NewIssueGenerator(t testing.TB, dir string) *IssueGenerator {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating fixture directory: %v", err)
	}
	return &IssueGenerator{t: t, dir: dir}
}

// Dir returns the directory the generator writes into.
func (g *IssueGenerator) Dir() string {
	return g.dir
}

// IDs returns all issue IDs written by this generator.
func (g *IssueGenerator) IDs() []string {
	return g.ids
}

// Write stores issue as a file and returns its path. Empty fields are filled
// with fixture defaults; issue.File, if set, overrides the derived file name.
func (g *IssueGenerator) Write(issue *issuestorage.Issue) string {
	g.t.Helper()

	if issue.Title == "" {
		issue.Title = fmt.Sprintf("Issue %s", issue.ID)
	}
	if issue.Status == "" {
		issue.Status = issuestorage.StatusPending
	}
	if issue.Priority == "" {
		issue.Priority = issuestorage.DefaultPriority
	}
	if issue.Created == "" {
		issue.Created = FixtureDate
	}
	if issue.Updated == "" {
		issue.Updated = issue.Created
	}
	if issue.Body == "" {
		issue.Body = issuestorage.DefaultBody
	}
	if issue.File == "" {
		issue.File = issuestorage.Filename(issue.ID, issue.Title)
	}

	path := g.WriteRaw(issue.File, issuestorage.Encode(issue))
	g.ids = append(g.ids, issue.ID)
	return path
}

// WriteRaw stores content verbatim under name and returns its path.
func (g *IssueGenerator) WriteRaw(name, content string) string {
	g.t.Helper()
	path := filepath.Join(g.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		g.t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// GenerateIDs writes one default issue for each of the given IDs.
func (g *IssueGenerator) GenerateIDs(ids ...string) []*issuestorage.Issue {
	g.t.Helper()
	issues := make([]*issuestorage.Issue, len(ids))
	for i, id := range ids {
		issues[i] = &issuestorage.Issue{ID: id}
		g.Write(issues[i])
	}
	return issues
}

// GenerateStatuses writes one issue per status, with IDs 001, 002, ... in
// argument order.
func (g *IssueGenerator) GenerateStatuses(statuses ...issuestorage.Status) []*issuestorage.Issue {
	g.t.Helper()
	issues := make([]*issuestorage.Issue, len(statuses))
	for i, status := range statuses {
		issues[i] = &issuestorage.Issue{
			ID:     issuestorage.PadID(fmt.Sprint(i + 1)),
			Status: status,
		}
		g.Write(issues[i])
	}
	return issues
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
