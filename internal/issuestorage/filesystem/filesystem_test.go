package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"issues-lite/internal/issuestorage"
	"issues-lite/testutil"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*FilesystemStorage, *testutil.IssueGenerator) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, WithClock(func() time.Time { return fixedNow })), testutil.NewIssueGenerator(t, dir)
}

func TestCreateUsesMaxPlusOne(t *testing.T) {
	store, gen := newTestStore(t)
	gen.GenerateIDs("001", "002", "005")

	issue := &issuestorage.Issue{Title: "Sixth"}
	id, err := store.Create(context.Background(), issue)
	require.NoError(t, err)

	assert.Equal(t, "006", id)
	assert.Equal(t, "006-sixth.md", issue.File)
	assert.FileExists(t, filepath.Join(store.Root(), "006-sixth.md"))
}

func TestCreateWritesTemplate(t *testing.T) {
	store, _ := newTestStore(t)

	issue := &issuestorage.Issue{Title: "Fix: the login page"}
	_, err := store.Create(context.Background(), issue)
	require.NoError(t, err)

	content := testutil.ReadFile(t, filepath.Join(store.Root(), issue.File))
	want := "---\n" +
		"id: 001\n" +
		"title: Fix: the login page\n" +
		"status: pending\n" +
		"priority: medium\n" +
		"created: 2026-03-14\n" +
		"updated: 2026-03-14\n" +
		"---\n" +
		issuestorage.DefaultBody
	assert.Equal(t, want, content)
	assert.Equal(t, "001-fix-the-login-page.md", issue.File)
}

func TestCreateMakesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does", "not", "exist")
	store := New(root)

	id, err := store.Create(context.Background(), &issuestorage.Issue{Title: "First"})
	require.NoError(t, err)
	assert.Equal(t, "001", id)
	assert.DirExists(t, root)
}

func TestCreateFilenameCollision(t *testing.T) {
	store, gen := newTestStore(t)
	// A stray file already holds the name the next issue would get, but its
	// metadata id is not numeric so it does not advance the counter.
	gen.Write(&issuestorage.Issue{ID: "draft", File: "001-dup.md"})

	_, err := store.Create(context.Background(), &issuestorage.Issue{Title: "Dup"})
	assert.ErrorIs(t, err, issuestorage.ErrAlreadyExists)
}

func TestCreateTimesOutOnHeldLock(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, WithLockTimeout(100*time.Millisecond))

	held := flock.New(filepath.Join(dir, LockFile))
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Unlock()

	_, err = store.Create(context.Background(), &issuestorage.Issue{Title: "Blocked"})
	assert.ErrorIs(t, err, issuestorage.ErrLockTimeout)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, issuestorage.FileExt, filepath.Ext(e.Name()), "no issue should be written: %s", e.Name())
	}
}

func TestGetMatchesMetadataNotFilename(t *testing.T) {
	store, gen := newTestStore(t)
	gen.Write(&issuestorage.Issue{ID: "003", Title: "Renamed", File: "999-old-name.md"})

	issue, err := store.Get(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "003", issue.ID)
	assert.Equal(t, "999-old-name.md", issue.File)

	_, err = store.Get(context.Background(), "999")
	assert.ErrorIs(t, err, issuestorage.ErrNotFound)
}

func TestRawReturnsExactContent(t *testing.T) {
	store, gen := newTestStore(t)
	content := "---\nid: 007\ntitle: Hand written\nstatus: review\nextra: kept on disk\n---\nfree text\n"
	gen.WriteRaw("007-hand-written.md", content)

	for _, query := range []string{"7", "007"} {
		raw, err := store.Raw(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, content, raw)
	}
}

func TestModifyTouchesOnlyStatusAndUpdated(t *testing.T) {
	store, gen := newTestStore(t)
	gen.GenerateIDs("001", "002")
	original := &issuestorage.Issue{
		ID:       "003",
		Title:    "Keep: everything else",
		Priority: "urgent-ish",
		Body:     "\ncustom body\n---\nwith a rule\n",
	}
	path := gen.Write(original)

	err := store.Modify(context.Background(), "3", func(i *issuestorage.Issue) error {
		i.Status = issuestorage.StatusDone
		return nil
	})
	require.NoError(t, err)

	got, err := issuestorage.Decode(testutil.ReadFile(t, path))
	require.NoError(t, err)

	want := *original
	want.Status = issuestorage.StatusDone
	want.Updated = "2026-03-14"
	if diff := cmp.Diff(&want, got, cmpopts.IgnoreFields(issuestorage.Issue{}, "File")); diff != "" {
		t.Errorf("modified issue mismatch (-want +got):\n%s", diff)
	}
}

func TestModifyNotFoundWritesNothing(t *testing.T) {
	store, gen := newTestStore(t)
	path := gen.Write(&issuestorage.Issue{ID: "001"})
	before := testutil.ReadFile(t, path)

	err := store.Modify(context.Background(), "002", func(i *issuestorage.Issue) error {
		i.Status = issuestorage.StatusDone
		return nil
	})
	assert.ErrorIs(t, err, issuestorage.ErrNotFound)
	assert.Equal(t, before, testutil.ReadFile(t, path))
}

func TestListSortsAndFilters(t *testing.T) {
	store, gen := newTestStore(t)
	gen.Write(&issuestorage.Issue{ID: "010", Status: issuestorage.StatusDone})
	gen.Write(&issuestorage.Issue{ID: "002", Status: issuestorage.StatusPending})
	gen.Write(&issuestorage.Issue{ID: "001", Status: issuestorage.StatusDone})
	gen.WriteRaw("README.txt", "not an issue")
	require.NoError(t, os.Mkdir(filepath.Join(store.Root(), "archive.md"), 0755))

	all, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002", "010"}, ids(all))

	done := issuestorage.StatusDone
	filtered, err := store.List(context.Background(), &issuestorage.ListFilter{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "010"}, ids(filtered))
}

func TestListMissingRootIsEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing"))

	issues, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestMalformedFileFailsReads(t *testing.T) {
	store, gen := newTestStore(t)
	gen.GenerateIDs("001")
	gen.WriteRaw("002-broken.md", "# no frontmatter here\n")
	ctx := context.Background()

	_, err := store.List(ctx, nil)
	assert.ErrorIs(t, err, issuestorage.ErrFormat)
	assert.Contains(t, err.Error(), "002-broken.md")

	_, err = store.Get(ctx, "1")
	assert.ErrorIs(t, err, issuestorage.ErrFormat)

	_, err = store.Create(ctx, &issuestorage.Issue{Title: "x"})
	assert.ErrorIs(t, err, issuestorage.ErrFormat)

	err = store.Modify(ctx, "1", func(*issuestorage.Issue) error { return nil })
	assert.ErrorIs(t, err, issuestorage.ErrFormat)
}

func TestDoctor(t *testing.T) {
	store, gen := newTestStore(t)
	gen.GenerateIDs("001")
	gen.Write(&issuestorage.Issue{ID: "002", Title: "first"})
	gen.Write(&issuestorage.Issue{ID: "002", Title: "second"})
	gen.Write(&issuestorage.Issue{ID: "003", Status: "someday"})
	gen.Write(&issuestorage.Issue{ID: "004", File: "040-misnamed.md"})
	gen.WriteRaw("005-broken.md", "broken\n")

	problems, err := store.Doctor(context.Background())
	require.NoError(t, err)

	joined := strings.Join(problems, "\n")
	assert.Len(t, problems, 4, joined)
	assert.Contains(t, joined, "duplicate id 002: 002-first.md, 002-second.md")
	assert.Contains(t, joined, "003-issue-003.md: invalid status \"someday\"")
	assert.Contains(t, joined, "040-misnamed.md: file name does not match id 004")
	assert.Contains(t, joined, "005-broken.md: invalid frontmatter")
}

func TestDoctorMissingRoot(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing"))

	problems, err := store.Doctor(context.Background())
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func ids(issues []*issuestorage.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.ID
	}
	return out
}
