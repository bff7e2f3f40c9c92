package issuestorage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// RunContractTests runs the contract test suite against an IssueStore implementation.
// Each storage engine should call this with a factory returning a fresh,
// initialized, empty store.
func RunContractTests(t *testing.T, factory func() IssueStore) {
	t.Run("Create", func(t *testing.T) { testCreate(t, factory()) })
	t.Run("SequentialIDs", func(t *testing.T) { testSequentialIDs(t, factory()) })
	t.Run("Get", func(t *testing.T) { testGet(t, factory()) })
	t.Run("Raw", func(t *testing.T) { testRaw(t, factory()) })
	t.Run("Modify", func(t *testing.T) { testModify(t, factory()) })
	t.Run("List", func(t *testing.T) { testList(t, factory()) })
	t.Run("Doctor", func(t *testing.T) { testDoctor(t, factory()) })
}

func testCreate(t *testing.T, s IssueStore) {
	ctx := context.Background()

	issue := &Issue{Title: "Test Issue"}
	id, err := s.Create(ctx, issue)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id != "001" {
		t.Errorf("first ID = %q, want %q", id, "001")
	}
	if issue.File != "001-test-issue.md" {
		t.Errorf("File = %q, want %q", issue.File, "001-test-issue.md")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after Create failed: %v", err)
	}
	if got.Title != "Test Issue" {
		t.Errorf("Title mismatch: got %q, want %q", got.Title, "Test Issue")
	}
	if got.Status != StatusPending {
		t.Errorf("Status = %q, want %q", got.Status, StatusPending)
	}
	if got.Priority != DefaultPriority {
		t.Errorf("Priority = %q, want %q", got.Priority, DefaultPriority)
	}
	if got.Created == "" || got.Created != got.Updated {
		t.Errorf("Created = %q, Updated = %q; want equal non-empty dates", got.Created, got.Updated)
	}
	if got.Body != DefaultBody {
		t.Errorf("Body = %q, want default template", got.Body)
	}
}

func testSequentialIDs(t *testing.T, s IssueStore) {
	ctx := context.Background()

	for i, want := range []string{"001", "002", "003"} {
		id, err := s.Create(ctx, &Issue{Title: "Issue " + want})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if id != want {
			t.Errorf("Create %d: ID = %q, want %q", i, id, want)
		}
	}
}

func testGet(t *testing.T, s IssueStore) {
	ctx := context.Background()

	if _, err := s.Get(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store: got %v, want ErrNotFound", err)
	}

	id, err := s.Create(ctx, &Issue{Title: "Get Test"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, query := range []string{id, "1", "01"} {
		got, err := s.Get(ctx, query)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", query, err)
		}
		if got.ID != id {
			t.Errorf("Get(%q): ID = %q, want %q", query, got.ID, id)
		}
	}

	if _, err := s.Get(ctx, "2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: got %v, want ErrNotFound", err)
	}
}

func testRaw(t *testing.T, s IssueStore) {
	ctx := context.Background()

	issue := &Issue{Title: "Raw Test"}
	id, err := s.Create(ctx, issue)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	raw, err := s.Raw(ctx, "1")
	if err != nil {
		t.Fatalf("Raw failed: %v", err)
	}
	if !strings.HasPrefix(raw, "---\nid: "+id+"\ntitle: Raw Test\nstatus: pending\n") {
		t.Errorf("Raw content has unexpected header:\n%s", raw)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode(raw) failed: %v", err)
	}
	if Encode(decoded) != raw {
		t.Errorf("Encode(Decode(raw)) does not reproduce the stored content")
	}

	if _, err := s.Raw(ctx, "999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Raw missing: got %v, want ErrNotFound", err)
	}
}

func testModify(t *testing.T, s IssueStore) {
	ctx := context.Background()

	called := false
	err := s.Modify(ctx, "42", func(i *Issue) error { called = true; return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Modify non-existent: got %v, want ErrNotFound", err)
	}
	if called {
		t.Error("Modify called fn for a missing issue")
	}

	id, err := s.Create(ctx, &Issue{Title: "Modify Test"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if err := s.Modify(ctx, id, func(i *Issue) error {
		i.Status = StatusDone
		return nil
	}); err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	after, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after Modify failed: %v", err)
	}
	if after.Status != StatusDone {
		t.Errorf("Status = %q, want %q", after.Status, StatusDone)
	}
	if after.Title != before.Title || after.Priority != before.Priority ||
		after.Created != before.Created || after.Body != before.Body {
		t.Errorf("Modify changed untouched fields:\nbefore %+v\nafter  %+v", before, after)
	}
	if after.File != before.File {
		t.Errorf("Modify moved the file: %q -> %q", before.File, after.File)
	}

	// An error from fn aborts without writing.
	fnErr := errors.New("abort")
	err = s.Modify(ctx, id, func(i *Issue) error {
		i.Status = StatusBlocked
		return fnErr
	})
	if !errors.Is(err, fnErr) {
		t.Errorf("Modify with failing fn: got %v, want %v", err, fnErr)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != StatusDone {
		t.Errorf("Status after aborted Modify = %q, want %q", got.Status, StatusDone)
	}
}

func testList(t *testing.T, s IssueStore) {
	ctx := context.Background()

	issues, err := s.List(ctx, nil)
	if err != nil {
		t.Fatalf("List on empty store failed: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("List on empty store returned %d issues", len(issues))
	}

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := s.Create(ctx, &Issue{Title: title}); err != nil {
			t.Fatalf("Create %s failed: %v", title, err)
		}
	}
	for _, id := range []string{"001", "003"} {
		if err := s.Modify(ctx, id, func(i *Issue) error { i.Status = StatusDone; return nil }); err != nil {
			t.Fatalf("Modify %s failed: %v", id, err)
		}
	}

	all, err := s.List(ctx, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got := issueIDs(all); got != "001,002,003" {
		t.Errorf("List IDs = %s, want 001,002,003", got)
	}

	done := StatusDone
	filtered, err := s.List(ctx, &ListFilter{Status: &done})
	if err != nil {
		t.Fatalf("List(done) failed: %v", err)
	}
	if got := issueIDs(filtered); got != "001,003" {
		t.Errorf("List(done) IDs = %s, want 001,003", got)
	}

	bogus := Status("bogus")
	none, err := s.List(ctx, &ListFilter{Status: &bogus})
	if err != nil {
		t.Fatalf("List(bogus) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("List(bogus) returned %d issues, want 0", len(none))
	}
}

func testDoctor(t *testing.T, s IssueStore) {
	ctx := context.Background()

	if _, err := s.Create(ctx, &Issue{Title: "Healthy"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	problems, err := s.Doctor(ctx)
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("Doctor on a healthy store reported %v", problems)
	}
}

func issueIDs(issues []*Issue) string {
	ids := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID
	}
	return strings.Join(ids, ",")
}
