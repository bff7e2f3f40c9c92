// Package filesystem implements the IssueStore interface using a directory of
// markdown files. Each issue is stored as <id>-<slug>.md in the root directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"issues-lite/internal/issuestorage"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

const (
	// LockFile is the advisory lock taken while assigning IDs and rewriting
	// records. It has no .md extension so it is never read as an issue.
	LockFile = ".issues.lock"

	// DefaultLockTimeout bounds how long Create and Modify wait for LockFile.
	DefaultLockTimeout = 5 * time.Second

	lockRetryDelay = 50 * time.Millisecond
	filePerms      = 0644
)

// FilesystemStorage implements issuestorage.IssueStore on a single directory.
type FilesystemStorage struct {
	root        string
	now         func() time.Time
	lockTimeout time.Duration
}

// Option configures a FilesystemStorage instance.
type Option func(*FilesystemStorage)

// WithClock sets the clock used for created and updated dates.
func WithClock(now func() time.Time) Option {
	return func(fs *FilesystemStorage) {
		fs.now = now
	}
}

// WithLockTimeout sets how long writers wait for the directory lock.
func WithLockTimeout(d time.Duration) Option {
	return func(fs *FilesystemStorage) {
		fs.lockTimeout = d
	}
}

// New creates a new FilesystemStorage rooted at the given directory.
// The directory does not need to exist until the first write.
func New(root string, opts ...Option) *FilesystemStorage {
	fs := &FilesystemStorage{
		root:        root,
		now:         time.Now,
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Root returns the directory holding the issue files.
func (fs *FilesystemStorage) Root() string {
	return fs.root
}

// Init creates the issue directory.
func (fs *FilesystemStorage) Init(ctx context.Context) error {
	return os.MkdirAll(fs.root, 0755)
}

func (fs *FilesystemStorage) today() string {
	return fs.now().UTC().Format(issuestorage.DateLayout)
}

// record is a decoded issue together with the bytes it was decoded from.
type record struct {
	issue *issuestorage.Issue
	raw   string
}

// readAll decodes every issue file in the root, sorted by ID. A missing root
// yields no records. Any unparseable file fails the whole read.
func (fs *FilesystemStorage) readAll() ([]record, error) {
	entries, err := os.ReadDir(fs.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading issue directory: %w", err)
	}

	var records []record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != issuestorage.FileExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.root, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		issue, err := issuestorage.Decode(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		issue.File = entry.Name()
		records = append(records, record{issue: issue, raw: string(data)})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].issue.ID < records[j].issue.ID
	})
	return records, nil
}

// find returns the record whose metadata ID equals the padded id. The file
// name plays no part in the match.
func (fs *FilesystemStorage) find(id string) (*record, error) {
	records, err := fs.readAll()
	if err != nil {
		return nil, err
	}
	padded := issuestorage.PadID(id)
	for i := range records {
		if records[i].issue.ID == padded {
			return &records[i], nil
		}
	}
	return nil, issuestorage.ErrNotFound
}

// withLock runs fn while holding the directory's advisory lock.
func (fs *FilesystemStorage) withLock(ctx context.Context, fn func() error) error {
	if err := fs.Init(ctx); err != nil {
		return fmt.Errorf("creating issue directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, fs.lockTimeout)
	defer cancel()

	lock := flock.New(filepath.Join(fs.root, LockFile))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("acquiring issue lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w on %s after %s", issuestorage.ErrLockTimeout, LockFile, fs.lockTimeout)
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// List returns all issues matching the filter, sorted by ID.
func (fs *FilesystemStorage) List(ctx context.Context, filter *issuestorage.ListFilter) ([]*issuestorage.Issue, error) {
	records, err := fs.readAll()
	if err != nil {
		return nil, err
	}

	var issues []*issuestorage.Issue
	for _, r := range records {
		if filter.Matches(r.issue) {
			issues = append(issues, r.issue)
		}
	}
	return issues, nil
}

// Get retrieves an issue by ID.
func (fs *FilesystemStorage) Get(ctx context.Context, id string) (*issuestorage.Issue, error) {
	r, err := fs.find(id)
	if err != nil {
		return nil, err
	}
	return r.issue, nil
}

// Raw returns the stored content of an issue exactly as it is on disk.
func (fs *FilesystemStorage) Raw(ctx context.Context, id string) (string, error) {
	r, err := fs.find(id)
	if err != nil {
		return "", err
	}
	return r.raw, nil
}

// Create assigns max(existing IDs)+1 and writes the new issue.
// Status, priority and body default to pending, medium and the template body.
func (fs *FilesystemStorage) Create(ctx context.Context, issue *issuestorage.Issue) (string, error) {
	err := fs.withLock(ctx, func() error {
		records, err := fs.readAll()
		if err != nil {
			return err
		}
		ids := make([]string, len(records))
		for i, r := range records {
			ids[i] = r.issue.ID
		}

		issue.ID = issuestorage.NextID(ids)
		issue.Created = fs.today()
		issue.Updated = issue.Created
		if issue.Status == "" {
			issue.Status = issuestorage.StatusPending
		}
		if issue.Priority == "" {
			issue.Priority = issuestorage.DefaultPriority
		}
		if issue.Body == "" {
			issue.Body = issuestorage.DefaultBody
		}

		name := issuestorage.Filename(issue.ID, issue.Title)
		path := filepath.Join(fs.root, name)

		// Holding the lock keeps other writers out, but a stray file may still
		// own the name. Readers never see a partial file.
		if _, err := os.Lstat(path); err == nil {
			return fmt.Errorf("%w: %s", issuestorage.ErrAlreadyExists, name)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("checking %s: %w", name, err)
		}

		if err := atomic.WriteFile(path, strings.NewReader(issuestorage.Encode(issue))); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := os.Chmod(path, filePerms); err != nil {
			return fmt.Errorf("setting permissions on %s: %w", name, err)
		}

		issue.File = name
		return nil
	})
	if err != nil {
		return "", err
	}
	return issue.ID, nil
}

// Modify reads an issue, applies fn, and overwrites the same file with the
// re-encoded result. The body read from disk is written back unchanged.
func (fs *FilesystemStorage) Modify(ctx context.Context, id string, fn func(*issuestorage.Issue) error) error {
	return fs.withLock(ctx, func() error {
		r, err := fs.find(id)
		if err != nil {
			return err
		}

		issue := *r.issue
		if err := fn(&issue); err != nil {
			return err
		}
		issue.ID = r.issue.ID
		issue.Body = r.issue.Body
		issue.Created = r.issue.Created
		issue.Updated = fs.today()

		path := filepath.Join(fs.root, r.issue.File)
		if err := atomic.WriteFile(path, strings.NewReader(issuestorage.Encode(&issue))); err != nil {
			return fmt.Errorf("writing %s: %w", r.issue.File, err)
		}
		return nil
	})
}

// Doctor checks every issue file and reports problems. It never modifies
// anything: unparseable files, invalid statuses, duplicate IDs and file names
// whose ID prefix disagrees with the stored ID are all reported.
func (fs *FilesystemStorage) Doctor(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(fs.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading issue directory: %w", err)
	}

	var problems []string
	byID := make(map[string][]string)
	var ids []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != issuestorage.FileExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.root, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		issue, err := issuestorage.Decode(string(data))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		if _, err := issuestorage.ParseStatus(string(issue.Status)); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v (want one of %s)", name, err, issuestorage.StatusNames()))
		}
		if prefix := issuestorage.FilenameID(name); prefix != issue.ID {
			problems = append(problems, fmt.Sprintf("%s: file name does not match id %s", name, issue.ID))
		}

		if _, seen := byID[issue.ID]; !seen {
			ids = append(ids, issue.ID)
		}
		byID[issue.ID] = append(byID[issue.ID], name)
	}

	sort.Strings(ids)
	for _, id := range ids {
		if files := byID[id]; len(files) > 1 {
			problems = append(problems, fmt.Sprintf("duplicate id %s: %s", id, strings.Join(files, ", ")))
		}
	}

	return problems, nil
}

// Compile-time check that FilesystemStorage implements issuestorage.IssueStore.
var _ issuestorage.IssueStore = (*FilesystemStorage)(nil)
