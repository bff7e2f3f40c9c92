package cmd

import (
	"bytes"
	"testing"
	"time"

	"issues-lite/internal/issuestorage/filesystem"
	"issues-lite/testutil"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

const testToday = "2026-03-14"

func setupTestApp(t *testing.T) (*App, *testutil.IssueGenerator) {
	t.Helper()
	dir := t.TempDir()
	store := filesystem.New(dir, filesystem.WithClock(func() time.Time { return testNow }))
	return &App{
		Storage:   store,
		IssuesDir: dir,
		Out:       &bytes.Buffer{},
		Err:       &bytes.Buffer{},
	}, testutil.NewIssueGenerator(t, dir)
}

// runRoot executes the full command tree against app and returns stdout.
func runRoot(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	out := app.Out.(*bytes.Buffer)
	out.Reset()
	cmd := newRootCmd(NewTestProvider(app))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// memConfig is an in-memory config.Store.
type memConfig struct {
	data map[string]string
}

func newMemConfig(data map[string]string) *memConfig {
	return &memConfig{data: data}
}

func (m *memConfig) Get(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memConfig) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memConfig) SetInMemory(key, value string) {
	m.data[key] = value
}

func (m *memConfig) Unset(key string) error {
	delete(m.data, key)
	return nil
}

func (m *memConfig) All() map[string]string {
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
