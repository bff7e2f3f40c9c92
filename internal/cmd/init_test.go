package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"issues-lite/internal/config"
	"issues-lite/internal/config/yamlstore"
)

func TestInitCreatesDirectoryAndConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".issues")
	var out bytes.Buffer

	if err := runInit(context.Background(), &out, dir, false); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized issues directory at "+dir) {
		t.Errorf("unexpected output: %q", out.String())
	}

	store, err := yamlstore.New(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatal(err)
	}
	for k, want := range config.DefaultValues() {
		if got, _ := store.Get(k); got != want {
			t.Errorf("config %s = %q, want %q", k, got, want)
		}
	}
}

func TestInitRefusesExisting(t *testing.T) {
	dir := t.TempDir()

	err := runInit(context.Background(), &bytes.Buffer{}, dir, false)
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected an already-exists error, got %v", err)
	}

	if err := runInit(context.Background(), &bytes.Buffer{}, dir, true); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
}

func TestInitKeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	store, err := yamlstore.New(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(config.KeyColor, config.ColorNever); err != nil {
		t.Fatal(err)
	}

	if err := runInit(context.Background(), &bytes.Buffer{}, dir, true); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	reloaded, err := yamlstore.New(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := reloaded.Get(config.KeyColor); got != config.ColorNever {
		t.Errorf("color = %q, want never to survive reinit", got)
	}
}

func TestInitDefaultsToWorkingDirectory(t *testing.T) {
	t.Setenv(config.EnvDir, "")
	cwd := t.TempDir()
	t.Chdir(cwd)

	var out bytes.Buffer
	cmd := newRootCmd(&AppProvider{Out: &out})
	cmd.SetArgs([]string{"init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if info, err := os.Stat(filepath.Join(cwd, config.DirName)); err != nil || !info.IsDir() {
		t.Errorf(".issues not created in the working directory: %v", err)
	}
}
