package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"issues-lite/internal/config"
	"issues-lite/internal/config/yamlstore"
	"issues-lite/internal/issuestorage/filesystem"

	"github.com/spf13/cobra"
)

// newInitCmd creates the init command.
// init doesn't use provider.Get since the directory it creates may not exist yet.
func newInitCmd(provider *AppProvider) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the issues directory",
		Long: `Create the issues directory and a config.yaml holding the default settings.

The directory is taken from --dir, then ISSUES_DIR, then ./.issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), provider.out(), provider.IssuesDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reinitialize even if the directory already exists")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir string, force bool) error {
	// Path resolution: --dir > ISSUES_DIR > CWD
	if dir == "" {
		dir = os.Getenv(config.EnvDir)
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, config.DirName)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !force {
			return errors.New("issues directory already exists (use --force to reinitialize)")
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking issues directory: %w", err)
	}

	if err := filesystem.New(absPath).Init(ctx); err != nil {
		return fmt.Errorf("creating issues directory: %w", err)
	}

	store, err := yamlstore.New(filepath.Join(absPath, config.FileName))
	if err != nil {
		return fmt.Errorf("creating config store: %w", err)
	}
	if err := config.ApplyDefaults(store); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	fmt.Fprintf(out, "Initialized issues directory at %s\n", absPath)
	return nil
}
