package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"issues-lite/internal/config"
	"issues-lite/internal/config/yamlstore"
	"issues-lite/internal/issuestorage/filesystem"

	"github.com/spf13/cobra"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	IssuesDir  string
	JSONOutput bool
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app:        app,
		IssuesDir:  app.IssuesDir,
		JSONOutput: app.JSON,
		Out:        app.Out,
		Err:        app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	paths, err := config.ResolvePaths(p.IssuesDir)
	if err != nil {
		return nil, err
	}

	cfg, err := yamlstore.New(paths.ConfigFile)
	if err != nil {
		return nil, err
	}
	config.ApplyEnvOverrides(cfg)

	store := filesystem.New(paths.IssuesDir,
		filesystem.WithLockTimeout(config.LockTimeout(cfg)))

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	return &App{
		Storage:     store,
		ConfigStore: cfg,
		IssuesDir:   paths.IssuesDir,
		Out:         out,
		Err:         errOut,
		JSON:        p.JSONOutput,
	}, nil
}

func (p *AppProvider) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// usage is printed for a bare invocation or an unrecognized command.
const usage = `issues - project bug/feature tracking

Usage:
  issues list [--status=<status>]   List issues
  issues show <id>                  Show issue details
  issues status <id> <status>       Update status
  issues create "<title>"           Create new issue

Other commands:
  issues init                       Create the issues directory
  issues doctor                     Check issue files for problems
  issues config <get|set|unset|list|validate>

Statuses: pending, in_progress, blocked, review, done
`

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	return rootCmd.Execute()
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "issues",
		Short: "Project bug/feature tracking in markdown files",
		Long: `Issues tracks bugs and features as markdown files with a small metadata
block at the top. Each issue lives in .issues/<id>-<slug>.md, so issues can be
reviewed, diffed and committed alongside the code.`,
		// Anything that isn't a known command falls through to the usage text.
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(provider.out(), usage)
			return nil
		},
	}

	rootCmd.SetOut(provider.out())
	if provider.Err != nil {
		rootCmd.SetErr(provider.Err)
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().StringVar(&provider.IssuesDir, "dir", provider.IssuesDir, "Path to the issues directory (default: search from cwd for .issues)")
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", provider.JSONOutput, "Output in JSON format")

	// Register all commands
	rootCmd.AddCommand(newListCmd(provider))
	rootCmd.AddCommand(newShowCmd(provider))
	rootCmd.AddCommand(newStatusCmd(provider))
	rootCmd.AddCommand(newCreateCmd(provider))
	rootCmd.AddCommand(newInitCmd(provider))
	rootCmd.AddCommand(newDoctorCmd(provider))
	rootCmd.AddCommand(newConfigCmd(provider))

	return rootCmd
}

// argAt returns args[i], or "" when fewer arguments were given.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
