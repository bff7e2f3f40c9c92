package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"issues-lite/internal/config"
	"issues-lite/internal/config/yamlstore"

	"github.com/spf13/cobra"
)

// ConfigValueJSON is the JSON output of config get, set and unset.
type ConfigValueJSON struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
	Set   bool   `json:"set"`
}

// ConfigValidateJSON is the JSON output of config validate.
type ConfigValidateJSON struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// newConfigCmd creates the config command with subcommands.
func newConfigCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Read and change the settings in <issues dir>/config.yaml.

Known keys:
  color         auto, always or never
  lock.timeout  how long create and status wait for the lock, e.g. 5s

Other keys are stored as given. ISSUES_COLOR overrides color for a single
run without touching the file.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE:  withConfig(provider, configGet),
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE:  withConfig(provider, configSet),
		},
		&cobra.Command{
			Use:   "unset <key>",
			Short: "Remove a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE:  withConfig(provider, configUnset),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List configuration values, defaults included",
			Args:  cobra.NoArgs,
			RunE:  withConfig(provider, configList),
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check known keys for invalid values",
			Args:  cobra.NoArgs,
			RunE:  withConfig(provider, configValidate),
		},
	)

	return cmd
}

type configFunc func(app *App, store config.Store, args []string) error

// withConfig opens the config file of the resolved issues directory and
// hands it to fn. The file is read fresh, without environment overrides.
func withConfig(provider *AppProvider, fn configFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := provider.Get()
		if err != nil {
			return err
		}
		store, err := yamlstore.New(filepath.Join(app.IssuesDir, config.FileName))
		if err != nil {
			return err
		}
		return fn(app, store, args)
	}
}

func configGet(app *App, store config.Store, args []string) error {
	key := args[0]
	value, ok := store.Get(key)

	if app.JSON {
		return json.NewEncoder(app.Out).Encode(ConfigValueJSON{Key: key, Value: value, Set: ok})
	}
	if !ok {
		fmt.Fprintf(app.Out, "%s (not set)\n", key)
		return nil
	}
	fmt.Fprintln(app.Out, value)
	return nil
}

func configSet(app *App, store config.Store, args []string) error {
	key, value := args[0], args[1]
	if err := store.Set(key, value); err != nil {
		return fmt.Errorf("setting config: %w", err)
	}

	if app.JSON {
		return json.NewEncoder(app.Out).Encode(ConfigValueJSON{Key: key, Value: value, Set: true})
	}
	fmt.Fprintf(app.Out, "Set %s = %s\n", key, value)
	return nil
}

func configUnset(app *App, store config.Store, args []string) error {
	key := args[0]
	if err := store.Unset(key); err != nil {
		return fmt.Errorf("unsetting config: %w", err)
	}

	if app.JSON {
		return json.NewEncoder(app.Out).Encode(ConfigValueJSON{Key: key})
	}
	fmt.Fprintf(app.Out, "Unset %s\n", key)
	return nil
}

func configList(app *App, store config.Store, _ []string) error {
	all := config.DefaultValues()
	maps.Copy(all, store.All())

	if app.JSON {
		return json.NewEncoder(app.Out).Encode(all)
	}
	fmt.Fprintln(app.Out, "Configuration:")
	for _, k := range slices.Sorted(maps.Keys(all)) {
		fmt.Fprintf(app.Out, "  %s = %s\n", k, all[k])
	}
	return nil
}

func configValidate(app *App, store config.Store, _ []string) error {
	problems := config.Problems(store)

	if app.JSON {
		result := ConfigValidateJSON{Valid: len(problems) == 0, Issues: problems}
		if result.Issues == nil {
			result.Issues = []string{}
		}
		if err := json.NewEncoder(app.Out).Encode(result); err != nil {
			return err
		}
	} else if len(problems) == 0 {
		fmt.Fprintln(app.Out, "Configuration is valid.")
	} else {
		fmt.Fprintln(app.Out, "Configuration errors:")
		for _, p := range problems {
			fmt.Fprintf(app.Out, "  %s\n", p)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration has %d error(s)", len(problems))
	}
	return nil
}
