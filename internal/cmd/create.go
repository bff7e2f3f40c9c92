package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"issues-lite/internal/issuestorage"

	"github.com/spf13/cobra"
)

// defaultTitle is used when create is given no title words.
const defaultTitle = "Untitled"

// newCreateCmd creates the create command.
func newCreateCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <title...>",
		Short: "Create a new issue",
		Long: `Create a new pending, medium priority issue with the next free ID.

All arguments are joined with spaces to form the title, so quoting is
optional. Flags are only recognized before the first title word; anything
after it, "--force" included, is part of the title. The file is named <id>-<slug>.md and starts from a template with
Description, Acceptance Criteria and Notes sections.

Examples:
  issues create "Fix login bug"
  issues create Add OAuth support`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				title = defaultTitle
			}

			issue := &issuestorage.Issue{Title: title}
			if _, err := app.Storage.Create(cmd.Context(), issue); err != nil {
				return fmt.Errorf("creating issue: %w", err)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(ToIssueListJSON(issue))
			}
			fmt.Fprintf(app.Out, "Created: %s\n", app.SuccessColor(issue.File))
			return nil
		},
	}

	// Every word after the first belongs to the title, even if it looks like a flag.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
