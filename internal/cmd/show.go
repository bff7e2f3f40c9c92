package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"issues-lite/internal/issuestorage"

	"github.com/spf13/cobra"
)

// newShowCmd creates the show command.
func newShowCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show full details of an issue",
		Long: `Print the issue file exactly as it is stored.

Leading zeros may be omitted from the ID.

Examples:
  issues show 007
  issues show 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			id := argAt(args, 0)

			if app.JSON {
				issue, err := app.Storage.Get(ctx, id)
				if errors.Is(err, issuestorage.ErrNotFound) {
					return report(app, notFoundMessage(id))
				}
				if err != nil {
					return fmt.Errorf("getting issue %s: %w", id, err)
				}
				return json.NewEncoder(app.Out).Encode(ToIssueJSON(issue))
			}

			content, err := app.Storage.Raw(ctx, id)
			if errors.Is(err, issuestorage.ErrNotFound) {
				return report(app, notFoundMessage(id))
			}
			if err != nil {
				return fmt.Errorf("getting issue %s: %w", id, err)
			}

			fmt.Fprintln(app.Out, content)
			return nil
		},
	}

	return cmd
}

// notFoundMessage reports a missing issue using the ID as the user typed it.
func notFoundMessage(id string) string {
	return fmt.Sprintf("Issue %s not found.", id)
}
