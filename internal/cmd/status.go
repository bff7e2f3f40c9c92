package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"issues-lite/internal/issuestorage"

	"github.com/spf13/cobra"
)

// newStatusCmd creates the status command.
func newStatusCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Update the status of an issue",
		Long: `Set the status of an issue and stamp its updated date.

Any status may be set from any other. Only the status and updated fields
change; the title, priority, created date and body are written back as they
were.

Statuses: ` + issuestorage.StatusNames() + `

Examples:
  issues status 3 in_progress
  issues status 003 done`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			id := argAt(args, 0)
			status, err := issuestorage.ParseStatus(argAt(args, 1))
			if err != nil {
				return report(app, "Invalid status. Use: "+issuestorage.StatusNames())
			}

			ctx := cmd.Context()
			err = app.Storage.Modify(ctx, id, func(issue *issuestorage.Issue) error {
				issue.Status = status
				return nil
			})
			if errors.Is(err, issuestorage.ErrNotFound) {
				return report(app, notFoundMessage(id))
			}
			if err != nil {
				return fmt.Errorf("updating issue %s: %w", id, err)
			}

			if app.JSON {
				issue, err := app.Storage.Get(ctx, id)
				if err != nil {
					return fmt.Errorf("getting issue %s: %w", id, err)
				}
				return json.NewEncoder(app.Out).Encode(ToIssueListJSON(issue))
			}
			msg := fmt.Sprintf("Updated %s: status → %s", issuestorage.PadID(id), status)
			fmt.Fprintln(app.Out, app.SuccessColor(msg))
			return nil
		},
	}

	return cmd
}
