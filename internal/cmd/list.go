package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"issues-lite/internal/issuestorage"

	"github.com/spf13/cobra"
)

// Column layout for the list table.
const (
	idColumnWidth     = 4
	statusColumnWidth = 12
	// priorityAllowance is the separator width reserved for the priority column.
	priorityAllowance = 10
	maxTitleWidth     = 50
	truncatedTitleLen = maxTitleWidth - len(ellipsis)
	ellipsis          = "..."
)

// newListCmd creates the list command.
func newListCmd(provider *AppProvider) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Long: `List all issues sorted by ID, optionally filtered by status.

The status filter is an exact match and is not checked against the known
statuses; an unknown value simply matches nothing.

Examples:
  issues list                 # List every issue
  issues list --status=done   # List finished issues`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			filter := &issuestorage.ListFilter{}
			if status != "" {
				s := issuestorage.Status(status)
				filter.Status = &s
			}

			issues, err := app.Storage.List(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("listing issues: %w", err)
			}

			if app.JSON {
				result := make([]IssueListJSON, len(issues))
				for i, issue := range issues {
					result[i] = ToIssueListJSON(issue)
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			if len(issues) == 0 {
				fmt.Fprintln(app.Out, "No issues found.")
				return nil
			}

			writeIssueTable(app, issues)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status ("+issuestorage.StatusNames()+")")

	return cmd
}

// writeIssueTable prints issues as an ID / Title / Status / Priority table.
// The title column is as wide as the longest title, capped at maxTitleWidth.
func writeIssueTable(app *App, issues []*issuestorage.Issue) {
	titleWidth := 0
	for _, issue := range issues {
		if n := utf8.RuneCountInString(issue.Title); n > titleWidth {
			titleWidth = n
		}
	}
	titleWidth = min(titleWidth, maxTitleWidth)

	fmt.Fprintf(app.Out, "%s %s %s Priority\n",
		padRight("ID", idColumnWidth), padRight("Title", titleWidth), padRight("Status", statusColumnWidth))
	fmt.Fprintln(app.Out, strings.Repeat("-", idColumnWidth+titleWidth+statusColumnWidth+priorityAllowance))

	for _, issue := range issues {
		status := app.StatusColor(issue.Status, padRight(string(issue.Status), statusColumnWidth))
		fmt.Fprintf(app.Out, "%s %s %s %s\n",
			padRight(issue.ID, idColumnWidth),
			padRight(displayTitle(issue.Title), titleWidth),
			status,
			issue.Priority)
	}
}

// displayTitle shortens titles longer than maxTitleWidth for the table.
func displayTitle(title string) string {
	if utf8.RuneCountInString(title) <= maxTitleWidth {
		return title
	}
	return string([]rune(title)[:truncatedTitleLen]) + ellipsis
}

// padRight pads s with spaces to width runes. Longer strings are unchanged.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
