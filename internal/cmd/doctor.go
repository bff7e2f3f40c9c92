package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// DoctorResult represents the output of the doctor command.
type DoctorResult struct {
	Problems []string `json:"problems"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check issue files for problems",
		Long: `Check the issues directory for problems. Nothing is changed.

Checks for:
- Files whose metadata block cannot be parsed
- Status values outside the known set
- File names whose id prefix differs from the metadata id
- Two files claiming the same id`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			problems, err := app.Storage.Doctor(cmd.Context())
			if err != nil {
				return fmt.Errorf("doctor failed: %w", err)
			}

			if app.JSON {
				if problems == nil {
					problems = []string{}
				}
				return json.NewEncoder(app.Out).Encode(DoctorResult{Problems: problems})
			}

			if len(problems) == 0 {
				fmt.Fprintln(app.Out, "No problems found.")
				return nil
			}

			fmt.Fprintf(app.Out, "Found %d problems:\n", len(problems))
			for _, problem := range problems {
				fmt.Fprintf(app.Out, "  - %s\n", problem)
			}
			return nil
		},
	}

	return cmd
}
