package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// AnalyzeCmd creates the analyze command
func AnalyzeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <report text>...",
		Short: "Suggest a title, category, severity and needs for a free-text report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Analyzer.Analyze(app.Ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nTitle:    %s\n", result.Title)
			fmt.Fprintf(out, "Category: %s\n", result.Category)
			fmt.Fprintf(out, "Severity: %s\n", colored(severityColor(result.Severity), string(result.Severity)))
			fmt.Fprintf(out, "Needs:    %s\n\n", strings.Join(result.Needs, ", "))
			return nil
		},
	}
}
