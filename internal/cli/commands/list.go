package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the committed variables",
		Long: `List every variable in the dictionary with its type context, role,
and quality grade.

Use --output json for machine-readable output.`,
		Example: `  # Styled table
  dictforge list

  # JSON for scripts
  dictforge list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			vars := cmdCtx.Session.Ledger().All()
			if cmdCtx.Cfg.OutputFormat == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(vars)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Project: %s (%d variables)\n",
				cmdCtx.Project.ProjectName, len(vars))
			if len(vars) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(empty dictionary)")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Name", "Analytical", "Data Type", "Role", "Quality"})

			for i, v := range vars {
				grade, score := variable.QualityGrade(v)
				t.AppendRow(table.Row{
					i, v.Name, v.AnalyticalType, v.DataType, v.Role,
					fmt.Sprintf("%s (%d)", grade, score),
				})
			}
			t.Render()

			if pending := cmdCtx.Session.Pending(); len(pending) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d name(s) queued for definition; see dictforge queue\n", len(pending))
			}
			return nil
		},
	}
	return cmd
}
