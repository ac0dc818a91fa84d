package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/cascade"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check the dictionary for validation and coherence issues",
		Long: `Run every committed variable through validation and report problems:
rule violations, stale metadata keys that the current types suppress,
and (with --strict) variables whose quality score falls below B.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			vars := cmdCtx.Session.Ledger().All()
			if len(vars) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Dictionary is empty, nothing to lint.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Variable", "Kind", "Detail"})

			issues := 0
			for _, v := range vars {
				if err := variable.Validate(v); err != nil {
					t.AppendRow(table.Row{v.Name, "invalid", err.Error()})
					issues++
				}
				for _, key := range cascade.Audit(v) {
					t.AppendRow(table.Row{v.Name, "stale", fmt.Sprintf("%s is suppressed for %s/%s", key, v.AnalyticalType, v.DataType)})
					issues++
				}
				if strict {
					if grade, score := variable.QualityGrade(v); score < 70 {
						t.AppendRow(table.Row{v.Name, "quality", fmt.Sprintf("scored %s (%d/100)", grade, score)})
						issues++
					}
				}
			}

			if issues == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "All %d variable(s) are coherent.\n", len(vars))
				return nil
			}
			t.Render()
			return fmt.Errorf("lint found %d issue(s)", issues)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Also flag variables with a quality score below 70")
	return cmd
}
