package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/cascade"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	var (
		targets         []string
		all             bool
		yes             bool
		at, dt, role    string
		constraintPairs []string
		cleaningPairs   []string
		governancePairs []string
		dbPairs         []string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Apply one metadata patch across many variables",
		Long: `Apply a patch to a set of variables at once. Each target is cloned,
patched, re-checked against the coherence rules, and pruned of any
metadata its new types no longer admit.

The pruning report is always printed. Nothing is written back unless
--yes is given, so a dry run is the default.`,
		Example: `  # Preview retyping two variables as nominal categories
  dictforge batch --target score --target band --at nominal --dt category

  # Stamp governance across the whole dictionary and commit
  dictforge batch --all --governance owner=risk --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			l := cmdCtx.Session.Ledger()

			var indexes []int
			if all {
				for i := 0; i < l.Len(); i++ {
					indexes = append(indexes, i)
				}
			} else {
				for _, name := range targets {
					idx := l.IndexOf(name)
					if idx < 0 {
						return fmt.Errorf("variable %q is not in the dictionary", name)
					}
					indexes = append(indexes, idx)
				}
			}

			patch := cascade.Patch{Root: map[string]any{}, Nested: map[string]map[string]any{}}
			if cmd.Flags().Changed("at") {
				patch.Root["analytical_type"] = at
			}
			if cmd.Flags().Changed("dt") {
				patch.Root["data_type"] = dt
			}
			if cmd.Flags().Changed("role") {
				patch.Root["role"] = role
			}
			sections := map[string][]string{
				variable.SectionConstraints:     constraintPairs,
				variable.SectionCleaning:        cleaningPairs,
				variable.SectionGovernance:      governancePairs,
				variable.SectionDatabaseMapping: dbPairs,
			}
			for section, pairs := range sections {
				fields, err := parseAssignments(pairs)
				if err != nil {
					return err
				}
				if len(fields) > 0 {
					patch.Nested[section] = fields
				}
			}

			report, err := cascade.Run(l, indexes, patch)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Cascade %s: %d target(s), %d key(s) pruned\n",
				report.ID, len(report.Results), report.TotalPruned())
			for _, res := range report.Results {
				if len(res.Pruned) == 0 {
					_, _ = fmt.Fprintf(out, "  %-24s no pruning\n", res.Updated.Name)
					continue
				}
				_, _ = fmt.Fprintf(out, "  %-24s pruned %s\n", res.Updated.Name, strings.Join(res.Pruned, ", "))
			}

			if !yes {
				_, _ = fmt.Fprintln(out, "Dry run: re-run with --yes to commit.")
				return nil
			}

			if err := cascade.Commit(cmdCtx.Session, report); err != nil {
				return err
			}
			if err := cmdCtx.SaveDictionary(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, "Committed.")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&targets, "target", nil, "Target variable name (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Target every variable")
	cmd.Flags().BoolVar(&yes, "yes", false, "Commit the cascade instead of previewing it")
	cmd.Flags().StringVar(&at, "at", "", "New analytical type")
	cmd.Flags().StringVar(&dt, "dt", "", "New data type")
	cmd.Flags().StringVar(&role, "role", "", "New functional role")
	cmd.Flags().StringArrayVar(&constraintPairs, "constraint", nil, "Constraint field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&cleaningPairs, "cleaning", nil, "Cleaning field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&governancePairs, "governance", nil, "Governance field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&dbPairs, "db", nil, "Database mapping field (key=value, repeatable)")

	return cmd
}
