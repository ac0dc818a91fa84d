package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// NewEditCommand creates the edit command.
func NewEditCommand() *cobra.Command {
	var (
		at, dt, role    string
		alias, desc     string
		constraintPairs []string
		cleaningPairs   []string
		governancePairs []string
		dbPairs         []string
	)

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a committed variable",
		Long: `Edit a committed variable in place. Only the provided flags change;
everything else survives. Changing the analytical or data type re-checks
the edited document against the coherence rules before committing.`,
		Example: `  # Retype a variable
  dictforge edit score --at ordinal --dt category

  # Update governance metadata
  dictforge edit email --governance pii_flag=true --governance sensitivity=PII`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			l := cmdCtx.Session.Ledger()
			idx := l.IndexOf(args[0])
			if idx < 0 {
				return fmt.Errorf("variable %q is not in the dictionary", args[0])
			}
			if err := cmdCtx.Session.BeginEdit(idx); err != nil {
				return err
			}
			v := cmdCtx.Session.Buffer()

			if cmd.Flags().Changed("at") {
				v.AnalyticalType = taxonomy.AnalyticalType(at)
			}
			if cmd.Flags().Changed("dt") {
				v.DataType = taxonomy.DataType(dt)
			}
			if cmd.Flags().Changed("role") {
				v.Role = taxonomy.Role(role)
			}
			if cmd.Flags().Changed("alias") {
				v.Alias = strings.TrimSpace(alias)
			}
			if cmd.Flags().Changed("desc") {
				v.Description = strings.TrimSpace(desc)
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
				if len(fields) == 0 {
					continue
				}
				dst := v.EnsureSection(section)
				for key, val := range fields {
					dst[key] = val
				}
			}

			if err := cmdCtx.Session.Commit(); err != nil {
				cmdCtx.Session.Discard()
				return err
			}
			if err := cmdCtx.SaveDictionary(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Analytical type")
	cmd.Flags().StringVar(&dt, "dt", "", "Data type")
	cmd.Flags().StringVar(&role, "role", "", "Functional role")
	cmd.Flags().StringVar(&alias, "alias", "", "Business alias")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringArrayVar(&constraintPairs, "constraint", nil, "Constraint field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&cleaningPairs, "cleaning", nil, "Cleaning field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&governancePairs, "governance", nil, "Governance field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&dbPairs, "db", nil, "Database mapping field (key=value, repeatable)")

	return cmd
}
