package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/clone"
)

// NewCloneCommand creates the clone command.
func NewCloneCommand() *cobra.Command {
	var (
		newName, newAlias, newDesc string
		noTechnical, noGovernance  bool
		prefix, suffix             string
		count                      int
	)

	cmd := &cobra.Command{
		Use:   "clone <source>",
		Short: "Derive new variables from an existing one",
		Long: `Clone a committed variable.

With --name, one clone is created under a fresh identity; inheritance
of the technical and governance blocks can be switched off. With
--count (and optional --prefix/--suffix), a bulk run of full copies is
generated with _N counters.`,
		Example: `  # Direct clone with a new identity
  dictforge clone email --name contact_email --alias "Contact Mail"

  # Identity-only clone
  dictforge clone email --name scratch --no-technical --no-governance

  # Three prefixed variants
  dictforge clone amount --prefix v2_ --count 3`,
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
			src, err := l.At(idx)
			if err != nil {
				return err
			}

			if newName != "" {
				out, err := clone.Direct(l, src,
					clone.Identity{Name: newName, Alias: newAlias, Description: newDesc},
					clone.Inherit{Technical: !noTechnical, Governance: !noGovernance})
				if err != nil {
					return err
				}
				if err := cmdCtx.SaveDictionary(); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cloned %q as %q\n", src.Name, out.Name)
				return nil
			}

			names, err := clone.Bulk(l, src, prefix, suffix, count)
			if err != nil {
				return err
			}
			if err := cmdCtx.SaveDictionary(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %d variant(s) of %q:\n", len(names), src.Name)
			for _, n := range names {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "New variable name (direct clone)")
	cmd.Flags().StringVar(&newAlias, "alias", "", "New alias (direct clone)")
	cmd.Flags().StringVar(&newDesc, "desc", "", "New description (direct clone)")
	cmd.Flags().BoolVar(&noTechnical, "no-technical", false, "Do not inherit types, constraints, cleaning, or database mapping")
	cmd.Flags().BoolVar(&noGovernance, "no-governance", false, "Do not inherit governance metadata")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Name prefix for bulk clones")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Name suffix for bulk clones")
	cmd.Flags().IntVar(&count, "count", 1, "Number of bulk clones")

	return cmd
}
