package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one variable's full definition",
		Args:  cobra.ExactArgs(1),
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
			v, err := l.At(idx)
			if err != nil {
				return err
			}

			raw, err := yaml.Marshal(v)
			if err != nil {
				return err
			}
			_, _ = cmd.OutOrStdout().Write(raw)

			grade, score := variable.QualityGrade(v)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# quality: %s (%d/100)\n", grade, score)
			return nil
		},
	}
	return cmd
}
