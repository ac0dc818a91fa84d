package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
)

// NewQueueCommand creates the queue command group.
func NewQueueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Review the pending variable queue",
		Long: `Show the names waiting to be authored, with the metadata each one
would be seeded with. Use 'dictforge add <name>' to commit one, which
removes it from the queue.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			pending := cmdCtx.Session.Pending()
			if len(pending) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Name", "Guessed Analytical", "Guessed Data Type", "Guessed Role"})
			for i, name := range pending {
				g := taxonomy.GuessMetadata(name)
				t.AppendRow(table.Row{i + 1, name, g.AnalyticalType, g.DataType, g.Role})
			}
			t.Render()
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every pending name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			n := len(cmdCtx.Session.Pending())
			if n == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Queue is already empty.")
				return nil
			}
			cmdCtx.Session.ClearPending()
			if err := cmdCtx.SaveDictionary(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dropped %d pending name(s).\n", n)
			return nil
		},
	})
	return cmd
}
