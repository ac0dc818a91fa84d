package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/ingest"
)

// NewIngestCommand creates the ingest command.
func NewIngestCommand() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "ingest <file.csv>",
		Short: "Queue variable names from a CSV file",
		Long: `Extract candidate variable names from a CSV file and add them to the
pending queue. By default names come from the header row; with --column
they are read from the values of a named column instead.

Names already in the dictionary or the queue are skipped.`,
		Example: `  # Queue every column header
  dictforge ingest data/raw.csv

  # Queue the values of the "field_name" column
  dictforge ingest inventory.csv --column field_name`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			mode := ingest.FromHeaders
			if column != "" {
				mode = ingest.FromColumn
			}
			names, err := ingest.Names(f, mode, column)
			if err != nil {
				return err
			}

			added := cmdCtx.Session.Enqueue(names)
			if added == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing new to queue.")
				return nil
			}
			if err := cmdCtx.SaveDictionary(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Queued %d of %d name(s). Run 'dictforge queue' to review.\n", added, len(names))
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Read names from this column's values instead of the header row")
	return cmd
}
