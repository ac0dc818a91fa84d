package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/regulation"
)

// NewRegulationsCommand creates the regulations command group.
func NewRegulationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "regulations",
		Aliases: []string{"reg"},
		Short:   "Manage the compliance framework catalog",
		Long: `Manage the catalog of regulatory frameworks referenced by the
governance compliance_scope field. The catalog ships with common
Spanish and EU frameworks and persists edits to a YAML file.`,
	}

	cmd.AddCommand(newRegulationsListCommand())
	cmd.AddCommand(newRegulationsShowCommand())
	cmd.AddCommand(newRegulationsAddCommand())
	cmd.AddCommand(newRegulationsRemoveCommand())
	return cmd
}

func newRegulationsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known frameworks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			store := cmdCtx.Regulations()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Abbreviation", "Full Name", "Jurisdiction"})
			for _, abbr := range store.Abbreviations() {
				r, _ := store.Get(abbr)
				t.AppendRow(table.Row{abbr, r.FullName, r.Jurisdiction})
			}
			t.Render()
			return nil
		},
	}
}

func newRegulationsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <abbreviation>",
		Short: "Show one framework",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			r, ok := cmdCtx.Regulations().Get(args[0])
			if !ok {
				return fmt.Errorf("framework %q is not in the catalog", args[0])
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s: %s\n", args[0], r.FullName)
			_, _ = fmt.Fprintf(out, "Jurisdiction: %s\n", r.Jurisdiction)
			if r.Description != "" {
				_, _ = fmt.Fprintf(out, "Description:  %s\n", r.Description)
			}
			if r.URL != "" {
				_, _ = fmt.Fprintf(out, "Reference:    %s\n", r.URL)
			}
			return nil
		},
	}
}

func newRegulationsAddCommand() *cobra.Command {
	var r regulation.Regulation

	cmd := &cobra.Command{
		Use:   "add <abbreviation>",
		Short: "Add or update a framework",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if r.FullName == "" {
				return fmt.Errorf("--full-name is required")
			}
			if err := cmdCtx.Regulations().Upsert(args[0], r); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved framework %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&r.FullName, "full-name", "", "Full framework name")
	cmd.Flags().StringVar(&r.Jurisdiction, "jurisdiction", "", "Jurisdiction the framework applies to")
	cmd.Flags().StringVar(&r.Description, "description", "", "Short description")
	cmd.Flags().StringVar(&r.URL, "url", "", "Reference URL")
	return cmd
}

func newRegulationsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <abbreviation>",
		Short: "Remove a framework",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			ok, err := cmdCtx.Regulations().Delete(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("framework %q is not in the catalog", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed framework %q\n", args[0])
			return nil
		},
	}
}
