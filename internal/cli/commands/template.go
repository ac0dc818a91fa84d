package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/blueprint"
)

// NewTemplateCommand creates the template command group.
func NewTemplateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Manage the blueprint library",
		Long: `Manage reusable variable blueprints.

Blueprints live in two tiers: a standard library shipped with the
project (read-only YAML) and a user library this command writes (JSON).
On id collision the user tier wins.`,
	}

	cmd.AddCommand(newTemplateListCommand())
	cmd.AddCommand(newTemplateShowCommand())
	cmd.AddCommand(newTemplateSaveCommand())
	cmd.AddCommand(newTemplateApplyCommand())
	cmd.AddCommand(newTemplateRemoveCommand())
	return cmd
}

func newTemplateListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available blueprints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			all, err := cmdCtx.Templates().All()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No blueprints in the library.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Label", "Analytical", "Data Type"})
			ids, _ := cmdCtx.Templates().List()
			for _, id := range ids {
				tpl := all[id]
				t.AppendRow(table.Row{id, tpl["label"], tpl["analytical_type"], tpl["data_type"]})
			}
			t.Render()
			return nil
		},
	}
}

func newTemplateShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			tpl, ok, err := cmdCtx.Templates().Load(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("blueprint %q not found", args[0])
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tpl)
		},
	}
}

func newTemplateSaveCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "save <variable>",
		Short: "Save a committed variable as a reusable blueprint",
		Long: `Save a committed variable to the user blueprint library. The name,
alias, and description are stripped so the blueprint stays generic.`,
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
			v, err := l.At(idx)
			if err != nil {
				return err
			}

			if label == "" {
				label = v.Name
			}
			doc := blueprint.Template{
				"name":            v.Name,
				"alias":           v.Alias,
				"description":     v.Description,
				"analytical_type": string(v.AnalyticalType),
				"data_type":       string(v.DataType),
				"role":            string(v.Role),
			}
			for _, section := range []struct {
				name   string
				fields map[string]any
			}{
				{"constraints", v.Constraints},
				{"cleaning", v.Cleaning},
				{"governance", v.Governance},
				{"database_mapping", v.DatabaseMapping},
			} {
				if len(section.fields) > 0 {
					doc[section.name] = section.fields
				}
			}

			id, err := cmdCtx.Templates().Save(label, doc)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved blueprint %q\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Blueprint label (defaults to the variable name)")
	return cmd
}

func newTemplateApplyCommand() *cobra.Command {
	var (
		overwriteName bool
		overwriteAll  bool
	)

	cmd := &cobra.Command{
		Use:   "apply <id> <variable>",
		Short: "Hydrate a committed variable from a blueprint",
		Long: `Merge a blueprint into a committed variable. Legacy vocabulary in the
blueprint is resolved to the canonical taxonomy first, nested sections
merge key by key, and the variable's identity fields are preserved
unless explicitly overwritten.`,
		Example: `  # Apply a blueprint, keeping the variable's identity
  dictforge template apply secure_id customer_id

  # Let the blueprint replace every identity field
  dictforge template apply secure_id customer_id --overwrite-all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			tpl, ok, err := cmdCtx.Templates().Load(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("blueprint %q not found", args[0])
			}

			l := cmdCtx.Session.Ledger()
			idx := l.IndexOf(args[1])
			if idx < 0 {
				return fmt.Errorf("variable %q is not in the dictionary", args[1])
			}
			if err := cmdCtx.Session.BeginEdit(idx); err != nil {
				return err
			}

			ov := blueprint.Overwrite{
				Name:        overwriteName || overwriteAll,
				Alias:       overwriteAll,
				Description: overwriteAll,
			}
			rows, report, err := blueprint.Hydrate(tpl, cmdCtx.Session.Buffer(), ov)
			if err != nil {
				return err
			}

			if err := cmdCtx.Session.Commit(); err != nil {
				cmdCtx.Session.Discard()
				return err
			}
			if err := cmdCtx.SaveDictionary(); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
			if len(rows) > 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Categorical rows:")
				for _, row := range rows {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %2d  %s\n", row.Rank, row.Label)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwriteName, "overwrite-name", false, "Let the blueprint replace the variable name")
	cmd.Flags().BoolVar(&overwriteAll, "overwrite-all", false, "Let the blueprint replace name, alias, and description")
	return cmd
}

func newTemplateRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a user blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			ok, err := cmdCtx.Templates().Delete(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("blueprint %q is not in the user library (standard blueprints are read-only)", args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed blueprint %q\n", args[0])
			return nil
		},
	}
}
