package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/export"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dictionary to yaml, json, csv, xlsx, or sql",
		Long: `Render the committed dictionary in a distributable format. Structured
formats (yaml, json) carry project metadata and a generation timestamp;
tabular formats (csv, xlsx) flatten each variable to one row; sql emits
a PostgreSQL schema script.

With --out the result is written to a file, otherwise structured and
sql output goes to stdout. The format defaults to the --out extension.`,
		Example: `  dictforge export --format json
  dictforge export --out dictionary.xlsx
  dictforge export --format sql --out schema.sql`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			vars := cmdCtx.Session.Ledger().All()
			if len(vars) == 0 {
				return fmt.Errorf("dictionary is empty, nothing to export")
			}

			if format == "" {
				if out == "" {
					format = "yaml"
				} else {
					format = strings.TrimPrefix(filepath.Ext(out), ".")
				}
			}

			var data []byte
			switch format {
			case "yaml", "yml":
				data, err = export.NewDocument(cmdCtx.Project, vars).YAML()
			case "json":
				data, err = export.NewDocument(cmdCtx.Project, vars).JSON()
			case "sql":
				data = []byte(export.SQLScript(vars))
			case "csv":
				var sb strings.Builder
				if err = export.WriteCSV(&sb, vars); err == nil {
					data = []byte(sb.String())
				}
			case "xlsx":
				if out == "" {
					return fmt.Errorf("xlsx export needs --out")
				}
				f, ferr := os.Create(out)
				if ferr != nil {
					return ferr
				}
				defer f.Close()
				if err := export.WriteExcel(f, cmdCtx.Project, vars); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d variable(s) to %s\n", len(vars), out)
				return nil
			default:
				return fmt.Errorf("unknown export format %q (yaml, json, csv, xlsx, sql)", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				_, _ = cmd.OutOrStdout().Write(data)
				return nil
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d variable(s) to %s\n", len(vars), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: yaml, json, csv, xlsx, sql")
	cmd.Flags().StringVar(&out, "out", "", "Write the export to this file")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json", "csv", "xlsx", "sql"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
