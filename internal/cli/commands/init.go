package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/ledger"
)

const defaultConfigYAML = `# dictforge project configuration
dictionary: dictionary.yaml
# schema: config/master_schema.yaml
templates_standard: config/templates_standard.yaml
templates_user: config/templates_user.json
regulations: config/regulations.yaml
output: table
default_table: public_schema_table
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var projectName string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new dictionary project",
		Long: `Initialize a new dictforge project with a configuration file and an
empty dictionary.

This creates:
  - dictforge.yaml configuration file
  - dictionary.yaml with an empty variable ledger
  - config/ directory for templates and regulations`,
		Example: `  # Initialize in the current directory
  dictforge init

  # Initialize a named project in a new directory
  dictforge init churn-study --name "Churn Study"

  # Overwrite an existing configuration
  dictforge init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, projectName, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().StringVar(&projectName, "name", "New Project", "Project name for the dictionary")

	return cmd
}

func runInit(cmd *cobra.Command, dir, projectName string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "dictforge.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("dictforge.yaml already exists, use --force to overwrite")
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "config"), 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	dictPath := filepath.Join(dir, "dictionary.yaml")
	if _, err := os.Stat(dictPath); err != nil || force {
		doc := &ledger.Document{
			Project: ledger.ProjectInfo{ProjectName: projectName, Version: "1.0.0"},
		}
		if err := ledger.Save(dictPath, doc); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized dictforge project in %s\n", dir)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  config:     %s\n", configPath)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  dictionary: %s\n", dictPath)
	return nil
}
