// Package commands implements the dictforge subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/blueprint"
	"github.com/forgeworks-labs/dictforge/internal/cli/config"
	"github.com/forgeworks-labs/dictforge/internal/ledger"
	"github.com/forgeworks-labs/dictforge/internal/regulation"
	"github.com/forgeworks-labs/dictforge/internal/schema"
)

// ConfigKey is the context key the root command stores the loaded
// configuration under.
type ConfigKey struct{}

// CommandContext bundles the loaded configuration and dictionary
// session a command works against.
type CommandContext struct {
	Cfg     *config.Config
	Session *ledger.Session
	Project ledger.ProjectInfo
}

// GetConfig retrieves the config from the command context, falling
// back to defaults when the root command has not stored one.
func GetConfig(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(ConfigKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		DictionaryPath: config.DefaultDictionaryPath,
		OutputFormat:   config.DefaultOutput,
		DefaultTable:   config.DefaultTargetTable,
	}
}

// NewCommandContext loads the dictionary document for the current
// project and wraps it in an editing session.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := GetConfig(cmd)
	doc, err := ledger.Load(cfg.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	slog.Debug("loaded dictionary", "path", cfg.DictionaryPath, "variables", len(doc.Variables), "pending", len(doc.Pending))
	return &CommandContext{
		Cfg:     cfg,
		Session: ledger.SessionFromDocument(doc),
		Project: doc.Project,
	}, nil
}

// SaveDictionary persists the session back to the dictionary file.
func (c *CommandContext) SaveDictionary() error {
	doc := ledger.DocumentFromSession(c.Project, c.Session)
	if err := ledger.Save(c.Cfg.DictionaryPath, doc); err != nil {
		return fmt.Errorf("save dictionary: %w", err)
	}
	slog.Debug("saved dictionary", "path", c.Cfg.DictionaryPath, "variables", len(doc.Variables))
	return nil
}

// Schema loads the project's master schema, or the embedded default
// when the project does not name one.
func (c *CommandContext) Schema() (*schema.Schema, error) {
	if c.Cfg.SchemaPath == "" {
		return schema.Default(), nil
	}
	return schema.Load(c.Cfg.SchemaPath)
}

// Templates opens the two-tier blueprint store.
func (c *CommandContext) Templates() *blueprint.Store {
	return blueprint.NewStore(c.Cfg.TemplatesStandard, c.Cfg.TemplatesUser)
}

// Regulations opens the compliance framework catalog.
func (c *CommandContext) Regulations() *regulation.Store {
	return regulation.Open(c.Cfg.RegulationsPath)
}
