package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DefaultDictionaryPath), cfg.DictionaryPath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultTargetTable, cfg.DefaultTable)
	assert.Empty(t, cfg.SchemaPath)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dictforge.yaml")
	content := `dictionary: dict/churn.yaml
output: json
default_table: analytics.base
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "dict/churn.yaml"), cfg.DictionaryPath)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "analytics.base", cfg.DefaultTable)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadFindsConfigUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "dictforge.yaml"), []byte("output: json\n"), 0644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, root, cfg.ProjectRoot)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dictforge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\n"), 0644))
	t.Setenv("DICTFORGE_OUTPUT", "table")

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.OutputFormat)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dictforge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\n"), 0644))
	t.Setenv("DICTFORGE_OUTPUT", "table")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--output", "csv", "--verbose"}))

	cfg, err := Load(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoadUnsetFlagsDoNotOverride(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dictforge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\n"), 0644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "table", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat, "flag defaults must not mask the config file")
}

func TestLoadMalformedConfigFileErrors(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dictforge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: [oops"), 0644))

	_, err := Load(cfgPath, nil)
	assert.Error(t, err)
}
