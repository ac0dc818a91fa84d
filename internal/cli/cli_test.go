package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks-labs/dictforge/internal/cli/config"
	"github.com/forgeworks-labs/dictforge/internal/testutil"
)

// run executes the root command with args and returns its combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	slog.SetDefault(testutil.NewTestLogger(t))
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dictforge")
}

func TestHelpListsCommands(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"add", "list", "edit", "batch", "template", "export", "lint", "regulations"} {
		assert.Contains(t, out, name)
	}
}

func TestInitCreatesProject(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, "init", "--name", "Credit Risk")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized dictforge project")
	assert.FileExists(t, filepath.Join(dir, "dictforge.yaml"))
	assert.FileExists(t, filepath.Join(dir, "dictionary.yaml"))
}

func TestAddListShowFlow(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "add", "customer_age",
		"--at", "continuous", "--dt", "float64",
		"--constraint", "min_value=18", "--constraint", "max_value=99")
	require.NoError(t, err)
	assert.Contains(t, out, `Committed "customer_age"`)

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "customer_age")
	assert.Contains(t, out, "continuous")

	out, err = run(t, "show", "customer_age")
	require.NoError(t, err)
	assert.Contains(t, out, "min_value: 18")
	assert.Contains(t, out, "# quality:")
}

func TestAddGuessInfersTypes(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "customer_id", "--guess")
	require.NoError(t, err)

	out, err := run(t, "show", "customer_id")
	require.NoError(t, err)
	assert.Contains(t, out, "analytical_type: discrete")
	assert.Contains(t, out, "data_type: int64")
	assert.Contains(t, out, "role: id")
}

func TestAddRejectsDuplicateName(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount")
	require.NoError(t, err)

	_, err = run(t, "add", "amount")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddDropsIncoherentSectionField(t *testing.T) {
	t.Chdir(t.TempDir())

	// regex_pattern is a string-only constraint, so a float variable
	// silently drops it.
	_, err := run(t, "add", "amount",
		"--at", "continuous", "--dt", "float64",
		"--constraint", "regex_pattern=^[A-Z]+$", "--constraint", "min_value=0")
	require.NoError(t, err)

	out, err := run(t, "show", "amount")
	require.NoError(t, err)
	assert.NotContains(t, out, "regex_pattern")
	assert.Contains(t, out, "min_value: 0")
}

func TestEditCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount")
	require.NoError(t, err)

	out, err := run(t, "edit", "amount", "--alias", "Transaction Amount")
	require.NoError(t, err)
	assert.Contains(t, out, `Updated "amount"`)

	out, err = run(t, "show", "amount")
	require.NoError(t, err)
	assert.Contains(t, out, "alias: Transaction Amount")
}

func TestRemoveCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount")
	require.NoError(t, err)

	out, err := run(t, "rm", "amount")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "amount"`)

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "(empty dictionary)")
}

func TestCloneCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount", "--constraint", "min_value=0")
	require.NoError(t, err)

	out, err := run(t, "clone", "amount", "--name", "amount_eur")
	require.NoError(t, err)
	assert.Contains(t, out, `Cloned "amount" as "amount_eur"`)

	out, err = run(t, "show", "amount_eur")
	require.NoError(t, err)
	assert.Contains(t, out, "min_value: 0")
}

func TestCloneBulkCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount")
	require.NoError(t, err)

	out, err := run(t, "clone", "amount", "--prefix", "agg_", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "agg_amount_1")
	assert.Contains(t, out, "agg_amount_2")
}

func TestBatchDryRunLeavesDictionaryUntouched(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount", "--constraint", "min_value=0")
	require.NoError(t, err)

	out, err := run(t, "batch", "--target", "amount", "--at", "binary", "--dt", "bool")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
	assert.Contains(t, out, "constraints.min_value")

	out, err = run(t, "show", "amount")
	require.NoError(t, err)
	assert.Contains(t, out, "analytical_type: continuous")
}

func TestBatchCommitPrunesIncoherentKeys(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount", "--constraint", "min_value=0")
	require.NoError(t, err)

	out, err := run(t, "batch", "--target", "amount", "--at", "binary", "--dt", "bool", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Committed.")

	out, err = run(t, "show", "amount")
	require.NoError(t, err)
	assert.Contains(t, out, "analytical_type: binary")
	assert.NotContains(t, out, "min_value")
}

func TestIngestAndQueue(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("customer_id,amount,is_active\n1,10.5,true\n"), 0o644))

	out, err := run(t, "ingest", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Queued 3 of 3")

	out, err = run(t, "queue")
	require.NoError(t, err)
	assert.Contains(t, out, "customer_id")
	assert.Contains(t, out, "is_active")

	// Committing a queued name removes it from the queue.
	_, err = run(t, "add", "amount")
	require.NoError(t, err)
	out, err = run(t, "queue")
	require.NoError(t, err)
	assert.NotContains(t, out, "amount")

	out, err = run(t, "queue", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Dropped 2 pending name(s)")
}

func TestLintReportsStaleMetadata(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount", "--constraint", "min_value=0")
	require.NoError(t, err)

	out, err := run(t, "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "coherent")
}

func TestExportFormats(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := run(t, "add", "amount", "--constraint", "min_value=0")
	require.NoError(t, err)

	out, err := run(t, "export", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"project_metadata"`)
	assert.Contains(t, out, `"generated_at"`)

	out, err = run(t, "export", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "name,")

	_, err = run(t, "export", "--out", filepath.Join(dir, "dict.xlsx"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "dict.xlsx"))

	out, err = run(t, "export", "--format", "sql")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE")
}

func TestTemplateSaveListApply(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "add", "amount", "--constraint", "min_value=0", "--constraint", "nullable=false")
	require.NoError(t, err)
	_, err = run(t, "add", "balance")
	require.NoError(t, err)

	out, err := run(t, "template", "save", "amount", "--label", "Positive Amount")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved blueprint "positive_amount"`)

	out, err = run(t, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "positive_amount")

	out, err = run(t, "template", "apply", "positive_amount", "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "applied")

	out, err = run(t, "show", "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "name: balance")
	assert.Contains(t, out, "min_value: 0")

	out, err = run(t, "template", "rm", "positive_amount")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed blueprint "positive_amount"`)
}

func TestRegulationsCatalog(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "regulations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GDPR")

	out, err = run(t, "regulations", "add", "DORA", "--full-name", "Digital Operational Resilience Act", "--jurisdiction", "EU")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved framework "DORA"`)

	out, err = run(t, "regulations", "show", "DORA")
	require.NoError(t, err)
	assert.Contains(t, out, "Digital Operational Resilience Act")

	out, err = run(t, "regulations", "rm", "DORA")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed framework "DORA"`)
}

func TestListSeededDictionary(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := testutil.WriteDictionary(t, dir,
		testutil.SampleVariable("amount"),
		testutil.SampleVariable("balance"))

	out, err := run(t, "list", "--dictionary", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Test Project (2 variables)")
	assert.Contains(t, out, "amount")
	assert.Contains(t, out, "balance")
}

func TestVerboseLogsDictionaryLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "list", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "loaded dictionary")
}

func TestDictionaryFlagOverridesPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	alt := filepath.Join(dir, "alt.yaml")
	_, err := run(t, "add", "amount", "--dictionary", alt)
	require.NoError(t, err)
	assert.FileExists(t, alt)
	assert.NoFileExists(t, filepath.Join(dir, "dictionary.yaml"))
}
