package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyDocument(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "New Project", doc.Project.ProjectName)
	assert.Empty(t, doc.Variables)
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variables: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err, "the dictionary is the primary artifact; parse failures must surface")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.yaml")

	s := NewSession(nil)
	s.SetBuffer(mkVar("customer_age"))
	require.NoError(t, s.Commit())
	s.Enqueue([]string{"pending_one"})

	doc := DocumentFromSession(ProjectInfo{ProjectName: "Churn Study", Version: "2.1.0"}, s)
	require.NoError(t, Save(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Churn Study", loaded.Project.ProjectName)
	require.Len(t, loaded.Variables, 1)
	assert.Equal(t, "customer_age", loaded.Variables[0].Name)
	assert.Equal(t, []string{"pending_one"}, loaded.Pending)
	assert.False(t, loaded.UpdatedAt.IsZero())

	restored := SessionFromDocument(loaded)
	assert.Equal(t, []string{"customer_age"}, restored.Ledger().Names())
	assert.Equal(t, []string{"pending_one"}, restored.Pending())
}
