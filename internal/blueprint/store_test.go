package blueprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestStoreMergesTiersUserWins(t *testing.T) {
	dir := t.TempDir()
	std := filepath.Join(dir, "templates_standard.yaml")
	user := filepath.Join(dir, "templates_user.json")

	writeFile(t, std, `templates:
  secure_id:
    label: Secure ID
    analytical_type: discrete
  spend_amount:
    label: Spend
    analytical_type: continuous
`)
	writeFile(t, user, `{"user_templates": {"secure_id": {"label": "My Secure ID", "analytical_type": "nominal"}}}`)

	s := NewStore(std, user)
	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "My Secure ID", all["secure_id"]["label"], "user tier wins on collision")
	assert.Equal(t, "Spend", all["spend_amount"]["label"])

	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"secure_id", "spend_amount"}, ids)
}

func TestStoreMissingFilesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "none.yaml"), filepath.Join(dir, "none.json"))

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStoreMalformedUserFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "templates_user.json")
	writeFile(t, user, `{"user_templates": {broken`)

	s := NewStore(filepath.Join(dir, "none.yaml"), user)
	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStoreMalformedStandardFileErrors(t *testing.T) {
	dir := t.TempDir()
	std := filepath.Join(dir, "templates_standard.yaml")
	writeFile(t, std, "templates: [not a map")

	s := NewStore(std, filepath.Join(dir, "none.json"))
	_, err := s.All()
	assert.Error(t, err)
}

func TestStoreSaveStripsIdentityAndSlugifies(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "none.yaml"), filepath.Join(dir, "templates_user.json"))

	id, err := s.Save("Secure ID v2!", Template{
		"name":            "customer_id",
		"alias":           "cid",
		"description":     "the customer key",
		"analytical_type": "discrete",
		"data_type":       "int64",
	})
	require.NoError(t, err)
	assert.Equal(t, "secure_id_v2", id)

	tpl, ok, err := s.Load(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Secure ID v2!", tpl["label"])
	assert.NotContains(t, tpl, "name")
	assert.NotContains(t, tpl, "alias")
	assert.NotContains(t, tpl, "description")
	assert.Equal(t, "discrete", tpl["analytical_type"])
}

func TestStoreDelete(t *testing.T) {
	dir := t.TempDir()
	std := filepath.Join(dir, "templates_standard.yaml")
	writeFile(t, std, "templates:\n  shipped:\n    label: Shipped\n")

	s := NewStore(std, filepath.Join(dir, "templates_user.json"))
	_, err := s.Save("Mine", Template{"analytical_type": "text"})
	require.NoError(t, err)

	ok, err := s.Delete("mine")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete("shipped")
	require.NoError(t, err)
	assert.False(t, ok, "standard tier is immutable")

	_, found, err := s.Load("mine")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Secure ID", "secure_id"},
		{"already_slugged", "already_slugged"},
		{"Mixed  Spaces 3", "mixed__spaces_3"},
		{"Drop!@#Chars", "dropchars"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}
