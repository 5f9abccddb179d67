package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()

	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("github.repo", "acme/facilities"))

	val, ok := store.Get("github.repo")
	require.True(t, ok)
	assert.Equal(t, "acme/facilities", val)
	assert.Equal(t, "acme/facilities", store.GetString("github.repo"))
}

func TestConfigStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("flag", true))

	assert.Empty(t, store.GetString("flag"))
	assert.True(t, store.GetBool("flag"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("github.token", "ghp_example"))
	require.NoError(t, store.Set("github.branch", "main"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "ghp_example", reopened.GetString("github.token"))
	assert.Equal(t, "main", reopened.GetString("github.branch"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("github.token", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_LoadNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[github]\ntoken = \"ghp_example\"\nrepo = \"acme/facilities\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, "ghp_example", store.GetString("github.token"))
	assert.Equal(t, "acme/facilities", store.GetString("github.repo"))
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"top": "value",
		"github": map[string]any{
			"token": "t",
			"auth": map[string]any{
				"mode": "pat",
			},
		},
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, "value", flat["top"])
	assert.Equal(t, "t", flat["github.token"])
	assert.Equal(t, "pat", flat["github.auth.mode"])
}
