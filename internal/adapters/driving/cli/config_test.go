package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/sitecheck-cli/internal/adapters/driven/config/file"
)

// wireTestConfig points the command surface at a temp-dir config store.
func wireTestConfig(t *testing.T) {
	t.Helper()

	prev := configStore
	t.Cleanup(func() { configStore = prev })

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store
}

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigCmd_Subcommands(t *testing.T) {
	expected := []string{"show", "set", "get", "path"}

	names := make(map[string]bool)
	for _, c := range configCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, names[name], "subcommand %q should be registered", name)
	}
}

func TestConfigSetAndGet_Executes(t *testing.T) {
	wireTestConfig(t)

	output, err := execute(t, "config", "set", "github.repo", "acme/facilities")
	require.NoError(t, err)
	assert.Contains(t, output, "Set github.repo")

	output, err = execute(t, "config", "get", "github.repo")
	require.NoError(t, err)
	assert.Contains(t, output, "acme/facilities")
}

func TestConfigGet_MissingKey(t *testing.T) {
	wireTestConfig(t)

	_, err := execute(t, "config", "get", "nope")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigShow_MasksToken(t *testing.T) {
	wireTestConfig(t)
	require.NoError(t, configStore.Set("github.token", "ghp_1234567890abcdef"))

	output, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, output, "ghp_...cdef")
	assert.NotContains(t, output, "ghp_1234567890abcdef")
}

func TestConfigPath_Executes(t *testing.T) {
	wireTestConfig(t)

	output, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, output, "config.toml")
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Short token", input: "abc123", expected: "****"},
		{name: "Exactly 8 chars", input: "12345678", expected: "****"},
		{name: "Long token", input: "ghp_1234567890abcdef", expected: "ghp_...cdef"},
		{name: "Empty token", input: "", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskToken(tt.input))
		})
	}
}
