package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// unsetEnv removes the given variables for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestNewConfigFromEnvDefaults(t *testing.T) {
	unsetEnv(t, "GITHUB_TOKEN", "ARCHITECTURY_TEMPLATES_REPO", "ARCHITECTURY_USER_AGENT", "ARCHITECTURY_HTTP_TIMEOUT")
	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, "architectury/architectury-templates", cfg.TemplatesRepo)
	require.Equal(t, "Architectury-CLI", cfg.UserAgent)
	require.Equal(t, time.Minute, cfg.HTTPTimeout)
	require.Empty(t, cfg.GitHubToken)
}

func TestNewConfigFromEnv(t *testing.T) {
	unsetEnv(t, "ARCHITECTURY_USER_AGENT")
	t.Setenv("GITHUB_TOKEN", "token")
	t.Setenv("ARCHITECTURY_TEMPLATES_REPO", "my-org/templates")
	t.Setenv("ARCHITECTURY_HTTP_TIMEOUT", "10s")
	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.GitHubToken)
	require.Equal(t, "my-org/templates", cfg.TemplatesRepo)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)

	ghClient := cfg.CreateGitHubClient()
	require.Equal(t, cfg.UserAgent, ghClient.UserAgent)
}

func TestNewConfigFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("ARCHITECTURY_HTTP_TIMEOUT", "soon")
	_, err := NewConfigFromEnv()
	require.Error(t, err)
}

func TestCatalogName(t *testing.T) {
	testCases := []struct {
		name     string
		mixin    bool
		expected string
	}{
		{name: "forge", mixin: false, expected: "forge"},
		{name: "forge-fabric", mixin: false, expected: "forge-fabric"},
		{name: "forge-fabric", mixin: true, expected: "forge-fabric-mixin"},
		{name: "forge-quilt", mixin: true, expected: "forge-quilt-mixin"},
		{name: "forge-fabric-mixin", mixin: true, expected: "forge-fabric-mixin"},
		{name: "neoforge", mixin: true, expected: "neoforge-mixin"},
		{name: "neoforge", mixin: false, expected: "neoforge"},
		{name: "Forge-Fabric", mixin: true, expected: "forge-fabric-mixin"},
		{name: "FORGE", mixin: false, expected: "forge"},
	}
	for _, testCase := range testCases {
		actual, err := KnownTemplates.CatalogName(testCase.name, testCase.mixin)
		require.NoError(t, err)
		require.Equal(t, testCase.expected, actual)
	}

	_, err := KnownTemplates.CatalogName("forge", true)
	require.EqualError(t, err, "the forge template has no mixin variant")
	_, err = KnownTemplates.CatalogName("Forge", true)
	require.EqualError(t, err, "the forge template has no mixin variant")
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "A Forge-only mod project.", KnownTemplates.Describe("forge"))
	require.Equal(t, "A multiplatform mod project targeting Forge and Quilt, using Mixin.", KnownTemplates.Describe("forge-quilt-mixin"))
	require.Empty(t, KnownTemplates.Describe("forge-mixin"))
	require.Empty(t, KnownTemplates.Describe("neoforge"))
}

func TestFind(t *testing.T) {
	require.NotNil(t, KnownTemplates.Find("Forge-Fabric"))
	require.Nil(t, KnownTemplates.Find("nope"))
}
