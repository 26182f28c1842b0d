package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/ticket-booking-api/internal/config"
)

func TestDatabaseURLFallbacks(t *testing.T) {
	assert.Equal(t, "postgres://x", databaseURL(config.Config{DatabaseURL: "postgres://x", DBHost: "db"}))
	assert.Equal(t, "mysql://root:pw@db:3306/tickets",
		databaseURL(config.Config{DBUser: "root", DBPass: "pw", DBHost: "db", DBPort: "3306", DBName: "tickets"}))
	assert.Empty(t, databaseURL(config.Config{}))
}

func TestWriteOpenAPIJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "interfaces", "openapi.json")
	require.NoError(t, writeOpenAPI(out, "json"))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "paths")
}

func TestWriteOpenAPIYAML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, writeOpenAPI(out, "yaml"))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
}

func TestWriteOpenAPIRejectsUnknownFormat(t *testing.T) {
	assert.Error(t, writeOpenAPI(filepath.Join(t.TempDir(), "x"), "toml"))
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "worker", "openapi"} {
		assert.True(t, names[want], want)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("worker"))
}
