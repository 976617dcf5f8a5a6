// ABOUTME: Tests for configuration loading and environment overrides
// ABOUTME: Covers defaults, override precedence and save/load round trip
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.ExportDir)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KADRA_DB_PATH", "/tmp/kadra-test.db")
	t.Setenv("KADRA_AUTHOR_FIRST_NAME", "Olaf")
	t.Setenv("KADRA_AUTHOR_LAST_NAME", "Schüler")
	t.Setenv("KADRA_AUTHOR_COMPANY", "Hopro GmbH & Co. KG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kadra-test.db", cfg.DBPath)
	assert.Equal(t, "Olaf", cfg.AuthorFirstName)
	assert.Equal(t, "Schüler", cfg.AuthorLastName)
	assert.Equal(t, "Hopro GmbH & Co. KG", cfg.AuthorCompany)
}

func TestDefaultPathsLiveUnderOneDirectory(t *testing.T) {
	assert.Contains(t, Path(), Dir())
	assert.Contains(t, DefaultDBPath(), "kadra")
}
