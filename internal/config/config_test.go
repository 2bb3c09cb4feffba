package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRosterDefaults(t *testing.T) {
	roster, err := loadRoster("")
	require.NoError(t, err)
	assert.Equal(t, defaultRoster, roster)
	assert.Equal(t, "Delhi", roster[0], "roster order is fixed")
}

func TestLoadRosterFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cities:\n  - Pune\n  - Nagpur\n"), 0o644))

	roster, err := loadRoster(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pune", "Nagpur"}, roster)
}

func TestLoadRosterRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cities: []\n"), 0o644))

	_, err := loadRoster(path)
	assert.Error(t, err)
}

func TestLoadOrigins(t *testing.T) {
	origins := loadOrigins("https://app.example.com, https://staging.example.com,")
	assert.Contains(t, origins, "http://localhost:5173")
	assert.Contains(t, origins, "https://app.example.com")
	assert.Contains(t, origins, "https://staging.example.com")
	assert.Len(t, origins, 3)
}
