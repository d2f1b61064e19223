package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":             "9090",
		"PAGE_SIZE":        "nope",
		"AUTO_MIGRATE":     "false",
		"ACCEPTED_ORIGINS": " https://a.example, ,https://b.example ",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(nil, "PORT", "8080"))
	assert.Equal(t, 9090, GetInt(c, "PORT", 1))
	assert.Equal(t, 3, GetInt(c, "PAGE_SIZE", 3))
	assert.False(t, GetBool(c, "AUTO_MIGRATE", true))
	assert.True(t, GetBool(c, "MISSING", true))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetStrings(c, "ACCEPTED_ORIGINS"))
	assert.Empty(t, GetStrings(c, "MISSING"))
}

func TestLoadFile_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devfolio.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = 7000
log_level = "debug"
database_replica_urls = ["postgres://r1", "postgres://r2"]
auto_migrate = false

[ignored]
key = "value"
`), 0o600))

	c := map[string]string{"PORT": "8081"}
	require.NoError(t, LoadFile(c, path))

	assert.Equal(t, "8081", c["PORT"])
	assert.Equal(t, "debug", c["LOG_LEVEL"])
	assert.Equal(t, "postgres://r1,postgres://r2", c["DATABASE_REPLICA_URLS"])
	assert.Equal(t, "false", c["AUTO_MIGRATE"])
	_, ok := c["IGNORED"]
	assert.False(t, ok)
}

func TestLoadFile_Missing(t *testing.T) {
	err := LoadFile(map[string]string{}, filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	k, v := split("A=b=c")
	assert.Equal(t, "A", k)
	assert.Equal(t, "b=c", v)

	k, v = split("FLAG")
	assert.Equal(t, "FLAG", k)
	assert.Empty(t, v)
}
