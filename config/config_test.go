package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, 1000.0, c.Check.MaxTravel)
	assert.Equal(t, 10000.0, c.Check.MaxFeed)
	assert.Equal(t, []string{".nc", ".txt", ".gcode", ".cnc"}, c.Check.Extensions)
	assert.Len(t, c.Check.Candidates, 6)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, ":8080", c.Server.Addr)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gcheck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[check]
max_travel = 500.0
extensions = [".nc"]

[log]
level = "debug"

[history]
path = "runs.db"
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500.0, c.Check.MaxTravel)
	assert.Equal(t, 10000.0, c.Check.MaxFeed)
	assert.Equal(t, []string{".nc"}, c.Check.Extensions)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "runs.db", c.History.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Check.MaxTravel = -1
	assert.ErrorContains(t, c.Validate(), "max_travel")

	c = Default()
	c.Check.Candidates = []string{"O%d%d.nc"}
	assert.ErrorContains(t, c.Validate(), "exactly once")

	c = Default()
	c.Check.Extensions = []string{"nc"}
	assert.ErrorContains(t, c.Validate(), "start with a dot")

	c = Default()
	c.Log.Level = "loud"
	assert.ErrorContains(t, c.Validate(), "log.level")
}
