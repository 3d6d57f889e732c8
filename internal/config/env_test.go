package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadEnvSetsDataDir(t *testing.T) {
	unsetEnv(t, DataDirEnv)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(DataDirEnv+"=/var/lib/tracksim\n"), 0644))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "/var/lib/tracksim", DataDir())
}

func TestLoadEnvKeepsExisting(t *testing.T) {
	t.Setenv(DataDirEnv, "runs")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(DataDirEnv+"=elsewhere\n"), 0644))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "runs", DataDir())
}

func TestLoadEnvMissingFile(t *testing.T) {
	unsetEnv(t, DataDirEnv)

	require.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, DefaultDataDir, DataDir())
}
