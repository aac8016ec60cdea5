package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing default file is skipped", func(t *testing.T) {
		t.Setenv("ENV_PATH", "")
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, LoadDotEnv(".env"))
	})

	t.Run("loads variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("ELASTICTEA_TEST_VALUE=brewed\n"), 0o600))
		t.Setenv("ENV_PATH", path)
		t.Setenv("ELASTICTEA_TEST_VALUE", "")
		os.Unsetenv("ELASTICTEA_TEST_VALUE")

		require.NoError(t, LoadDotEnv(".env"))
		assert.Equal(t, "brewed", os.Getenv("ELASTICTEA_TEST_VALUE"))
	})
}

func TestInt(t *testing.T) {
	t.Setenv("WORKERS", "")
	n, err := Int("WORKERS", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	t.Setenv("WORKERS", "8")
	n, err = Int("WORKERS", 4)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	t.Setenv("WORKERS", "many")
	_, err = Int("WORKERS", 4)
	assert.Error(t, err)
}

func TestStringAndBool(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "info", String("LOG_LEVEL", "info"))
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, "debug", String("LOG_LEVEL", "info"))

	t.Setenv("PROGRESS", "true")
	assert.True(t, Bool("PROGRESS"))
	t.Setenv("PROGRESS", "yes")
	assert.False(t, Bool("PROGRESS"))
}
