package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("overrides on top of defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "engine.toml")
		content := `
[database]
dsn = "postgres://x:y@db:5432/checks"

[jobs]
root_ids = [1, 2, 3, 4]
max_combinations = 100
workers = 2

[logging]
level = "debug"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres://x:y@db:5432/checks", cfg.Database.DSN)
		assert.Equal(t, []uint32{1, 2, 3, 4}, cfg.Jobs.RootIDs)
		assert.Equal(t, 100, cfg.Jobs.MaxCombinations)
		assert.Equal(t, 2, cfg.Jobs.Workers)
		assert.Equal(t, "debug", cfg.Logging.Level)

		// untouched defaults survive
		assert.Equal(t, 500, cfg.Jobs.BatchSize)
		assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, "console", cfg.Logging.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("bad toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[jobs\nworkers="), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
