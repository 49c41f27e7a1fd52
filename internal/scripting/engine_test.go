package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hooks.lua")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func samplePermutation() Permutation {
	return Permutation{
		KeeperA: 1, BurnerA: 2, KeeperB: 3, BurnerB: 4,
		Checks: 20, ColorBand: 2, Gradient: 1, Speed: 2, Direction: 0,
		Attributes: map[string]string{"Color Band": "Forty", "Shift": "IR"},
	}
}

func TestEngine(t *testing.T) {
	log := zap.NewNop()

	t.Run("no script keeps everything", func(t *testing.T) {
		e, err := NewEngine("", log)
		require.NoError(t, err)
		defer e.Close()
		assert.True(t, e.Filter(samplePermutation()))
		assert.Zero(t, e.Score(samplePermutation()))
	})

	t.Run("filter by gradient", func(t *testing.T) {
		e, err := NewEngine(writeScript(t, `
function filter(p)
  return p.gradient > 0
end
`), log)
		require.NoError(t, err)
		defer e.Close()

		p := samplePermutation()
		assert.True(t, e.Filter(p))
		p.Gradient = 0
		assert.False(t, e.Filter(p))
	})

	t.Run("score reads attributes", func(t *testing.T) {
		e, err := NewEngine(writeScript(t, `
function score(p)
  if p.attributes["Shift"] == "IR" then
    return p.checks * 2
  end
  return 0
end
`), log)
		require.NoError(t, err)
		defer e.Close()
		assert.Equal(t, 40.0, e.Score(samplePermutation()))
	})

	t.Run("filter error keeps the row", func(t *testing.T) {
		e, err := NewEngine(writeScript(t, `
function filter(p)
  error("boom")
end
`), log)
		require.NoError(t, err)
		defer e.Close()
		assert.True(t, e.Filter(samplePermutation()))
	})

	t.Run("missing script file fails", func(t *testing.T) {
		_, err := NewEngine(filepath.Join(t.TempDir(), "absent.lua"), log)
		assert.Error(t, err)
	})

	t.Run("broken script fails", func(t *testing.T) {
		_, err := NewEngine(writeScript(t, "function filter(p"), log)
		assert.Error(t, err)
	})
}
