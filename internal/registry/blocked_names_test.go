package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rune-metrics/player-tracker/internal/registry"
)

func writeBlockedNamesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blocked_names.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBlockedNames(t *testing.T) {
	t.Run("loads and matches exact names", func(t *testing.T) {
		path := writeBlockedNamesFile(t, `{
			"names": ["Zezima", "reserved_name"],
			"prefixes": []
		}`)

		reg, err := registry.LoadBlockedNames(path)
		require.NoError(t, err)

		assert.True(t, reg.IsBlocked("zezima"))
		assert.True(t, reg.IsBlocked("  ZeZiMa "))
		assert.True(t, reg.IsBlocked("reserved name"))
		assert.True(t, reg.IsBlocked("Reserved-Name"))
		assert.False(t, reg.IsBlocked("zezima2"))
		assert.False(t, reg.IsBlocked("someone else"))
	})

	t.Run("matches reserved prefixes", func(t *testing.T) {
		path := writeBlockedNamesFile(t, `{
			"names": [],
			"prefixes": ["Mod "]
		}`)

		reg, err := registry.LoadBlockedNames(path)
		require.NoError(t, err)

		assert.True(t, reg.IsBlocked("Mod Ash"))
		assert.True(t, reg.IsBlocked("mod_ash"))
		assert.False(t, reg.IsBlocked("modest"), "prefix includes the separator")
		assert.False(t, reg.IsBlocked("mod"))
	})

	t.Run("empty registry blocks nothing", func(t *testing.T) {
		path := writeBlockedNamesFile(t, `{"names": [], "prefixes": []}`)

		reg, err := registry.LoadBlockedNames(path)
		require.NoError(t, err)

		assert.False(t, reg.IsBlocked("anyone"))
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := registry.LoadBlockedNames(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON returns error", func(t *testing.T) {
		path := writeBlockedNamesFile(t, `{not json`)

		_, err := registry.LoadBlockedNames(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse blocked-names JSON")
	})
}
