package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveDefaultAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	require.NoError(t, SaveDefault(path))
	require.Error(t, SaveDefault(path), "second save must refuse to overwrite")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Player]\nWalkSpeed = 9.5\n"), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, float32(9.5), loaded.Player.WalkSpeed)
	// Everything not in the file keeps its default.
	require.Equal(t, DefaultSettings().Scan.BurstRays, loaded.Scan.BurstRays)
	require.Equal(t, DefaultSettings().Player.Gravity, loaded.Player.Gravity)
}
