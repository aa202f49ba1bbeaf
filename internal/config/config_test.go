package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, RoomSpec{Rows: 11, Cols: 7, Parity: 1}, cfg.Room)
	assert.Equal(t, 10, cfg.Summoner.BoxInCost)
	assert.Equal(t, 5, cfg.Summoner.ExposedThreshold)
	assert.NoError(t, cfg.Validate())
}

func TestOverrideKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexsummon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing:\n  move_ms: 1000\nsummoner:\n  limit: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Timing.MoveMS)
	assert.Equal(t, 5, cfg.Summoner.Limit)
	assert.Equal(t, 200, cfg.Timing.PathStepMS)
	assert.Equal(t, 11, cfg.Room.Rows)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("room: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("room:\n  parity: 3\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexsummon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player:\n  path_chance: 0.5\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("player:\n  path_chance: 0.75\n"), 0o644))

	select {
	case cfg := <-w.Updates:
		assert.InDelta(t, 0.75, cfg.Player.PathChance, 1e-9)
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload within 3s")
	}
}
