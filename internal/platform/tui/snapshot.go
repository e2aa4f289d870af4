package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/reef-runner/internal/games/runner"
)

// DefaultSnapshotDir returns ~/.reefrun/snapshots, or a relative directory
// when the home directory is unknown.
func DefaultSnapshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".reefrun", "snapshots")
	}
	return filepath.Join(home, ".reefrun", "snapshots")
}

// SaveSnapshot writes snap as msgpack into dir and returns the file path.
func SaveSnapshot(dir, runID string, snap runner.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: create snapshot dir: %w", err)
	}

	data, err := msgpack.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("tui: encode snapshot: %w", err)
	}

	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	name := fmt.Sprintf("%s_%s_t%d.msgpack", short, time.Now().Format("20060102_150405"), snap.Tick)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("tui: write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (runner.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Snapshot{}, fmt.Errorf("tui: read snapshot: %w", err)
	}
	var snap runner.Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return runner.Snapshot{}, fmt.Errorf("tui: decode snapshot %s: %w", path, err)
	}
	return snap, nil
}
