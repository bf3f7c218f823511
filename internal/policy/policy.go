// Package policy persists trained value tables as JSON snapshots so a
// training run's output can be reloaded for later evaluation.
package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the on-disk form of a trained policy: the value table plus
// enough run metadata to reconstruct a compatible agent.
type Snapshot struct {
	SavedAt  time.Time          `json:"saved_at"`
	Episodes int                `json:"episodes"`
	Seed     int64              `json:"seed"`
	Alpha    float64            `json:"alpha"`
	Gamma    float64            `json:"gamma"`
	Values   map[string]float64 `json:"values"`
}

// Save writes a snapshot to disk. The write is atomic: readers see either
// the previous snapshot or the complete new one, never a partial file.
func Save(filename string, snap Snapshot) error {
	if len(snap.Values) == 0 {
		return fmt.Errorf("policy: refusing to save an empty value table")
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("policy: marshal snapshot: %w", err)
	}
	return writeFileAtomic(filename, data, 0644)
}

// Load reads a snapshot from disk
func Load(filename string) (Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Snapshot{}, fmt.Errorf("policy: read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("policy: decode snapshot: %w", err)
	}
	if len(snap.Values) == 0 {
		return Snapshot{}, fmt.Errorf("policy: snapshot %s has an empty value table", filename)
	}
	return snap, nil
}

// writeFileAtomic writes data via a temp file in the same directory and an
// atomic rename, so a crash mid-write never leaves a truncated snapshot.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("policy: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("policy: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("policy: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("policy: close temp file: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("policy: set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("policy: rename temp file: %w", err)
	}
	return nil
}
