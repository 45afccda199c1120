package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Marshal renders the snapshot as indented JSON with a trailing newline
func Marshal(snap *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Write persists the snapshot at path. The file is replaced atomically so
// readers never observe a partial document.
func Write(path string, snap *Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set snapshot permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

// ReadBytes returns the raw snapshot at path after checking it decodes
func ReadBytes(path string) ([]byte, *Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if snap.SchemaVersion != SchemaVersion {
		return nil, nil, fmt.Errorf("unsupported snapshot schema version %d", snap.SchemaVersion)
	}
	return data, &snap, nil
}

// Read loads the snapshot at path
func Read(path string) (*Snapshot, error) {
	_, snap, err := ReadBytes(path)
	return snap, err
}
