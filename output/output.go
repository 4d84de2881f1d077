// Package output writes the flat-file artifacts of a report run and
// prints the completion summary.
package output

import (
	"encoding/json"
	"fmt"
	"ghprofile/models"
	"os"
	"path/filepath"
)

// Artifact names within the output directory.
const (
	ReportFile   = "README.md"
	SnapshotFile = "github_stats.json"
	LogFile      = "github_stats.log"

	LanguageChartBase = "language_distribution"
	DashboardBase     = "github_dashboard"
)

// EnsureDir creates the output directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile writes data to path atomically, via a temp file in the
// same directory renamed into place.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	// CreateTemp uses 0600 and rename keeps it. Artifacts should be
	// world readable.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// WriteSnapshot serializes the statistics snapshot as indented JSON.
func WriteSnapshot(path string, snap *models.StatsSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return WriteFile(path, append(data, '\n'))
}

// ReadSnapshot parses a snapshot previously written by WriteSnapshot.
func ReadSnapshot(path string) (*models.StatsSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap models.StatsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}
