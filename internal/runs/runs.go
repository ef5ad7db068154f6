// Package runs manages archived analysis runs under .rollcall/runs/.
// Each run is a directory named by its start time.
package runs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// TimestampLayout is the format used for run directory names.
const TimestampLayout = "20060102-150405"

// ErrNoRuns is returned when no archived run exists.
var ErrNoRuns = errors.New("no archived runs found; start one with: rollcall analyze <transcript>")

// Dir returns the runs directory for the project rooted at root.
func Dir(root string) string {
	return filepath.Join(root, ".rollcall", "runs")
}

// Create makes a new run directory named after now and returns its name.
// It fails if a run started in the same second already exists.
func Create(runsDir string, now time.Time) (string, error) {
	name := now.Format(TimestampLayout)
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return "", fmt.Errorf("creating runs directory: %w", err)
	}
	if err := os.Mkdir(filepath.Join(runsDir, name), 0755); err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}
	return name, nil
}

// List returns run directory names oldest first. Entries that are not
// directories or not timestamp-named are skipped. A missing runs directory
// yields no runs.
func List(runsDir string) ([]string, error) {
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading runs directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := time.Parse(TimestampLayout, entry.Name()); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}

	// Timestamp names sort chronologically.
	sort.Strings(names)
	return names, nil
}

// Latest returns the name of the most recent run.
func Latest(runsDir string) (string, error) {
	names, err := List(runsDir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNoRuns
	}
	return names[len(names)-1], nil
}

// PruneByAge removes runs older than maxAgeDays relative to now.
// With dryRun nothing is deleted. Returns the pruned names.
func PruneByAge(runsDir string, maxAgeDays int, now time.Time, dryRun bool) ([]string, error) {
	names, err := List(runsDir)
	if err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -maxAgeDays)
	var old []string
	for _, name := range names {
		// List already filtered unparsable names.
		t, _ := time.ParseInLocation(TimestampLayout, name, now.Location())
		if t.Before(cutoff) {
			old = append(old, name)
		}
	}

	return remove(runsDir, old, dryRun)
}

// PruneKeepRecent removes all runs except the keep most recent.
// With dryRun nothing is deleted. Returns the pruned names.
func PruneKeepRecent(runsDir string, keep int, dryRun bool) ([]string, error) {
	names, err := List(runsDir)
	if err != nil {
		return nil, err
	}
	if len(names) <= keep {
		return nil, nil
	}

	return remove(runsDir, names[:len(names)-keep], dryRun)
}

func remove(runsDir string, names []string, dryRun bool) ([]string, error) {
	var pruned []string
	for _, name := range names {
		if !dryRun {
			if err := os.RemoveAll(filepath.Join(runsDir, name)); err != nil {
				return pruned, fmt.Errorf("removing %s: %w", name, err)
			}
		}
		pruned = append(pruned, name)
	}
	return pruned, nil
}
