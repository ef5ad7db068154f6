// Package testutil provides test helper utilities for rollcall tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempWorkspace creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// Lines joins transcript lines with newlines, ending with one.
func Lines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// SingleRoll is Alice rolling 2d6 for a 3 and a 5.
func SingleRoll() []string {
	return []string{"Alice:rolling 2d6", "(", "3", "+", "5", ")+8", "=8"}
}

// ForwardedThenRoll is SingleRoll preceded by a forwarded message.
func ForwardedThenRoll() []string {
	return append([]string{"(From someone) irrelevant chatter"}, SingleRoll()...)
}

// Session returns a multi-participant transcript with chatter, a forwarded
// message, an inherited user and two die sizes. Cidel rolls one d20 for 17;
// Alice rolls 2d6 then 1d6 for 3, 5 and 6; Bob rolls one d20 for 4.
func Session() []string {
	return []string{
		"Alice:rolling 2d6",
		"(",
		"3",
		"+",
		"5",
		")+8",
		"=8",
		"nice one",
		"rolling 1d6",
		"(",
		"6",
		")+6",
		"=6",
		"(From Bob) Alice:rolling 9d6",
		"Cidel:rolling 1d20",
		"(",
		"17",
		")+17",
		"=17",
		"Bob:rolling d20",
		"(",
		"4",
		")+4",
		"=4",
	}
}

// MissingUser starts with a declaration that names nobody.
func MissingUser() []string {
	return []string{"rolling 2d6", "(", "3", "+", "5", ")+8", "=8"}
}

// ShortRoll declares 2d6 but only one face appears.
func ShortRoll() []string {
	return []string{"Alice:rolling 2d6", "(", "3", ")+3", "=3"}
}
