package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single ignore-list entry.
const maxLineSize = 1024 * 1024

// ReadIgnoreList reads one literal line per line from r. Entries are
// trimmed; blank entries are dropped.
func ReadIgnoreList(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ignore list: %w", err)
	}
	return lines, nil
}

// LoadIgnoreList reads the ignore list at path. A missing file is returned
// as an error wrapping os.ErrNotExist so callers can decide whether it
// matters.
func LoadIgnoreList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ignore list: %w", err)
	}
	defer f.Close()

	return ReadIgnoreList(f)
}
