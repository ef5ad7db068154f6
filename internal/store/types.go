// Package store provides SQLite-backed persistence for archived runs.
package store

import "time"

// Run is one archived analysis of a transcript.
type Run struct {
	ID         string
	Dir        string // run directory name under .rollcall/runs
	Transcript string
	Reference  string
	Records    int
	CreatedAt  time.Time
}
