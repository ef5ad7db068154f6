// Package stats folds roll records into per-die, per-user face tables and
// computes face histograms.
package stats

import (
	"slices"

	"github.com/berth-dev/rollcall/internal/transcript"
)

// Table maps die size -> user -> faces. Die sizes and users keep the order
// in which they were first seen, which is also the report order.
//
// A Table is built by one goroutine and read after it is complete.
type Table struct {
	sizes []int
	users map[int][]string
	faces map[int]map[string][]int
	rolls int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		users: make(map[int][]string),
		faces: make(map[int]map[string][]int),
	}
}

// Aggregate folds records into a new Table.
func Aggregate(records []transcript.Record) *Table {
	t := NewTable()
	for _, r := range records {
		t.Add(r)
	}
	return t
}

// Add appends the record's faces under its die size and user.
func (t *Table) Add(r transcript.Record) {
	byUser, ok := t.faces[r.DieSize]
	if !ok {
		byUser = make(map[string][]int)
		t.faces[r.DieSize] = byUser
		t.sizes = append(t.sizes, r.DieSize)
	}
	if _, ok := byUser[r.User]; !ok {
		t.users[r.DieSize] = append(t.users[r.DieSize], r.User)
	}
	byUser[r.User] = append(byUser[r.User], r.Faces...)
	t.rolls++
}

// DieSizes returns die sizes in first-seen order.
func (t *Table) DieSizes() []int {
	return slices.Clone(t.sizes)
}

// Users returns the users who rolled dieSize, in first-seen order.
func (t *Table) Users(dieSize int) []string {
	return slices.Clone(t.users[dieSize])
}

// Faces returns a copy of the faces user rolled on dieSize.
func (t *Table) Faces(dieSize int, user string) []int {
	return slices.Clone(t.faces[dieSize][user])
}

// Split partitions the faces rolled on dieSize into the reference user's
// and everyone else's, each in user first-seen order.
func (t *Table) Split(dieSize int, reference string) (ref, others []int) {
	for _, user := range t.users[dieSize] {
		faces := t.faces[dieSize][user]
		if user == reference {
			ref = append(ref, faces...)
		} else {
			others = append(others, faces...)
		}
	}
	return ref, others
}

// Rolls returns the number of records folded in.
func (t *Table) Rolls() int {
	return t.rolls
}

// Dice returns the number of faces across all sizes and users.
func (t *Table) Dice() int {
	n := 0
	for _, byUser := range t.faces {
		for _, faces := range byUser {
			n += len(faces)
		}
	}
	return n
}

// AllUsers returns every user across die sizes, in first-seen order.
func (t *Table) AllUsers() []string {
	var all []string
	for _, size := range t.sizes {
		for _, user := range t.users[size] {
			if !slices.Contains(all, user) {
				all = append(all, user)
			}
		}
	}
	return all
}

// HasUser reports whether user rolled any die.
func (t *Table) HasUser(user string) bool {
	for _, byUser := range t.faces {
		if _, ok := byUser[user]; ok {
			return true
		}
	}
	return false
}
