// Package transcript reconstructs dice-roll events from a chat transcript.
//
// A transcript interleaves roll announcements ("Alice:rolling 2d6"), the
// individual die faces, a roll terminator (")+8") and a round total ("=8")
// with unrelated chatter. Parser walks the lines once, carrying the acting
// user and the roll being collected from line to line, and emits one Record
// per completed roll.
package transcript

import (
	"regexp"
	"strconv"
	"strings"
)

// Keyword marks a line as a roll declaration. A line containing it must
// parse as a Declaration.
const Keyword = "rolling"

// DefaultIgnorePrefix marks quoted or forwarded messages.
const DefaultIgnorePrefix = "(From "

// MaxDieSize is the largest die a declaration may name. Reports print one
// line per face, so larger dice are rejected as malformed.
const MaxDieSize = 10000

var (
	declarationRe = regexp.MustCompile(`^(?P<user>[^:]*):?rolling (?P<count>\d+)?d(?P<size>\d+)`)
	faceRe        = regexp.MustCompile(`^\d+$`)
	rollEndsRe    = regexp.MustCompile(`^\)\+\d+$`)
	roundTotalRe  = regexp.MustCompile(`^=\d+$`)
)

// Declaration is a roll announcement taken from a single line.
type Declaration struct {
	User     string // empty when the line omits it
	DieCount int
	DieSize  int
}

// ParseDeclaration matches line against the declaration pattern.
// The die count defaults to 1. A zero-sided die or one larger than
// MaxDieSize never matches.
func ParseDeclaration(line string) (Declaration, bool) {
	m := declarationRe.FindStringSubmatch(line)
	if m == nil {
		return Declaration{}, false
	}

	d := Declaration{
		User:     strings.TrimSpace(m[declarationRe.SubexpIndex("user")]),
		DieCount: 1,
	}

	if count := m[declarationRe.SubexpIndex("count")]; count != "" {
		n, err := strconv.Atoi(count)
		if err != nil {
			return Declaration{}, false
		}
		d.DieCount = n
	}

	size, err := strconv.Atoi(m[declarationRe.SubexpIndex("size")])
	if err != nil || size < 1 || size > MaxDieSize {
		return Declaration{}, false
	}
	d.DieSize = size

	return d, true
}

// Record is one completed roll.
type Record struct {
	User    string `json:"user"`
	DieSize int    `json:"die_size"`
	Faces   []int  `json:"faces"`

	// DeclaredAt and TotalAt are the 1-based line numbers of the
	// declaration and round-total lines.
	DeclaredAt int `json:"declared_at,omitempty"`
	TotalAt    int `json:"total_at,omitempty"`
}

// DieCount is the number of dice rolled.
func (r Record) DieCount() int {
	return len(r.Faces)
}

// Sum adds up the faces.
func (r Record) Sum() int {
	total := 0
	for _, f := range r.Faces {
		total += f
	}
	return total
}

// State is the parser's position within a roll.
type State int

const (
	StateScanning      State = iota // between rolls
	StateCollecting                 // reading face values
	StateAwaitingTotal              // terminator seen, waiting for "=N"
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateCollecting:
		return "collecting"
	case StateAwaitingTotal:
		return "awaiting_total"
	default:
		return "unknown"
	}
}
