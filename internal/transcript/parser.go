// parser.go implements the line-classification state machine.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// maxPrealloc caps the face buffer reserved from a declared die count.
const maxPrealloc = 64

// inProgress accumulates the faces of the roll being collected.
type inProgress struct {
	user       string
	dieCount   int
	dieSize    int
	faces      []int
	declaredAt int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for diagnostics about dropped lines and
// abandoned rolls. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithIgnoreList adds lines that are skipped when matched exactly after
// trimming.
func WithIgnoreList(lines []string) Option {
	return func(p *Parser) {
		for _, l := range lines {
			p.ignore[strings.TrimSpace(l)] = struct{}{}
		}
	}
}

// WithIgnorePrefix replaces DefaultIgnorePrefix. An empty prefix disables
// prefix skipping.
func WithIgnorePrefix(prefix string) Option {
	return func(p *Parser) {
		p.ignorePrefix = prefix
	}
}

// WithStaleLineLimit abandons a roll waiting for its round total after n
// consecutive unrecognized lines. Zero keeps it until the next declaration
// or end of input.
func WithStaleLineLimit(n int) Option {
	return func(p *Parser) {
		p.staleLimit = n
	}
}

// Parser turns transcript lines into Records. It is not safe for
// concurrent use; one Parser reads one transcript.
type Parser struct {
	logger       zerolog.Logger
	ignorePrefix string
	ignore       map[string]struct{}
	staleLimit   int

	state    State
	lastUser string
	current  *inProgress
	lineNum  int
	stale    int
}

// NewParser creates a Parser in the scanning state.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger:       zerolog.Nop(),
		ignorePrefix: DefaultIgnorePrefix,
		ignore:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state.
func (p *Parser) State() State {
	return p.state
}

// LastUser returns the user of the most recently committed roll.
func (p *Parser) LastUser() string {
	return p.lastUser
}

// LineNum returns the number of lines consumed so far.
func (p *Parser) LineNum() int {
	return p.lineNum
}

// rule pairs a line predicate with its handler. Rules are tried in order
// and the first match wins.
type rule struct {
	name   string
	match  func(p *Parser, line string) bool
	handle func(p *Parser, line string) (Record, bool, error)
}

var rules = []rule{
	{name: "ignorable", match: (*Parser).isIgnorable, handle: skip},
	{name: "declaration", match: containsKeyword, handle: (*Parser).declare},
	{name: "filler", match: collecting(isFiller), handle: skip},
	{name: "face", match: collecting(faceRe.MatchString), handle: (*Parser).collectFace},
	{name: "roll_ends", match: collecting(rollEndsRe.MatchString), handle: (*Parser).endCollection},
	{name: "double_termination", match: collecting(roundTotalRe.MatchString), handle: (*Parser).doubleTermination},
	{name: "round_total", match: awaitingTotal(roundTotalRe.MatchString), handle: (*Parser).commit},
}

// Step consumes one raw line. It returns a Record and true when the line
// completes a roll. A non-nil error is fatal; the Parser must not be used
// afterwards.
func (p *Parser) Step(raw string) (Record, bool, error) {
	p.lineNum++
	line := strings.TrimSpace(raw)

	for _, r := range rules {
		if r.match(p, line) {
			if r.name != "ignorable" {
				p.stale = 0
			}
			return r.handle(p, line)
		}
	}

	p.unrecognized(line)
	return Record{}, false, nil
}

// ParseLines yields a Record for every completed roll in lines. Iteration
// stops after the first error, which is yielded with a zero Record.
func (p *Parser) ParseLines(lines iter.Seq[string]) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for line := range lines {
			rec, ok, err := p.Step(line)
			if err != nil {
				yield(Record{}, err)
				return
			}
			if ok && !yield(rec, nil) {
				return
			}
		}
		p.finish()
	}
}

// Parse reads r line by line and yields completed Records, like ParseLines.
// Lines of any length are accepted. Read errors are yielded and end the
// sequence.
func (p *Parser) Parse(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		br := bufio.NewReader(r)

		for {
			line, readErr := br.ReadString('\n')
			if line != "" {
				rec, ok, err := p.Step(line)
				if err != nil {
					yield(Record{}, err)
					return
				}
				if ok && !yield(rec, nil) {
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				yield(Record{}, fmt.Errorf("read transcript line %d: %w", p.lineNum+1, readErr))
				return
			}
		}
		p.finish()
	}
}

// ParseAll reads every Record from r.
func ParseAll(r io.Reader, opts ...Option) ([]Record, error) {
	var records []Record
	for rec, err := range NewParser(opts...).Parse(r) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// finish drops a roll still open at end of input.
func (p *Parser) finish() {
	if p.current == nil {
		return
	}
	p.logger.Debug().
		Str("user", p.current.user).
		Int("declared_at", p.current.declaredAt).
		Str("state", p.state.String()).
		Msg("discarding unfinished roll at end of input")
	p.current = nil
	p.state = StateScanning
}

func (p *Parser) isIgnorable(line string) bool {
	if p.ignorePrefix != "" && strings.HasPrefix(line, p.ignorePrefix) {
		return true
	}
	_, ok := p.ignore[line]
	return ok
}

func containsKeyword(_ *Parser, line string) bool {
	return strings.Contains(line, Keyword)
}

func isFiller(line string) bool {
	return line == "(" || line == "+"
}

func collecting(match func(string) bool) func(*Parser, string) bool {
	return func(p *Parser, line string) bool {
		return p.state == StateCollecting && match(line)
	}
}

// awaitingTotal matches only while a terminated roll is open. A round
// total with nothing to commit is noise.
func awaitingTotal(match func(string) bool) func(*Parser, string) bool {
	return func(p *Parser, line string) bool {
		return p.state == StateAwaitingTotal && match(line)
	}
}

func skip(_ *Parser, _ string) (Record, bool, error) {
	return Record{}, false, nil
}

func (p *Parser) declare(line string) (Record, bool, error) {
	d, ok := ParseDeclaration(line)
	if !ok {
		return Record{}, false, newError(KindMalformedDeclaration, line, p.lineNum, "")
	}

	user := d.User
	if user == "" {
		if p.lastUser == "" {
			return Record{}, false, newError(KindMissingActingUser, line, p.lineNum, "")
		}
		user = p.lastUser
	}

	if p.current != nil {
		p.logger.Warn().
			Str("user", p.current.user).
			Int("declared_at", p.current.declaredAt).
			Int("line_num", p.lineNum).
			Msg("new declaration replaces unfinished roll")
	}

	p.current = &inProgress{
		user:       user,
		dieCount:   d.DieCount,
		dieSize:    d.DieSize,
		faces:      make([]int, 0, min(d.DieCount, maxPrealloc)),
		declaredAt: p.lineNum,
	}
	p.state = StateCollecting
	return Record{}, false, nil
}

func (p *Parser) collectFace(line string) (Record, bool, error) {
	face, err := strconv.Atoi(line)
	if err != nil {
		// Digits only, so the value overflowed.
		p.unrecognized(line)
		return Record{}, false, nil
	}
	p.current.faces = append(p.current.faces, face)
	return Record{}, false, nil
}

func (p *Parser) endCollection(_ string) (Record, bool, error) {
	p.state = StateAwaitingTotal
	return Record{}, false, nil
}

func (p *Parser) doubleTermination(line string) (Record, bool, error) {
	return Record{}, false, newError(KindUnexpectedDoubleTermination, line, p.lineNum, "")
}

func (p *Parser) commit(line string) (Record, bool, error) {
	cur := p.current
	if len(cur.faces) != cur.dieCount {
		detail := fmt.Sprintf("declared %dd%d at line %d, collected %d", cur.dieCount, cur.dieSize, cur.declaredAt, len(cur.faces))
		return Record{}, false, newError(KindFaceCountMismatch, line, p.lineNum, detail)
	}

	rec := Record{
		User:       cur.user,
		DieSize:    cur.dieSize,
		Faces:      cur.faces,
		DeclaredAt: cur.declaredAt,
		TotalAt:    p.lineNum,
	}

	p.lastUser = cur.user
	p.current = nil
	p.state = StateScanning
	return rec, true, nil
}

func (p *Parser) unrecognized(line string) {
	p.logger.Warn().
		Str("kind", string(KindUnrecognizedLine)).
		Int("line_num", p.lineNum).
		Str("line", line).
		Str("state", p.state.String()).
		Msg("unknown step, side stepping")

	if p.state != StateAwaitingTotal || p.staleLimit <= 0 {
		return
	}

	p.stale++
	if p.stale < p.staleLimit {
		return
	}

	p.logger.Warn().
		Str("user", p.current.user).
		Int("declared_at", p.current.declaredAt).
		Int("stale_lines", p.stale).
		Msg("abandoning roll that never reached a round total")
	p.current = nil
	p.state = StateScanning
	p.stale = 0
}
