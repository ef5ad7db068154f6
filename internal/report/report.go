// Package report renders per-die roll frequency reports.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/berth-dev/rollcall/internal/stats"
)

// FileName is the archived report inside a run directory.
const FileName = "report.txt"

// Report style names.
const (
	StylePlain = "plain"
	StyleFancy = "fancy"
)

// Options controls report rendering.
type Options struct {
	Style          string // StylePlain or StyleFancy
	Marker         string // bar glyph, one per roll
	Separator      string // glyph repeated between die sizes
	SeparatorWidth int
}

// DefaultOptions returns the plain layout.
func DefaultOptions() Options {
	return Options{
		Style:          StylePlain,
		Marker:         "x",
		Separator:      "\U0001F3B2",
		SeparatorWidth: 25,
	}
}

// Section holds the three histograms for one die size.
type Section struct {
	DieSize   int
	Reference stats.Histogram // reference participant only
	Others    stats.Histogram // everyone else combined
	Combined  stats.Histogram // everyone
}

// Report holds everything needed to render a transcript's statistics.
type Report struct {
	Reference string
	Sections  []Section // first-seen die size order
	Rolls     int
	Dice      int

	// Suggestion is set when Reference never rolled and a similar user did.
	Suggestion string
}

// Build computes the histograms for every die size in t.
func Build(t *stats.Table, reference string) *Report {
	r := &Report{
		Reference: reference,
		Rolls:     t.Rolls(),
		Dice:      t.Dice(),
	}

	for _, size := range t.DieSizes() {
		ref, others := t.Split(size, reference)
		combined := make([]int, 0, len(ref)+len(others))
		combined = append(combined, others...)
		combined = append(combined, ref...)

		r.Sections = append(r.Sections, Section{
			DieSize:   size,
			Reference: stats.NewHistogram(ref, size),
			Others:    stats.NewHistogram(others, size),
			Combined:  stats.NewHistogram(combined, size),
		})
	}

	if s, ok := t.SuggestUser(reference); ok {
		r.Suggestion = s
	}

	return r
}

// Format renders r in the style named by opts.
func Format(r *Report, opts Options) string {
	opts = withDefaults(opts)
	if opts.Style == StyleFancy {
		return FormatFancy(r, opts)
	}
	return FormatPlain(r, opts)
}

// Write renders r to w.
func Write(w io.Writer, r *Report, opts Options) error {
	if _, err := io.WriteString(w, Format(r, opts)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// FormatPlain produces the plain-text report: a separator before each die
// size, the three histograms, and a closing separator.
func FormatPlain(r *Report, opts Options) string {
	opts = withDefaults(opts)
	var b strings.Builder

	for _, s := range r.Sections {
		writeSeparator(&b, opts)

		fmt.Fprintf(&b, "\nFor %s\n", r.Reference)
		b.WriteString(FormatHistogram(s.Reference, opts.Marker))

		b.WriteString("\nFor Everyone Else\n")
		b.WriteString(FormatHistogram(s.Others, opts.Marker))

		b.WriteString("\nEveryone combined\n")
		b.WriteString(FormatHistogram(s.Combined, opts.Marker))
	}
	writeSeparator(&b, opts)

	return b.String()
}

// FormatHistogram renders one histogram. An empty histogram renders only
// its header line.
func FormatHistogram(h stats.Histogram, marker string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "d%d (total rolls: %d)\n", h.DieSize, h.Total)
	if h.Empty() {
		return b.String()
	}

	for face := 1; face <= h.DieSize; face++ {
		fmt.Fprintf(&b, "\t%3d %10s: %s\n", face, "("+Percent(h.Fraction(face))+")", strings.Repeat(marker, h.Count(face)))
	}

	fmt.Fprintf(&b, "1 to %d rolls: %s\n", h.Half(), Percent(h.LowerFraction()))
	fmt.Fprintf(&b, "%d to %d rolls: %s\n", h.Half()+1, h.DieSize, Percent(h.UpperFraction()))

	return b.String()
}

// Percent formats a fraction as a percentage with two decimals.
func Percent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// WriteReport writes the rendered report to {runDir}/report.txt.
// Creates the run directory if it does not exist.
func WriteReport(runDir string, content string) error {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}

	path := filepath.Join(runDir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}

	return nil
}

// ReadReport returns the archived report in runDir.
func ReadReport(runDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(runDir, FileName))
	if err != nil {
		return "", fmt.Errorf("reading report file: %w", err)
	}
	return string(data), nil
}

func writeSeparator(b *strings.Builder, opts Options) {
	fmt.Fprintf(b, "\n %s\n", strings.Repeat(opts.Separator, opts.SeparatorWidth))
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Style == "" {
		opts.Style = def.Style
	}
	if opts.Marker == "" {
		opts.Marker = def.Marker
	}
	if opts.Separator == "" {
		opts.Separator = def.Separator
	}
	if opts.SeparatorWidth <= 0 {
		opts.SeparatorWidth = def.SeparatorWidth
	}
	return opts
}
