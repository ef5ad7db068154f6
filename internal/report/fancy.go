package report

import (
	"fmt"
	"strings"

	"github.com/berth-dev/rollcall/internal/stats"
	"github.com/berth-dev/rollcall/internal/ui"
)

// splitBarWidth is the width of the lower/upper half bars.
const splitBarWidth = 20

// FormatFancy renders the same layout as FormatPlain with terminal styling
// and a bar for the lower half share.
func FormatFancy(r *Report, opts Options) string {
	opts = withDefaults(opts)
	var b strings.Builder

	separator := ui.DimStyle.Render(strings.Repeat(opts.Separator, opts.SeparatorWidth))

	for _, s := range r.Sections {
		fmt.Fprintf(&b, "\n %s\n", separator)

		fmt.Fprintf(&b, "\n%s\n", ui.HeaderStyle.Render("For "+r.Reference))
		b.WriteString(formatFancyHistogram(s.Reference, opts.Marker))

		fmt.Fprintf(&b, "\n%s\n", ui.HeaderStyle.Render("For Everyone Else"))
		b.WriteString(formatFancyHistogram(s.Others, opts.Marker))

		fmt.Fprintf(&b, "\n%s\n", ui.HeaderStyle.Render("Everyone combined"))
		b.WriteString(formatFancyHistogram(s.Combined, opts.Marker))
	}
	fmt.Fprintf(&b, "\n %s\n", separator)

	fmt.Fprintf(&b, "\n%s\n", ui.DimStyle.Render(fmt.Sprintf("%d rolls, %d dice", r.Rolls, r.Dice)))

	return b.String()
}

func formatFancyHistogram(h stats.Histogram, marker string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		ui.TitleStyle.Render(fmt.Sprintf("d%d", h.DieSize)),
		ui.DimStyle.Render(fmt.Sprintf("(total rolls: %d)", h.Total)))
	if h.Empty() {
		return b.String()
	}

	for face := 1; face <= h.DieSize; face++ {
		pct := "(" + Percent(h.Fraction(face)) + ")"
		bar := ui.BarStyle.Render(strings.Repeat(marker, h.Count(face)))
		fmt.Fprintf(&b, "\t%3d %10s: %s\n", face, pct, bar)
	}

	fmt.Fprintf(&b, "%s %s %s\n",
		ui.SplitBar(h.LowerFraction(), splitBarWidth),
		fmt.Sprintf("1 to %d rolls:", h.Half()),
		Percent(h.LowerFraction()))
	fmt.Fprintf(&b, "%s %s %s\n",
		ui.SplitBar(h.UpperFraction(), splitBarWidth),
		fmt.Sprintf("%d to %d rolls:", h.Half()+1, h.DieSize),
		Percent(h.UpperFraction()))

	return b.String()
}
