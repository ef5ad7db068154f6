// analyze.go implements the "rollcall analyze" command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/berth-dev/rollcall/internal/config"
	"github.com/berth-dev/rollcall/internal/log"
	"github.com/berth-dev/rollcall/internal/report"
	"github.com/berth-dev/rollcall/internal/runs"
	"github.com/berth-dev/rollcall/internal/stats"
	"github.com/berth-dev/rollcall/internal/transcript"
	"github.com/berth-dev/rollcall/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <transcript>",
	Short: "Parse a transcript and print roll statistics",
	Long: `Parse a chat transcript, reconstruct every dice roll and print per-die
histograms for the reference player, everyone else, and everyone combined.

Lines starting with the forwarded-message prefix and lines listed in the
exceptions file are skipped. Unless --no-save is given, the report and the
parsed rolls are archived under .rollcall/.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	exceptionsFlag string
	styleFlag      string
	noSaveFlag     bool
)

func init() {
	analyzeCmd.Flags().StringVar(&exceptionsFlag, "exceptions", "", "Ignore-list file, one literal line per line (default from config)")
	analyzeCmd.Flags().StringVar(&styleFlag, "style", "", "Report style: plain or fancy (default from config)")
	analyzeCmd.Flags().BoolVar(&noSaveFlag, "no-save", false, "Print the report without archiving the run")
}

// analysis describes one analyze invocation.
type analysis struct {
	root       string
	transcript string
	cfg        *config.Config

	// exceptionsRequired makes a missing ignore list fatal.
	exceptionsRequired bool
	save               bool
	now                time.Time

	// styledHints renders stderr hints with ui.WarningStyle.
	styledHints bool

	stdout io.Writer
	stderr io.Writer
}

// analysisResult is what a successful analysis produced.
type analysisResult struct {
	records []transcript.Record
	report  *report.Report
	runDir  string // empty when not archived
	runID   string
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := loadSettings(cmd, projectRoot)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("exceptions") {
		cfg.Parser.ExceptionsFile = exceptionsFlag
	}
	if flags.Changed("style") {
		cfg.Report.Style = styleFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	cfg.Report.Style = resolveStyle(cfg.Report.Style, ui.IsTTY())

	_, err = analyze(analysis{
		root:               projectRoot,
		transcript:         args[0],
		cfg:                cfg,
		exceptionsRequired: flags.Changed("exceptions"),
		save:               !noSaveFlag,
		now:                time.Now(),
		styledHints:        ui.IsTerminal(os.Stderr),
		stdout:             cmd.OutOrStdout(),
		stderr:             cmd.ErrOrStderr(),
	})
	return err
}

// resolveStyle downgrades the fancy style to plain when output is not a
// terminal.
func resolveStyle(style string, tty bool) string {
	if style == report.StyleFancy && !tty {
		return report.StylePlain
	}
	return style
}

func analyze(a analysis) (*analysisResult, error) {
	cfg := a.cfg
	logger := diagnostics(cfg.Verbose, a.stderr)
	start := time.Now()

	var events *log.Logger
	if a.save {
		var err error
		events, err = log.NewLogger(a.root)
		if err != nil {
			return nil, err
		}
		appendEvent(events, logger, log.LogEvent{
			Event:      log.EventAnalysisStarted,
			Transcript: a.transcript,
			Reference:  cfg.Reference,
		})
	}

	ignore, err := loadExceptions(a.root, cfg.Parser.ExceptionsFile, a.exceptionsRequired, logger)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(a.transcript)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	p := transcript.NewParser(
		transcript.WithLogger(logger),
		transcript.WithIgnorePrefix(cfg.Parser.IgnorePrefix),
		transcript.WithIgnoreList(ignore),
		transcript.WithStaleLineLimit(cfg.Parser.StaleLineLimit),
	)

	var records []transcript.Record
	for rec, err := range p.Parse(f) {
		if err != nil {
			if events != nil {
				failed := log.LogEvent{
					Event:      log.EventAnalysisFailed,
					Transcript: a.transcript,
					Error:      err.Error(),
				}
				var perr *transcript.Error
				if errors.As(err, &perr) {
					failed.Kind = string(perr.Kind)
					failed.LineNum = perr.LineNum
				}
				appendEvent(events, logger, failed)
			}
			return nil, err
		}
		records = append(records, rec)

		if events != nil && cfg.Verbose {
			appendEvent(events, logger, log.LogEvent{
				Event:   log.EventRollCommitted,
				User:    rec.User,
				DieSize: rec.DieSize,
				Dice:    rec.DieCount(),
				LineNum: rec.TotalAt,
			})
		}
	}

	logger.Debug().
		Int("lines", p.LineNum()).
		Int("rolls", len(records)).
		Str("last_user", p.LastUser()).
		Msg("transcript parsed")

	table := stats.Aggregate(records)
	r := report.Build(table, cfg.Reference)
	opts := reportOptions(cfg)

	if err := report.Write(a.stdout, r, opts); err != nil {
		return nil, err
	}
	if r.Suggestion != "" {
		hint := fmt.Sprintf("%q never rolled. Did you mean %q? (--reference)", cfg.Reference, r.Suggestion)
		if a.styledHints {
			hint = ui.WarningStyle.Render(hint)
		}
		fmt.Fprintln(a.stderr, hint)
	}

	result := &analysisResult{records: records, report: r}
	if !a.save {
		return result, nil
	}

	runDir, runID, err := archive(a, r, opts, records)
	if err != nil {
		return nil, err
	}
	result.runDir = runDir
	result.runID = runID

	appendEvent(events, logger, log.LogEvent{
		Event:      log.EventAnalysisComplete,
		RunID:      runID,
		Transcript: a.transcript,
		Reference:  cfg.Reference,
		Rolls:      r.Rolls,
		Dice:       r.Dice,
		Lines:      p.LineNum(),
		DurationMs: time.Since(start).Milliseconds(),
	})

	return result, nil
}

// archive stores the plain report and the parsed records for later
// "report" and "runs" calls.
func archive(a analysis, r *report.Report, opts report.Options, records []transcript.Record) (string, string, error) {
	runsDir := runs.Dir(a.root)
	name, err := runs.Create(runsDir, a.now)
	if err != nil {
		return "", "", err
	}

	opts.Style = report.StylePlain
	if err := report.WriteReport(filepath.Join(runsDir, name), report.Format(r, opts)); err != nil {
		return "", "", err
	}

	s, err := openStore(a.root)
	if err != nil {
		return "", "", err
	}
	defer s.Close()

	run, err := s.CreateRun(name, a.transcript, a.cfg.Reference, records)
	if err != nil {
		return "", "", fmt.Errorf("saving run: %w", err)
	}

	return name, run.ID, nil
}

// loadExceptions reads the ignore list. A missing file is only an error
// when the user named it explicitly.
func loadExceptions(root, path string, required bool, logger zerolog.Logger) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	lines, err := transcript.LoadIgnoreList(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			logger.Debug().Str("path", path).Msg("no exceptions file, nothing extra to ignore")
			return nil, nil
		}
		return nil, err
	}
	return lines, nil
}

func reportOptions(cfg *config.Config) report.Options {
	return report.Options{
		Style:          cfg.Report.Style,
		Marker:         cfg.Report.Marker,
		Separator:      cfg.Report.Separator,
		SeparatorWidth: cfg.Report.SeparatorWidth,
	}
}

// appendEvent writes to the event log. Failures are reported as
// diagnostics and never fail the command.
func appendEvent(events *log.Logger, logger zerolog.Logger, e log.LogEvent) {
	if err := events.Append(e); err != nil {
		logger.Warn().Err(err).Str("event", e.Event).Msg("could not write event log")
	}
}
