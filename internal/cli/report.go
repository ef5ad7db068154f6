// report.go implements the "rollcall report" command for showing archived runs.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/berth-dev/rollcall/internal/config"
	"github.com/berth-dev/rollcall/internal/report"
	"github.com/berth-dev/rollcall/internal/runs"
	"github.com/berth-dev/rollcall/internal/stats"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show an archived report",
	Long: `Print the report of the most recent archived run, or of the run named
with --run. When the archived report file is missing it is rebuilt from the
rolls stored for that run.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var runFlag string

func init() {
	reportCmd.Flags().StringVar(&runFlag, "run", "", "Run directory name, e.g. 20260412-201500 (default latest)")
}

func runReport(cmd *cobra.Command, args []string) error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := loadSettings(cmd, projectRoot)
	if err != nil {
		return err
	}

	return showReport(cmd.OutOrStdout(), projectRoot, runFlag, cfg)
}

// showReport prints the archived report of run, or of the latest run when
// run is empty.
func showReport(w io.Writer, projectRoot, run string, cfg *config.Config) error {
	runsDir := runs.Dir(projectRoot)
	if run == "" {
		latest, err := runs.Latest(runsDir)
		if err != nil {
			return err
		}
		run = latest
	}
	runDir := filepath.Join(runsDir, run)

	content, err := report.ReadReport(runDir)
	if err == nil {
		_, err = io.WriteString(w, content)
		return err
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	content, err = rebuildReport(projectRoot, run, cfg)
	if err != nil {
		return err
	}
	if err := report.WriteReport(runDir, content); err != nil {
		return err
	}

	_, err = io.WriteString(w, content)
	return err
}

// rebuildReport renders a run's report from its stored records.
func rebuildReport(projectRoot, run string, cfg *config.Config) (string, error) {
	if !storeExists(projectRoot) {
		return "", fmt.Errorf("run %s has no report and no stored rolls", run)
	}

	s, err := openStore(projectRoot)
	if err != nil {
		return "", err
	}
	defer s.Close()

	stored, err := s.GetRunByDir(run)
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", fmt.Errorf("run %s has no report and no stored rolls", run)
	}

	records, err := s.Records(stored.ID)
	if err != nil {
		return "", err
	}

	opts := reportOptions(cfg)
	opts.Style = report.StylePlain
	r := report.Build(stats.Aggregate(records), stored.Reference)
	return report.Format(r, opts), nil
}
