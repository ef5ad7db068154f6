// clean.go implements the "rollcall clean" command for manual run cleanup.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/berth-dev/rollcall/internal/config"
	"github.com/berth-dev/rollcall/internal/log"
	"github.com/berth-dev/rollcall/internal/runs"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old archived runs",
	Long: `Remove old run directories from .rollcall/runs/ and their stored rolls.

By default, removes runs older than the configured max_age_days (default 30).
Use --keep to keep only the N most recent runs instead.
Use --dry-run to preview what would be removed.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

var (
	keepFlag   int
	dryRunFlag bool
)

func init() {
	cleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N runs (0 = use age-based cleanup)")
	cleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	if _, err := os.Stat(filepath.Join(projectRoot, config.Dir)); os.IsNotExist(err) {
		return fmt.Errorf("%s/ not found. Run 'rollcall analyze' first", config.Dir)
	}

	cfg, err := loadSettings(cmd, projectRoot)
	if err != nil {
		return err
	}

	return clean(cmd.OutOrStdout(), projectRoot, cfg, keepFlag, dryRunFlag, time.Now())
}

func clean(w io.Writer, projectRoot string, cfg *config.Config, keep int, dryRun bool, now time.Time) error {
	runsDir := runs.Dir(projectRoot)

	var pruned []string
	var err error

	if keep > 0 {
		pruned, err = runs.PruneKeepRecent(runsDir, keep, dryRun)
	} else {
		maxAge := cfg.Cleanup.MaxAgeDays
		if maxAge <= 0 {
			maxAge = 30
		}
		pruned, err = runs.PruneByAge(runsDir, maxAge, now, dryRun)
	}

	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if len(pruned) == 0 {
		fmt.Fprintln(w, "No runs to clean up.")
		return nil
	}

	verb := "Removed"
	if dryRun {
		verb = "Would remove"
	}

	for _, name := range pruned {
		fmt.Fprintf(w, "  %s %s\n", verb, name)
	}
	fmt.Fprintf(w, "%s %d run(s).\n", verb, len(pruned))

	if dryRun {
		return nil
	}

	if storeExists(projectRoot) {
		s, err := openStore(projectRoot)
		if err != nil {
			return err
		}
		defer s.Close()
		if _, err := s.DeleteRunsByDir(pruned); err != nil {
			return fmt.Errorf("removing stored rolls: %w", err)
		}
	}

	events, err := log.NewLogger(projectRoot)
	if err != nil {
		return err
	}
	return events.Append(log.LogEvent{Event: log.EventRunsPruned, Pruned: pruned})
}
