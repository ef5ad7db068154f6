// runs.go implements the "rollcall runs" command for listing archived runs.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

var limitFlag int

func init() {
	runsCmd.Flags().IntVar(&limitFlag, "limit", 20, "Show at most N runs")
}

func runRuns(cmd *cobra.Command, args []string) error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	return listRuns(cmd.OutOrStdout(), projectRoot, limitFlag)
}

// listRuns prints the newest runs, one per line.
func listRuns(w io.Writer, projectRoot string, limit int) error {
	if !storeExists(projectRoot) {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	s, err := openStore(projectRoot)
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-15s  %-12s  %5s  %s\n", "RUN", "REFERENCE", "ROLLS", "TRANSCRIPT")
	for _, r := range list {
		fmt.Fprintf(w, "%-15s  %-12s  %5d  %s\n", r.Dir, r.Reference, r.Records, r.Transcript)
	}
	return nil
}
