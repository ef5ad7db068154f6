// records.go implements the "rollcall records" command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/berth-dev/rollcall/internal/config"
	"github.com/berth-dev/rollcall/internal/transcript"
)

var recordsCmd = &cobra.Command{
	Use:   "records <transcript>",
	Short: "Print parsed rolls as JSON lines",
	Long: `Parse a transcript and print one JSON object per completed roll, in
transcript order. Output is streamed; a parse error stops the stream.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecords,
}

func runRecords(cmd *cobra.Command, args []string) error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := loadSettings(cmd, projectRoot)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	_, err = writeRecords(cmd.OutOrStdout(), f, projectRoot, cfg, cmd.ErrOrStderr())
	return err
}

// writeRecords streams every record parsed from r to w and returns how
// many were written.
func writeRecords(w io.Writer, r io.Reader, projectRoot string, cfg *config.Config, stderr io.Writer) (int, error) {
	logger := diagnostics(cfg.Verbose, stderr)

	ignore, err := loadExceptions(projectRoot, cfg.Parser.ExceptionsFile, false, logger)
	if err != nil {
		return 0, err
	}

	p := transcript.NewParser(
		transcript.WithLogger(logger),
		transcript.WithIgnorePrefix(cfg.Parser.IgnorePrefix),
		transcript.WithIgnoreList(ignore),
		transcript.WithStaleLineLimit(cfg.Parser.StaleLineLimit),
	)

	enc := json.NewEncoder(w)
	n := 0
	for rec, err := range p.Parse(r) {
		if err != nil {
			return n, err
		}
		if err := enc.Encode(rec); err != nil {
			return n, fmt.Errorf("encoding record: %w", err)
		}
		n++
	}
	return n, nil
}
