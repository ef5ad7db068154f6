// init.go implements the "rollcall init" command.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/berth-dev/rollcall/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .rollcall/config.yaml",
	Long: `Create the .rollcall/ directory with a default config.yaml. Edit it to
change the reference player, the ignore rules or the report layout.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	return initProject(cmd.OutOrStdout(), dir, forceFlag)
}

func initProject(w io.Writer, dir string, force bool) error {
	path := config.Path(dir)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteConfig(dir, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
