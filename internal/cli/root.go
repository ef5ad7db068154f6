// Package cli defines Cobra command definitions for the rollcall CLI.
// This file contains the root command, shared flags and settings loading.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/berth-dev/rollcall/internal/config"
	"github.com/berth-dev/rollcall/internal/store"
	"github.com/berth-dev/rollcall/internal/ui"
)

var (
	verbose    bool
	reference  string
	configPath string
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "rollcall",
	Short: "Dice roll statistics from chat transcripts",
	Long: `rollcall reads a tabletop chat transcript, reconstructs every dice roll
(who rolled, what die, which faces came up) and prints per-die frequency
histograms for a reference player, everyone else, and everyone combined.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg := fmt.Sprintf("Error: %v", err)
		if ui.IsTerminal(os.Stderr) {
			msg = ui.ErrorStyle.Render(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log dropped lines and abandoned rolls to stderr")
	rootCmd.PersistentFlags().StringVar(&reference, "reference", "", "Participant reported separately (default from config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default .rollcall/config.yaml)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
}

// loadSettings resolves configuration for a command: defaults, then the
// config file, then ROLLCALL_* variables, then flags the user actually set.
func loadSettings(cmd *cobra.Command, projectRoot string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(projectRoot)
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("reference") {
		cfg.Reference = reference
	}

	return cfg, nil
}

// diagnostics returns the logger for parser warnings. Without verbose
// everything is discarded.
func diagnostics(enabled bool, w io.Writer) zerolog.Logger {
	if !enabled {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(zerolog.DebugLevel)
}

func storePath(projectRoot string) string {
	return filepath.Join(projectRoot, config.Dir, store.FileName)
}

// openStore opens the run database, creating .rollcall/ when needed.
func openStore(projectRoot string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Join(projectRoot, config.Dir), 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	s, err := store.NewStore(storePath(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}
	return s, nil
}

// storeExists reports whether a run database has been created.
func storeExists(projectRoot string) bool {
	_, err := os.Stat(storePath(projectRoot))
	return err == nil
}
