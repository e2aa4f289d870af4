// reefrun is an endless side-scrolling runner for the terminal where
// getting hit can be undone by answering a quiz.
//
// Usage:
//
//	reefrun play               - Play interactively (mode and level menus)
//	reefrun modes              - List available modes
//	reefrun serve              - Start SSH server for remote play
//	reefrun questions list     - Show the question bank
//	reefrun questions import   - Load questions from YAML files
//	reefrun snapshot <file>    - Inspect a ctrl+s snapshot dump
//	reefrun config             - Print or check runner config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--questions <path>   - Question bank database (default: in-memory)
//	--config <path>      - Runner config YAML
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/storage"

	// Register modes
	_ "github.com/vovakirdan/reef-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagQuestions string
	flagConfig    string
	flagLogFile   string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reefrun",
	Short: "Reef Runner - dodge, jump and answer your way through the reef",
	Long: `Reef Runner is an endless side-scrolling runner for the terminal.
Jump over blocks and pits, dodge enemies, grab patties, and on medium or
hard answer a quiz to cancel the damage when you get hit.

Available commands:
  play       - Start a run
  modes      - Show all available modes
  serve      - Start SSH server for remote play
  questions  - Manage the quiz question bank
  snapshot   - Inspect a saved snapshot
  config     - Print the default config or check a custom one

Examples:
  reefrun play
  reefrun play --mode reef --level hard
  reefrun serve --ssh :2222
  reefrun questions import ./extra.yaml --questions ~/.reefrun/questions.db`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagQuestions, "questions", storage.MemoryPath, "Path to question bank database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger for a command. Logs go to --log-file when set,
// otherwise to fallback. The returned func closes the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// openBank opens the question bank and seeds the built-in questions into an
// empty bank.
func openBank(ctx context.Context) (*storage.Bank, error) {
	bank, err := storage.Open(flagQuestions)
	if err != nil {
		return nil, err
	}
	if err := bank.Seed(ctx); err != nil {
		bank.Close()
		return nil, err
	}
	return bank, nil
}

// loadConfig loads the runner config, exiting on a bad --config file.
func loadConfig() config.RunnerConfig {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
