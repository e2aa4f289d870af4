package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/reef-runner/internal/config"
	"github.com/vovakirdan/reef-runner/internal/core"
	"github.com/vovakirdan/reef-runner/internal/platform/tui"
	"github.com/vovakirdan/reef-runner/internal/registry"
)

var (
	flagMode        string
	flagLevel       string
	flagSnapshotDir string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start Reef Runner. Without flags you pick a mode and level from menus.

Controls:
  Space/Up   - Jump (again in the air for a double jump)
  1-4        - Answer the open quiz
  P          - Pause
  Esc/B      - Back to the menu (paused or after game over)
  R          - Restart (after game over)
  Ctrl+S     - Save a snapshot for bug reports
  Q/Ctrl+C   - Quit

Levels:
  easy    - Hits cost a life immediately, bonus life every 10 points
  medium  - Hits open a 10 second quiz, bonus life every 50 points
  hard    - Hits open a 5 second quiz, faster scrolling

Examples:
  reefrun play
  reefrun play --mode abyss
  reefrun play --mode reef --level hard --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Mode ID (skips the mode menu)")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level: easy, medium, hard (needs --mode)")
	playCmd.Flags().StringVar(&flagSnapshotDir, "snapshot-dir", "", "Directory for ctrl+s snapshots (default ~/.reefrun/snapshots)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagMode != "" && !registry.Exists(flagMode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagMode)
		fmt.Fprintln(os.Stderr, "Run 'reefrun modes' to see available modes.")
		os.Exit(1)
	}

	var level config.Level
	if flagLevel != "" {
		if flagMode == "" {
			fmt.Fprintln(os.Stderr, "Error: --level needs --mode")
			os.Exit(1)
		}
		l, err := config.ParseLevel(flagLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		level = l
	}

	runnerCfg := loadConfig()

	// The TUI owns the terminal, so logs are dropped unless --log-file is set
	logger, closeLog, err := newLogger("reefrun", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config: runnerCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Logger:      logger,
		Mode:        flagMode,
		Level:       level,
		SnapshotDir: flagSnapshotDir,
	}

	bank, err := openBank(context.Background())
	if err != nil {
		// Quizzes fall back to arithmetic
		fmt.Fprintf(os.Stderr, "Warning: could not open question bank: %v\n", err)
		logger.Warn("question bank unavailable", "error", err)
	} else {
		defer bank.Close()
		opts.Bank = bank
	}

	summaries, err := tui.Run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
	printSummaries(summaries, flagFPS)
}

// printSummaries prints one block per finished run.
func printSummaries(summaries []tui.Summary, fps int) {
	if len(summaries) == 0 {
		return
	}
	if fps <= 0 {
		fps = 60
	}

	p := message.NewPrinter(language.English)
	best := 0
	for i, s := range summaries {
		p.Printf("Run %d  %s on %s  (%s)\n", i+1, s.Mode, s.Level.Title(), s.RunID)
		p.Printf("  Score:     %d\n", s.Score)
		p.Printf("  Distance:  %d ticks (%.1f s), reached %s\n", s.Ticks, float64(s.Ticks)/float64(fps), s.Scene)
		p.Printf("  Jumps:     %d\n", s.Jumps)
		p.Printf("  Hits:      %d\n", s.Hits)
		if s.Quizzes > 0 {
			p.Printf("  Quizzes:   %d of %d correct\n", s.Correct, s.Quizzes)
		}
		p.Println()
		best = max(best, s.Score)
	}
	if len(summaries) > 1 {
		p.Printf("Best score: %d\n", best)
	}
}
