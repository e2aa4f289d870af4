package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reef-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default runner config, or check the one given by --config",
	Long: `Without --config, print the built-in runner config. Save it, edit it and
pass it back with --config to tune the field, physics, spawns and levels.

With --config, load and validate that file and report the level tuning.

Examples:
  reefrun config > runner.yaml
  reefrun config --config runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfig == "" {
		os.Stdout.Write(config.DefaultRunnerYAML())
		return
	}

	cfg := loadConfig()
	fmt.Printf("%s: ok\n\n", flagConfig)
	fmt.Printf("  %-8s  %-6s  %-6s  %s\n", "Level", "Speed", "Quiz", "Bonus life every")
	fmt.Printf("  %-8s  %-6s  %-6s  %s\n", "-----", "-----", "----", "----------------")
	for _, l := range config.Levels {
		lc := cfg.Levels.For(l)
		quiz := "-"
		if l.GatesDamage() {
			quiz = fmt.Sprintf("%ds", lc.QuizSeconds)
		}
		fmt.Printf("  %-8s  x%-5.1f  %-6s  %d\n", l.Title(), lc.SpeedScale, quiz, lc.BonusLifeEvery)
	}
}
