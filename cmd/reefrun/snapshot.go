package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reef-runner/internal/platform/tui"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <file>",
	Short: "Inspect a snapshot saved with ctrl+s",
	Long: `Decode a msgpack snapshot written during play and print the state
of the session at that tick.

Example:
  reefrun snapshot ~/.reefrun/snapshots/1f0c2a3b_20260101_120000_t4210.msgpack`,
	Args: cobra.ExactArgs(1),
	Run:  runSnapshot,
}

func runSnapshot(_ *cobra.Command, args []string) {
	snap, err := tui.LoadSnapshot(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tick %d  %s  (%s, %s, scene %s)\n", snap.Tick, snap.Phase, snap.Mode, snap.Level, snap.Scene)
	fmt.Printf("  Score %d  Lives %d  Paused %t\n", snap.Score, snap.Lives, snap.Paused)
	fmt.Printf("  Speed x%.2f  Tier %d  Scene boost %.1f  Scroll %.2f\n",
		snap.Multiplier, snap.Tier, snap.SceneBoost, snap.ScrollSpeed)

	pl := snap.Player
	fmt.Printf("  Player at (%.0f, %.0f) vy %.2f  jumps %d  invulnerable %d\n",
		pl.X, pl.Y, pl.VY, pl.JumpCount, pl.Invulnerable)
	if snap.PowerUp != "" {
		fmt.Printf("  Power-up %s (%.0f%% left)\n", snap.PowerUp, snap.PowerUpFraction*100)
	}

	kinds := make(map[string]int)
	for _, o := range snap.Obstacles {
		kinds[o.Kind]++
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Printf("  Obstacles %d:", len(snap.Obstacles))
	for _, k := range names {
		fmt.Printf(" %s=%d", k, kinds[k])
	}
	fmt.Println()
	fmt.Printf("  Projectiles %d  Pickups %d  Decorations %d\n",
		len(snap.Projectiles), len(snap.Collectibles), len(snap.Decorations))

	if q := snap.Quiz; q != nil {
		fmt.Printf("  Quiz (%s): %s\n", q.Kind, q.Prompt)
		for i, c := range q.Choices {
			fmt.Printf("    %d) %s\n", i+1, c)
		}
		if q.Timed {
			fmt.Printf("    %ds left (%s)\n", q.SecondsLeft, q.Band)
		}
	}
}
