package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var highscoreCmd = &cobra.Command{
	Use:   "highscore",
	Short: "Show or reset the best score",
	Long: `Inspect the stored best score.

Examples:
  snake highscore show
  snake highscore reset
  snake highscore show --backend redis`,
}

var highscoreShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored best score",
	Args:  cobra.NoArgs,
	Run:   runHighscoreShow,
}

var highscoreResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored best score",
	Args:  cobra.NoArgs,
	Run:   runHighscoreReset,
}

func init() {
	highscoreCmd.AddCommand(highscoreShowCmd)
	highscoreCmd.AddCommand(highscoreResetCmd)
}

func runHighscoreShow(cmd *cobra.Command, _ []string) {
	_, _, scores := setup(cmd, "highscore")
	defer scores.Close()

	best := scores.Load(context.Background())
	fmt.Printf("Best: %d (%s)\n", best, scores.Backend())
	if best == 0 {
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
	}
}

func runHighscoreReset(cmd *cobra.Command, _ []string) {
	_, _, scores := setup(cmd, "highscore")
	defer scores.Close()

	scores.ClearHighScore()
	fmt.Printf("Best score reset (%s)\n", scores.Backend())
}
