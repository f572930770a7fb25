package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a snake game in this terminal.

Controls:
  Arrows/WASD  - Steer
  Space/Enter  - Start (again after game over)
  X            - End the current run
  Ctrl+R       - Reset the best score
  Q/Ctrl+C     - Quit

The direction pad to the right of the board can be clicked with the mouse.

Examples:
  snake play
  snake play --seed 42
  snake play --ephemeral`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, logger, scores := setup(cmd, "play")
	defer scores.Close()

	// Bubble Tea owns the terminal from here on
	scores.SetLogger(logging.Discard())

	// Get terminal size early; the model re-checks on resize
	rc := core.DefaultRuntimeConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	engine := snake.New(snake.Options{
		Seed:      cfg.Seed,
		HighScore: scores.Load(context.Background()),
		Store:     scores,
		Speed:     cfg.Speed,
	})

	runErr := tui.Run(engine, rc)
	if runErr != nil {
		logger.Error("game failed", "err", runErr)
		scores.Close()
		fatal(runErr)
	}
}
