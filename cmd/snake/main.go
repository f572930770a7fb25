// snake is a terminal, SSH and browser snake game.
//
// Usage:
//
//	snake play               - Play in this terminal
//	snake serve              - Start the browser server
//	snake ssh                - Start SSH server for remote play
//	snake highscore show     - Print the stored best score
//	snake highscore reset    - Clear the stored best score
//	snake backends           - List best-score backends
//
// Global flags:
//
//	--config <path> - Path to config YAML
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--backend <name> - Best-score backend (sqlite, redis, postgres, memory)
//	--db <path>     - Set sqlite database path (default: ~/.snake/snake.db)
//	--ephemeral     - Keep the best score in memory only
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagSeed      int64
	flagBackend   string
	flagDBPath    string
	flagEphemeral bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - play snake in your terminal, over SSH or in a browser",
	Long: `Snake is the classic game on a 20x20 board. Eat food to grow and
speed up; hitting a wall or yourself ends the run.

Available commands:
  play       - Play in this terminal
  serve      - Start the browser server
  ssh        - Start the SSH server
  highscore  - Show or reset the best score
  backends   - List best-score backends

Examples:
  snake play
  snake play --seed 42
  snake serve --addr :8080
  snake ssh --addr :2222
  snake highscore reset --backend redis`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Best-score backend: sqlite, redis, postgres, memory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sqlite database (default ~/.snake/snake.db)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep the best score in memory only")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(highscoreCmd)
	rootCmd.AddCommand(backendsCmd)
}

// loadConfig loads the config file and applies the global flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend = flagBackend
	}
	if flags.Changed("db") {
		cfg.Storage.SQLite.Path = flagDBPath
	}
	if flagEphemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	return cfg, nil
}

// setup loads config and builds the logger and best-score store.
// An unavailable store degrades to memory.
func setup(cmd *cobra.Command, prefix string) (config.Config, *log.Logger, *storage.HighScores) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fatal(err)
	}

	logger := logging.New(cfg.Log, prefix)
	scores := storage.OpenOrMemory(context.Background(), cfg.Storage, logger)
	return cfg, logger, scores
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
