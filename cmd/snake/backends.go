package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List best-score backends",
	Long:  `Shows the storage backends the best score can be kept in.`,
	Args:  cobra.NoArgs,
	Run:   runBackends,
}

func runBackends(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fatal(err)
	}

	names := registry.List()
	if len(names) == 0 {
		fmt.Println("No backends available.")
		return
	}

	fmt.Println("Available backends:")
	fmt.Println()
	for _, name := range names {
		marker := " "
		if name == cfg.Storage.Backend {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, name)
	}

	fmt.Println()
	fmt.Println("Select one with --backend <name> or storage.backend in the config.")
}
