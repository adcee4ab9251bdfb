package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in blockfall.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'blockfall play --game <id>' to play a game.")
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default sprint configuration",
	Long: `Prints the built-in sprint configuration as YAML. Save it to
~/.blockfall/configs/sprint.yaml and edit it to customize.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.OutOrStdout().Write(config.DefaultYAML()) //nolint:errcheck // Best-effort print
	},
}
