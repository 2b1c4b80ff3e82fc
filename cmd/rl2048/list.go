package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rl2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available policies",
	Long:  `Shows a list of all policies registered for playing episodes.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No policies available.")
		return
	}

	fmt.Println("Available policies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range policies {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'rl2048 play <id>' to play episodes with a policy.")
}
