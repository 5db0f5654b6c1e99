package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sushi-tower/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every registered game mode.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Fprintln(out, "No game modes available.")
		return
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("MODE", "TITLE", "DESCRIPTION")
	for _, m := range modes {
		t.Row(m.ID, m.Title, m.Description)
	}

	fmt.Fprintln(out, t.String())
	fmt.Fprintln(out, "Run 'sushi play <mode>' to play.")
}
