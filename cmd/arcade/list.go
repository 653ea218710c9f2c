package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game and the ways to play it.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	fmt.Println("Available games:")
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tTitle")
	fmt.Fprintln(tw, "  --\t-----")
	for _, g := range games {
		fmt.Fprintf(tw, "  %s\t%s\n", g.ID, g.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Play in the terminal:  arcade play <id>")
	fmt.Println("Play in a window:      arcade window [--strict]")
	fmt.Println("Serve to browsers:     arcade web --addr :8080")
	return nil
}
