package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdzig/oopz/internal/snapshot"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the snapshot cache",
	Long:  "Remove every cached manifest resolution from the snapshot store.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	store, err := snapshot.Open("oopz")
	if err != nil {
		return fmt.Errorf("failed to open the snapshot cache: %w", err)
	}
	dir := store.Dir()
	if err := store.Clean(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", dir)
	return nil
}
