package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdzig/oopz/internal/pipeline"
)

func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}

// collectManifests expands a path argument into manifest paths: the
// path itself for a file, every *.toml below it for a directory.
func collectManifests(path string) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return []string{path}, nil
	}
	paths, err := pipeline.ListManifests(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list manifests: %w", err)
	}
	return paths, nil
}

// silentFailure suppresses cobra usage output once diagnostics have
// already been printed.
func silentFailure(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
