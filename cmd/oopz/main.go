// Package main implements the oopz CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gdzig/oopz/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "oopz",
	Short: "Class registry toolchain",
	Long:  `oopz resolves class-hierarchy manifests, verifies their check batteries, and generates Go declarations`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
