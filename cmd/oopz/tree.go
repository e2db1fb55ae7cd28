package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdzig/oopz/internal/diag"
	"github.com/gdzig/oopz/internal/diagfmt"
	"github.com/gdzig/oopz/internal/manifest"
	"github.com/gdzig/oopz/internal/ui"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <manifest.toml>",
	Short: "Show the class hierarchy a manifest declares",
	Long:  "Parse and resolve a registry manifest, then draw its class hierarchy with roots first.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().Bool("docs", false, "show class docs next to each node")
	treeCmd.Flags().Int("width", 0, "clip doc columns at this width (0=off)")
}

func runTree(cmd *cobra.Command, args []string) error {
	path := args[0]

	showDocs, err := cmd.Flags().GetBool("docs")
	if err != nil {
		return fmt.Errorf("failed to get docs flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	bag := diag.NewBag(maxDiagnostics)
	resolved := manifest.Resolve(m, diag.BagReporter{Bag: bag})
	bag.Sort()
	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: colored, ShowNotes: true, ShowHints: true})
	}
	if bag.HasErrors() {
		return silentFailure(cmd)
	}

	if !quiet {
		fmt.Fprintf(os.Stdout, "%s (%d classes)\n", m.Package.Name, resolved.Table.Len())
	}
	fmt.Fprint(os.Stdout, ui.RenderTree(resolved.Table, resolved.Order, ui.TreeOpts{
		Color:    colored,
		ShowDocs: showDocs,
		Width:    width,
	}))
	return nil
}
