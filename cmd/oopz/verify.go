package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdzig/oopz/internal/diag"
	"github.com/gdzig/oopz/internal/diagfmt"
	"github.com/gdzig/oopz/internal/pipeline"
	"github.com/gdzig/oopz/internal/snapshot"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] <manifest.toml|directory>",
	Short: "Resolve manifests and run their check batteries",
	Long:  "Resolve one manifest or every *.toml below a directory, run the [[check]] battery, and report diagnostics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	verifyCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	verifyCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	verifyCmd.Flags().Bool("with-hints", false, "include correction hints in output")
	verifyCmd.Flags().Bool("snapshot", false, "reuse cached resolutions for unchanged manifests")
	verifyCmd.Flags().String("ui", "auto", "progress ui (auto|on|off)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	withHints, err := cmd.Flags().GetBool("with-hints")
	if err != nil {
		return fmt.Errorf("failed to get with-hints flag: %w", err)
	}
	useSnapshot, err := cmd.Flags().GetBool("snapshot")
	if err != nil {
		return fmt.Errorf("failed to get snapshot flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	paths, err := collectManifests(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		if !quiet {
			fmt.Fprintln(os.Stdout, "no manifests found")
		}
		return nil
	}

	opts := pipeline.Options{Jobs: jobs, MaxDiagnostics: maxDiagnostics}
	if useSnapshot {
		store, storeErr := snapshot.Open("oopz")
		if storeErr != nil {
			return fmt.Errorf("failed to open the snapshot cache: %w", storeErr)
		}
		opts.Store = store
	}

	useTUI := shouldUseTUI(uiModeValue) && format == "pretty" && !quiet
	var res *pipeline.RunResult
	if useTUI {
		res, err = runPipelineWithUI(cmd.Context(), "oopz verify", paths, opts)
	} else {
		res, err = pipeline.Run(cmd.Context(), paths, opts)
	}
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}

	bag := res.Diagnostics()
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, diagfmt.PrettyOpts{
			Color:     colored,
			ShowNotes: withNotes,
			ShowHints: withHints,
		})
	case "short":
		output := diag.FormatGoldenDiagnostics(bag.Items(), withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{IncludeNotes: withNotes, IncludeHints: withHints}
		if err := diagfmt.JSON(os.Stdout, bag, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if showTimings {
		printRunTimings(os.Stdout, res)
	}
	if !quiet && format == "pretty" {
		ran, failed := res.Checks()
		fmt.Fprintf(os.Stdout, "%d manifests, %d checks run, %d failed: %s\n",
			len(res.Results), ran, failed, diagfmt.Summary(bag))
	}

	if res.HasErrors() {
		return silentFailure(cmd)
	}
	return nil
}
