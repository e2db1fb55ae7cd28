package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gdzig/oopz/internal/diag"
	"github.com/gdzig/oopz/internal/diagfmt"
	"github.com/gdzig/oopz/internal/gen"
	"github.com/gdzig/oopz/internal/pipeline"
	"github.com/gdzig/oopz/internal/snapshot"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] <manifest.toml|directory>",
	Short: "Generate Go declarations from manifests",
	Long:  "Resolve manifests like verify does, then write classes.gen.go (and asserts.gen.go) next to each manifest.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGen,
}

func init() {
	genCmd.Flags().String("out", "", "output directory (single manifest only; default: next to the manifest)")
	genCmd.Flags().Bool("asserts", true, "also write the asserts.gen.go init battery")
	genCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	genCmd.Flags().Bool("snapshot", false, "reuse cached resolutions for unchanged manifests")
	genCmd.Flags().String("ui", "auto", "progress ui (auto|on|off)")
}

func runGen(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	withAsserts, err := cmd.Flags().GetBool("asserts")
	if err != nil {
		return fmt.Errorf("failed to get asserts flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
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
	if outDir != "" && len(paths) > 1 {
		return fmt.Errorf("--out needs a single manifest, found %d", len(paths))
	}
	// Declarations land next to their manifest, so two manifests in one
	// directory would overwrite each other's output.
	byDir := make(map[string]string, len(paths))
	for _, p := range paths {
		dir := filepath.Dir(p)
		if prev, ok := byDir[dir]; ok {
			return fmt.Errorf("%s and %s would generate into the same directory; keep one manifest per directory", prev, p)
		}
		byDir[dir] = p
	}

	opts := pipeline.Options{Jobs: jobs, MaxDiagnostics: maxDiagnostics}
	if useSnapshot {
		store, storeErr := snapshot.Open("oopz")
		if storeErr != nil {
			return fmt.Errorf("failed to open the snapshot cache: %w", storeErr)
		}
		opts.Store = store
	}
	opts.Emit = func(_ context.Context, res *pipeline.Result, rep diag.Reporter) error {
		return writeGenerated(res, rep, outDir, withAsserts)
	}

	useTUI := shouldUseTUI(uiModeValue) && !quiet
	var res *pipeline.RunResult
	if useTUI {
		res, err = runPipelineWithUI(cmd.Context(), "oopz gen", paths, opts)
	} else {
		res, err = pipeline.Run(cmd.Context(), paths, opts)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	bag := res.Diagnostics()
	diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{
		Color:     colored,
		ShowNotes: true,
		ShowHints: true,
	})
	if showTimings {
		printRunTimings(os.Stdout, res)
	}

	for i := range res.Results {
		r := &res.Results[i]
		if r.Bag == nil || r.Bag.HasErrors() {
			continue
		}
		if !quiet {
			dir := filepath.Dir(r.Path)
			if outDir != "" {
				dir = outDir
			}
			fmt.Fprintf(os.Stdout, "generated %s\n", filepath.Join(dir, gen.ClassesFile))
			if withAsserts {
				fmt.Fprintf(os.Stdout, "generated %s\n", filepath.Join(dir, gen.AssertsFile))
			}
		}
	}

	if res.HasErrors() {
		return silentFailure(cmd)
	}
	return nil
}

// writeGenerated renders and writes the declaration files for one
// cleanly resolved manifest. Failures surface as diagnostics on the
// job's bag and as an error so the emit stage records the failure.
func writeGenerated(res *pipeline.Result, rep diag.Reporter, outDir string, withAsserts bool) error {
	dir := filepath.Dir(res.Path)
	if outDir != "" {
		dir = outDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			diag.ReportError(rep, diag.GenWriteFailed, diag.Subject{File: res.Path},
				fmt.Sprintf("failed to create %q: %v", dir, err)).Emit()
			return err
		}
	}

	genOpts := gen.Options{
		Package: res.Manifest.Package.Name,
		Doc:     res.Manifest.Package.Doc,
		Source:  filepath.Base(res.Path),
	}
	decls, err := gen.Emit(res.Resolved.Table, res.Resolved.Order, genOpts)
	if err != nil {
		reportEmitError(rep, res.Path, err)
		return err
	}
	if err := writeGeneratedFile(rep, res.Path, filepath.Join(dir, gen.ClassesFile), decls); err != nil {
		return err
	}
	if !withAsserts {
		return nil
	}
	asserts, err := gen.EmitAsserts(res.Resolved.Table, res.Resolved.Order, genOpts)
	if err != nil {
		reportEmitError(rep, res.Path, err)
		return err
	}
	return writeGeneratedFile(rep, res.Path, filepath.Join(dir, gen.AssertsFile), asserts)
}

func reportEmitError(rep diag.Reporter, manifestPath string, err error) {
	code := diag.GenFormatFailed
	if errors.Is(err, gen.ErrBadPackage) {
		code = diag.GenBadPackage
	}
	diag.ReportError(rep, code, diag.Subject{File: manifestPath}, err.Error()).Emit()
}

func writeGeneratedFile(rep diag.Reporter, manifestPath, target string, data []byte) error {
	if err := os.WriteFile(target, data, 0o644); err != nil {
		diag.ReportError(rep, diag.GenWriteFailed, diag.Subject{File: manifestPath},
			fmt.Sprintf("failed to write %q: %v", target, err)).Emit()
		return err
	}
	return nil
}
