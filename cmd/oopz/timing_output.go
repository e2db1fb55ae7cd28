package main

import (
	"fmt"
	"io"

	"github.com/gdzig/oopz/internal/pipeline"
)

// printRunTimings dumps the per-manifest phase timings of a run.
// Results without recorded phases (for example cache hits that skipped
// stages) are omitted.
func printRunTimings(out io.Writer, res *pipeline.RunResult) {
	if out == nil || res == nil {
		return
	}
	for i := range res.Results {
		r := &res.Results[i]
		if len(r.Timing.Phases) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s:\n", r.Path)
		for _, phase := range r.Timing.Phases {
			fmt.Fprintf(out, "  %-10s %7.2f ms", phase.Name, phase.DurationMS)
			if phase.Note != "" {
				fmt.Fprintf(out, "  // %s", phase.Note)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "  %-10s %7.2f ms\n", "total", r.Timing.TotalMS)
	}
}
