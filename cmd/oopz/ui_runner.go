package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gdzig/oopz/internal/pipeline"
	"github.com/gdzig/oopz/internal/ui"
)

type runOutcome struct {
	result *pipeline.RunResult
	err    error
}

// runPipelineWithUI drives pipeline.Run in a goroutine and feeds its
// progress events into a terminal UI on stdout. The pipeline keeps
// running even if the UI fails; the UI error wins when both fail.
func runPipelineWithUI(ctx context.Context, title string, paths []string, opts pipeline.Options) (*pipeline.RunResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Run(ctx, paths, optsCopy)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
