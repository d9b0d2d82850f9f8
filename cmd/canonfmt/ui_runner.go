package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"canonfmt/internal/driver"
	"canonfmt/internal/fmtpipeline"
	"canonfmt/internal/ui"
)

type fmtOutcome struct {
	results []driver.FormatResult
	err     error
}

func runFmtWithUI(ctx context.Context, title string, inputs []driver.Input, opts driver.Options) ([]driver.FormatResult, error) {
	events := make(chan fmtpipeline.Event, 256)
	outcomeCh := make(chan fmtOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = fmtpipeline.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, inputs, optsCopy)
		outcomeCh <- fmtOutcome{results: res, err: err}
		close(events)
	}()

	files := make([]string, 0, len(inputs))
	for _, in := range inputs {
		files = append(files, in.Path)
	}
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
