package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CerenB/miss-hit/internal/driver"
	"github.com/CerenB/miss-hit/internal/ui"
)

type checkOutcome struct {
	report *driver.Report
	err    error
}

func runCheckWithUI(ctx context.Context, title string, opts driver.RunOptions) (*driver.Report, error) {
	files, err := driver.ListFiles(opts.Roots)
	if err != nil {
		// Fatal configuration problems are re-reported (with detail) by
		// the run itself.
		return driver.Run(ctx, opts)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		report, err := driver.Run(ctx, optsCopy)
		outcomeCh <- checkOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
