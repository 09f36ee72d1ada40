package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"greet/internal/driver"
	"greet/internal/grammar"
	"greet/internal/pipeline"
	"greet/internal/ui"
)

type diagnoseOutcome struct {
	result *driver.DiagnoseResult
	err    error
}

// runDiagnoseWithUI drives driver.Diagnose while a progress view renders its events.
func runDiagnoseWithUI(ctx context.Context, title string, files []string, target string, g *grammar.Grammar, opts driver.DiagnoseOptions) (*driver.DiagnoseResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan diagnoseOutcome, 1)

	go func() {
		opts.Sink = pipeline.ChannelSink{Ch: events}
		res, err := driver.Diagnose(ctx, target, g, opts)
		outcomeCh <- diagnoseOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// после выхода из UI события больше никто не читает
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
