package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/declare"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/driver"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/ui"
)

type compileOutcome struct {
	result *driver.CompileResult
	err    error
}

func runCompileWithUI(ctx context.Context, title string, files []string, req *driver.CompileRequest) (*driver.CompileResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing compile request")
	}
	events := make(chan declare.Event, 256)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = declare.ChannelSink{Ch: events}
		res, err := driver.Compile(ctx, &reqCopy)
		outcomeCh <- compileOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
