// Package tui provides the terminal results view of a form audit.
//
// The view shows the audit score, a tab bar over the recommendations, the
// common mistakes and the form details, and forwards highlight requests for
// the selected element to the page host.
//
// The code is split into multiple files:
// - executor.go: Executor implementation and program lifecycle
// - model.go: Core model structure and state
// - update.go: Bubble Tea Update function and key handling
// - view.go: Bubble Tea View function and rendering
// - keys.go: Key bindings and help
// - highlight.go: Markup syntax highlighting
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/formscope/pkg/logging"
	"github.com/entrhq/formscope/pkg/types"
)

// Executor runs the results view against a page host reachable through
// types.Channels.
type Executor struct {
	channels   *types.Channels
	logger     *logging.Logger
	startRoute string
	pageURL    string
}

// NewExecutor creates a new TUI executor. startRoute is the route the view
// opens on; "/" and "/index.html" open the recommendations.
func NewExecutor(channels *types.Channels, logger *logging.Logger, startRoute, pageURL string) *Executor {
	return &Executor{
		channels:   channels,
		logger:     logger,
		startRoute: startRoute,
		pageURL:    pageURL,
	}
}

// Run starts the TUI and blocks until the user exits or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(ctx, modelOptions{
		Channels:   e.channels,
		Logger:     e.logger,
		StartRoute: e.startRoute,
		PageURL:    e.pageURL,
	})
	e.logger.Infof("results view starting on %s", m.route)

	program := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	forwardCtx, stopForward := context.WithCancel(ctx)
	defer stopForward()
	go e.forwardEvents(forwardCtx, program.Send)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	return nil
}

// forwardEvents hands host events to send until ctx is done.
func (e *Executor) forwardEvents(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-e.channels.Events:
			if !ok {
				return
			}
			if event.IsError() {
				e.logger.Warnf("host reported %s: %v", event.Type, event.Error)
			} else {
				e.logger.Debugf("forwarding %s event to TUI", event.Type)
			}
			send(event)
		}
	}
}

// Navigate moves the view to path, as an external location change would.
// It may be called before or during Run and from any goroutine. It returns
// false if ctx is done before the event is queued.
func (e *Executor) Navigate(ctx context.Context, path string) bool {
	return e.channels.Emit(ctx, types.NewNavigateEvent(path))
}
