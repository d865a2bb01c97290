package types

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/entrhq/formscope/pkg/audit"
	"github.com/entrhq/formscope/pkg/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	calls    []string
	details  []audit.Details
	events   []Event
	hidden   []overlay.Type
	failWith error
}

func (h *recordingHandler) OnAuditRequest(ctx context.Context) error {
	h.calls = append(h.calls, "request")
	return h.failWith
}

func (h *recordingHandler) OnAuditDetails(ctx context.Context, details audit.Details) error {
	h.calls = append(h.calls, "details")
	h.details = append(h.details, details)
	return h.failWith
}

func (h *recordingHandler) OnHighlightRequest(ctx context.Context, e Event) error {
	h.calls = append(h.calls, "highlight")
	h.events = append(h.events, e)
	return h.failWith
}

func (h *recordingHandler) OnHideRequest(ctx context.Context, t overlay.Type) error {
	h.calls = append(h.calls, "hide")
	h.hidden = append(h.hidden, t)
	return h.failWith
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		wantType EventType
		isError  bool
	}{
		{"audit request", NewAuditRequestEvent(), EventTypeAuditRequest, false},
		{"audit details", NewAuditDetailsEvent(audit.Details{Score: 1}), EventTypeAuditDetails, false},
		{"audit error", NewAuditErrorEvent(errors.New("x")), EventTypeAuditError, true},
		{"highlight", NewHighlightEvent("#a", overlay.TypeClick, true), EventTypeHighlight, false},
		{"highlight rect", NewHighlightRectEvent(&overlay.Rectangle{Width: 1}, overlay.TypeHover, false), EventTypeHighlight, false},
		{"hide", NewHideEvent(overlay.TypeHover), EventTypeHideHighlight, false},
		{"highlight error", NewHighlightErrorEvent(overlay.TypeClick, errors.New("x")), EventTypeHighlightError, true},
		{"navigate", NewNavigateEvent("/details.html"), EventTypeNavigate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.event.Type)
			assert.Equal(t, tt.isError, tt.event.IsError())
		})
	}
}

func TestNewAuditDetailsEvent_CopiesPayload(t *testing.T) {
	details := audit.Details{Score: 5}
	e := NewAuditDetailsEvent(details)
	details.Score = 9

	require.NotNil(t, e.Details)
	assert.Equal(t, float64(5), e.Details.Score)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	h := &recordingHandler{}

	require.NoError(t, Dispatch(ctx, h, NewAuditRequestEvent()))
	require.NoError(t, Dispatch(ctx, h, NewAuditDetailsEvent(audit.Details{Score: 3})))
	require.NoError(t, Dispatch(ctx, h, NewHighlightEvent("#email", overlay.TypeClick, true)))
	require.NoError(t, Dispatch(ctx, h, NewHideEvent(overlay.TypeHover)))
	require.NoError(t, Dispatch(ctx, h, Event{Type: EventTypeAuditDetails}))
	require.NoError(t, Dispatch(ctx, h, NewAuditErrorEvent(errors.New("ignored"))))
	require.NoError(t, Dispatch(ctx, h, NewNavigateEvent("/mistakes.html")))
	require.NoError(t, Dispatch(ctx, h, Event{Type: "unknown"}))

	assert.Equal(t, []string{"request", "details", "highlight", "hide"}, h.calls)
	assert.Equal(t, float64(3), h.details[0].Score)
	assert.Equal(t, "#email", h.events[0].Selector)
	assert.True(t, h.events[0].ScrollIntoView)
	assert.Equal(t, []overlay.Type{overlay.TypeHover}, h.hidden)
}

func TestDispatch_PropagatesHandlerError(t *testing.T) {
	h := &recordingHandler{failWith: errors.New("boom")}
	err := Dispatch(context.Background(), h, NewHideEvent(overlay.TypeClick))
	assert.EqualError(t, err, "boom")
}

func TestChannels_ServeInOrder(t *testing.T) {
	ch := NewChannels(0)
	h := &recordingHandler{}
	ctx := context.Background()

	require.True(t, ch.Send(ctx, NewHighlightEvent("#a", overlay.TypeHover, false)))
	require.True(t, ch.Send(ctx, NewHideEvent(overlay.TypeHover)))
	require.True(t, ch.Send(ctx, NewHighlightEvent("#b", overlay.TypeHover, false)))
	close(ch.Requests)

	ch.Serve(ctx, h, nil)

	assert.Equal(t, []string{"highlight", "hide", "highlight"}, h.calls)
	assert.Equal(t, "#b", h.events[1].Selector)
}

func TestChannels_ServeReportsErrors(t *testing.T) {
	ch := NewChannels(4)
	h := &recordingHandler{failWith: errors.New("page gone")}
	ctx := context.Background()

	require.True(t, ch.Send(ctx, NewHideEvent(overlay.TypeClick)))
	require.True(t, ch.Send(ctx, NewHideEvent(overlay.TypeHover)))
	close(ch.Requests)

	var failed []Event
	ch.Serve(ctx, h, func(e Event, err error) {
		failed = append(failed, e)
	})

	assert.Len(t, failed, 2, "errors must not stop the loop")
}

func TestChannels_ServeStopsOnCancel(t *testing.T) {
	ch := NewChannels(1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		ch.Serve(ctx, &recordingHandler{}, nil)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestChannels_SendAfterCancel(t *testing.T) {
	ch := NewChannels(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.True(t, ch.Emit(context.Background(), NewAuditRequestEvent()))
	assert.False(t, ch.Emit(ctx, NewAuditRequestEvent()), "full buffer and cancelled context")
}

func TestChannels_CloseTwice(t *testing.T) {
	ch := NewChannels(1)
	ch.Close()
	assert.NotPanics(t, ch.Close)
}

func TestChannels_CloseDrainsQueuedRequests(t *testing.T) {
	ch := NewChannels(4)
	h := &recordingHandler{}
	ctx := context.Background()

	require.True(t, ch.Send(ctx, NewHideEvent(overlay.TypeHover)))
	require.True(t, ch.Send(ctx, NewHideEvent(overlay.TypeClick)))
	ch.Close()

	done := make(chan struct{})
	go func() {
		ch.Serve(ctx, h, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Close")
	}
	assert.Equal(t, []overlay.Type{overlay.TypeHover, overlay.TypeClick}, h.hidden)

	// The host can still report after the request stream ended.
	assert.True(t, ch.Emit(ctx, NewHighlightErrorEvent(overlay.TypeClick, errors.New("x"))))
}
