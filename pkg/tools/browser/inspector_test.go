package browser

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/entrhq/formscope/pkg/audit"
	"github.com/entrhq/formscope/pkg/logging"
	"github.com/entrhq/formscope/pkg/overlay"
	"github.com/entrhq/formscope/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticElement struct {
	rect *overlay.Rectangle
}

func (e staticElement) BoundingClientRect() (*overlay.Rectangle, error) { return e.rect, nil }

type fakeFinder struct {
	elements map[string]overlay.Element
	err      error
	queried  []string
}

func (f *fakeFinder) FindElement(selector string) (overlay.Element, error) {
	f.queried = append(f.queried, selector)
	if f.err != nil {
		return nil, f.err
	}
	el, ok := f.elements[selector]
	if !ok {
		return nil, nil
	}
	return el, nil
}

func geometryPage() *fakeEvaluator {
	return &fakeEvaluator{respond: func(expression string, _ interface{}) (interface{}, error) {
		switch expression {
		case scrollOffsetJS:
			return map[string]interface{}{"x": 0, "y": 100}, nil
		case viewportSizeJS:
			return map[string]interface{}{"width": 960, "height": 600}, nil
		}
		return true, nil
	}}
}

func newTestInspector(page *fakeEvaluator, finder ElementFinder, source AuditSource) (*Inspector, *types.Channels) {
	channels := types.NewChannels(8)
	return NewInspector(InspectorConfig{
		Finder:   finder,
		Overlays: overlay.NewManager(NewPageDocument(page)),
		Source:   source,
		Channels: channels,
		Logger:   logging.NewWriterLogger("inspector-test", io.Discard),
	}), channels
}

func callsOf(page *fakeEvaluator, expression string) []evalCall {
	var out []evalCall
	for _, c := range page.calls {
		if c.expression == expression {
			out = append(out, c)
		}
	}
	return out
}

func TestInspector_HighlightBySelector(t *testing.T) {
	page := geometryPage()
	finder := &fakeFinder{elements: map[string]overlay.Element{
		"#email": staticElement{rect: &overlay.Rectangle{Top: 10, Left: 20, Width: 100, Height: 50}},
	}}
	insp, _ := newTestInspector(page, finder, nil)

	err := insp.OnHighlightRequest(context.Background(), types.NewHighlightEvent("#email", overlay.TypeHover, false))
	require.NoError(t, err)

	boxes := callsOf(page, setBoxJS)
	require.Len(t, boxes, 1)
	arg := boxes[0].arg.(map[string]interface{})
	assert.Equal(t, overlay.DefaultHoverID, arg["id"])
	assert.Equal(t, 110.0, arg["top"])
	assert.Equal(t, 20.0, arg["left"])

	states := callsOf(page, setStateJS)
	require.Len(t, states, 1)
	assert.Equal(t, "in", states[0].arg.(map[string]interface{})["state"])
}

func TestInspector_HighlightWithRect(t *testing.T) {
	page := geometryPage()
	finder := &fakeFinder{}
	insp, _ := newTestInspector(page, finder, nil)

	rect := &overlay.Rectangle{Top: -30, Width: 100, Height: 50}
	err := insp.OnHighlightRequest(context.Background(), types.NewHighlightRectEvent(rect, overlay.TypeClick, true))
	require.NoError(t, err)

	assert.Empty(t, finder.queried, "a measured rect must not be re-queried")
	scrolls := callsOf(page, scrollToJS)
	require.Len(t, scrolls, 1)
	arg := scrolls[0].arg.(map[string]interface{})
	assert.Equal(t, -50.0, arg["left"])
	assert.Equal(t, 20.0, arg["top"])
}

func TestInspector_HighlightWithoutGeometry(t *testing.T) {
	tests := []struct {
		name     string
		finder   *fakeFinder
		selector string
	}{
		{"no match", &fakeFinder{}, "#missing"},
		{"no box", &fakeFinder{elements: map[string]overlay.Element{"#hidden": staticElement{}}}, "#hidden"},
		{"empty selector", &fakeFinder{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := geometryPage()
			insp, _ := newTestInspector(page, tt.finder, nil)

			err := insp.OnHighlightRequest(context.Background(), types.NewHighlightEvent(tt.selector, overlay.TypeClick, true))
			require.NoError(t, err)
			assert.Empty(t, callsOf(page, setBoxJS))
			assert.Empty(t, callsOf(page, setStateJS))
		})
	}
}

func TestInspector_HighlightFinderError(t *testing.T) {
	insp, _ := newTestInspector(geometryPage(), &fakeFinder{err: errors.New("bad selector")}, nil)

	err := insp.OnHighlightRequest(context.Background(), types.NewHighlightEvent("::", overlay.TypeClick, false))
	assert.EqualError(t, err, "bad selector")
}

func TestInspector_Hide(t *testing.T) {
	page := geometryPage()
	insp, _ := newTestInspector(page, &fakeFinder{}, nil)

	require.NoError(t, insp.OnHideRequest(context.Background(), overlay.TypeClick))

	creates := callsOf(page, createOverlayJS)
	require.Len(t, creates, 1)
	states := callsOf(page, setStateJS)
	require.Len(t, states, 1)
	assert.Equal(t, "out", states[0].arg.(map[string]interface{})["state"])
}

func TestInspector_AuditRequest(t *testing.T) {
	source := func(ctx context.Context) (audit.Details, error) {
		return audit.MockedDetails(), nil
	}
	insp, channels := newTestInspector(geometryPage(), &fakeFinder{}, source)

	require.NoError(t, insp.OnAuditRequest(context.Background()))

	e := <-channels.Events
	assert.Equal(t, types.EventTypeAuditDetails, e.Type)
	require.NotNil(t, e.Details)
	assert.Len(t, e.Details.Results, len(audit.MockedDetails().Results))
}

func TestInspector_AuditRequestWithoutSource(t *testing.T) {
	insp, _ := newTestInspector(geometryPage(), &fakeFinder{}, nil)
	assert.Error(t, insp.OnAuditRequest(context.Background()))
}

func TestInspector_RunReportsFailures(t *testing.T) {
	source := func(ctx context.Context) (audit.Details, error) {
		return audit.Details{}, errors.New("results file missing")
	}
	insp, channels := newTestInspector(geometryPage(), &fakeFinder{err: errors.New("detached")}, source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go insp.Run(ctx)

	require.True(t, channels.Send(ctx, types.NewAuditRequestEvent()))
	require.True(t, channels.Send(ctx, types.NewHighlightEvent("#a", overlay.TypeHover, false)))

	var got []types.Event
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case e := <-channels.Events:
			got = append(got, e)
		case <-timeout:
			t.Fatalf("expected two error events, got %d", len(got))
		}
	}

	assert.Equal(t, types.EventTypeAuditError, got[0].Type)
	assert.Contains(t, got[0].Error.Error(), "results file missing")
	assert.Equal(t, types.EventTypeHighlightError, got[1].Type)
	assert.Equal(t, overlay.TypeHover, got[1].Overlay)
}

func TestInspector_RunAppliesQueuedHidesBeforeReturning(t *testing.T) {
	page := geometryPage()
	insp, channels := newTestInspector(page, &fakeFinder{}, nil)
	ctx := context.Background()

	require.True(t, channels.Send(ctx, types.NewHideEvent(overlay.TypeHover)))
	require.True(t, channels.Send(ctx, types.NewHideEvent(overlay.TypeClick)))
	channels.Close()

	done := make(chan struct{})
	go func() {
		insp.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the request stream closed")
	}

	states := callsOf(page, setStateJS)
	require.Len(t, states, 2)
	assert.Equal(t, overlay.DefaultHoverID, states[0].arg.(map[string]interface{})["id"])
	assert.Equal(t, overlay.DefaultClickID, states[1].arg.(map[string]interface{})["id"])
	assert.Equal(t, "out", states[1].arg.(map[string]interface{})["state"])
}
