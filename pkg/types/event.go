package types

import (
	"context"

	"github.com/entrhq/formscope/pkg/audit"
	"github.com/entrhq/formscope/pkg/overlay"
)

// EventType defines the kind of inbound notification.
type EventType string

const (
	EventTypeAuditRequest   EventType = "audit_request"   // EventTypeAuditRequest asks the audit producer for fresh results.
	EventTypeAuditDetails   EventType = "audit_details"   // EventTypeAuditDetails delivers the results of one audit run.
	EventTypeAuditError     EventType = "audit_error"     // EventTypeAuditError reports that an audit run could not be delivered.
	EventTypeHighlight      EventType = "highlight"       // EventTypeHighlight asks for an element to be highlighted.
	EventTypeHideHighlight  EventType = "hide_highlight"  // EventTypeHideHighlight asks for an overlay to be hidden.
	EventTypeHighlightError EventType = "highlight_error" // EventTypeHighlightError reports a failed highlight request.
	EventTypeNavigate       EventType = "navigate"        // EventTypeNavigate moves the results view to another route.
)

// Event is one message exchanged between the results UI and its
// collaborators.
type Event struct {
	// Type indicates the kind of event.
	Type EventType

	// Details holds the audit payload for audit_details events.
	Details *audit.Details

	// Selector locates the element to highlight.
	Selector string

	// Rect is an already measured rectangle. When set it is used instead of
	// resolving Selector.
	Rect *overlay.Rectangle

	// Overlay is the overlay the request targets.
	Overlay overlay.Type

	// ScrollIntoView requests scrolling when the element is off-screen.
	ScrollIntoView bool

	// Error contains error information for error events.
	Error error

	// Route is the target path of navigate events.
	Route string
}

// NewAuditRequestEvent creates an event asking for a new audit run.
func NewAuditRequestEvent() Event {
	return Event{Type: EventTypeAuditRequest}
}

// NewAuditDetailsEvent creates an event carrying the results of an audit run.
func NewAuditDetailsEvent(details audit.Details) Event {
	return Event{Type: EventTypeAuditDetails, Details: &details}
}

// NewAuditErrorEvent creates an event reporting a failed audit run.
func NewAuditErrorEvent(err error) Event {
	return Event{Type: EventTypeAuditError, Error: err}
}

// NewHighlightEvent creates a highlight request for the element at selector.
func NewHighlightEvent(selector string, t overlay.Type, scrollIntoView bool) Event {
	return Event{
		Type:           EventTypeHighlight,
		Selector:       selector,
		Overlay:        t,
		ScrollIntoView: scrollIntoView,
	}
}

// NewHighlightRectEvent creates a highlight request for an already measured
// rectangle.
func NewHighlightRectEvent(rect *overlay.Rectangle, t overlay.Type, scrollIntoView bool) Event {
	return Event{
		Type:           EventTypeHighlight,
		Rect:           rect,
		Overlay:        t,
		ScrollIntoView: scrollIntoView,
	}
}

// NewHideEvent creates a request to hide the overlay of type t.
func NewHideEvent(t overlay.Type) Event {
	return Event{Type: EventTypeHideHighlight, Overlay: t}
}

// NewHighlightErrorEvent reports a failed highlight request.
func NewHighlightErrorEvent(t overlay.Type, err error) Event {
	return Event{Type: EventTypeHighlightError, Overlay: t, Error: err}
}

// NewNavigateEvent moves the results view to route, as a location change
// would.
func NewNavigateEvent(route string) Event {
	return Event{Type: EventTypeNavigate, Route: route}
}

// IsError reports whether the event carries a failure.
func (e Event) IsError() bool {
	return e.Type == EventTypeAuditError || e.Type == EventTypeHighlightError
}

// Handler receives decoded notifications. Implementations run on the single
// goroutine that drains a Channels value.
type Handler interface {
	OnAuditRequest(ctx context.Context) error
	OnAuditDetails(ctx context.Context, details audit.Details) error
	OnHighlightRequest(ctx context.Context, e Event) error
	OnHideRequest(ctx context.Context, t overlay.Type) error
}

// Dispatch routes e to the matching Handler method. Error events, navigate
// events and unknown types are ignored.
func Dispatch(ctx context.Context, h Handler, e Event) error {
	switch e.Type {
	case EventTypeAuditRequest:
		return h.OnAuditRequest(ctx)
	case EventTypeAuditDetails:
		if e.Details == nil {
			return nil
		}
		return h.OnAuditDetails(ctx, *e.Details)
	case EventTypeHighlight:
		return h.OnHighlightRequest(ctx, e)
	case EventTypeHideHighlight:
		return h.OnHideRequest(ctx, e.Overlay)
	}
	return nil
}
