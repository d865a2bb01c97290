package types

import (
	"context"
	"sync"
)

// DefaultBufferSize is the channel capacity used by NewChannels when size
// is not positive.
const DefaultBufferSize = 16

// Channels connects the results UI to the page host.
//
// Requests flow UI -> host, Events flow host -> UI. A single goroutine drains
// Requests so host calls are applied in the order they were sent.
type Channels struct {
	Requests chan Event
	Events   chan Event

	closeOnce sync.Once
}

// NewChannels creates a Channels value with the given buffer size.
func NewChannels(size int) *Channels {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Channels{
		Requests: make(chan Event, size),
		Events:   make(chan Event, size),
	}
}

// Send queues a request for the host. It returns false if ctx is done
// first.
func (c *Channels) Send(ctx context.Context, e Event) bool {
	select {
	case c.Requests <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

// Emit queues an event for the UI. It returns false if ctx is done first.
func (c *Channels) Emit(ctx context.Context, e Event) bool {
	select {
	case c.Events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close ends the request stream. Serve handles the requests already queued
// and then returns. Events stays open since the host may still report on
// those requests. Safe to call multiple times; Send must not be called
// after Close.
func (c *Channels) Close() {
	c.closeOnce.Do(func() {
		close(c.Requests)
	})
}

// Serve dispatches requests to h until Requests is closed or ctx is done.
// Handler failures are reported through onError and do not stop the loop.
func (c *Channels) Serve(ctx context.Context, h Handler, onError func(Event, error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-c.Requests:
			if !ok {
				return
			}
			if err := Dispatch(ctx, h, e); err != nil && onError != nil {
				onError(e, err)
			}
		}
	}
}
