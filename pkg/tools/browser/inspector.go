package browser

import (
	"context"
	"fmt"

	"github.com/entrhq/formscope/pkg/audit"
	"github.com/entrhq/formscope/pkg/logging"
	"github.com/entrhq/formscope/pkg/overlay"
	"github.com/entrhq/formscope/pkg/types"
)

// ElementFinder resolves selectors in the inspected page. *Session
// satisfies it.
type ElementFinder interface {
	FindElement(selector string) (overlay.Element, error)
}

// AuditSource produces the results of one audit run.
type AuditSource func(ctx context.Context) (audit.Details, error)

// Inspector is the page-side handler for UI requests: it runs audits and
// drives the highlight overlays. It implements types.Handler.
type Inspector struct {
	finder   ElementFinder
	overlays *overlay.Manager
	source   AuditSource
	channels *types.Channels
	logger   *logging.Logger
}

// InspectorConfig configures an Inspector.
type InspectorConfig struct {
	Finder   ElementFinder
	Overlays *overlay.Manager
	Source   AuditSource
	Channels *types.Channels
	Logger   *logging.Logger
}

// NewInspector creates an Inspector.
func NewInspector(cfg InspectorConfig) *Inspector {
	return &Inspector{
		finder:   cfg.Finder,
		overlays: cfg.Overlays,
		source:   cfg.Source,
		channels: cfg.Channels,
		logger:   cfg.Logger,
	}
}

// Run serves requests from the channels until they close or ctx is done.
// Failed requests are logged and reported to the UI as error events.
func (i *Inspector) Run(ctx context.Context) {
	i.channels.Serve(ctx, i, func(e types.Event, err error) {
		i.logger.Warnf("request %s failed: %v", e.Type, err)
		switch e.Type {
		case types.EventTypeAuditRequest:
			i.channels.Emit(ctx, types.NewAuditErrorEvent(err))
		case types.EventTypeHighlight, types.EventTypeHideHighlight:
			i.channels.Emit(ctx, types.NewHighlightErrorEvent(e.Overlay, err))
		}
	})
}

// OnAuditRequest runs the audit source and forwards its result.
func (i *Inspector) OnAuditRequest(ctx context.Context) error {
	if i.source == nil {
		return fmt.Errorf("no audit source configured")
	}
	details, err := i.source(ctx)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	return i.OnAuditDetails(ctx, details)
}

// OnAuditDetails forwards details delivered by the audit producer to the UI.
func (i *Inspector) OnAuditDetails(ctx context.Context, details audit.Details) error {
	i.logger.Infof("audit delivered: score=%v results=%d", details.Score, len(details.Results))
	if !i.channels.Emit(ctx, types.NewAuditDetailsEvent(details)) {
		return ctx.Err()
	}
	return nil
}

// OnHighlightRequest measures the requested element and shows the overlay
// over it. Elements without geometry are skipped.
func (i *Inspector) OnHighlightRequest(ctx context.Context, e types.Event) error {
	rect := e.Rect
	if rect == nil {
		if e.Selector == "" {
			return nil
		}
		el, err := i.finder.FindElement(e.Selector)
		if err != nil {
			return err
		}
		rect = overlay.GetElementRectangle(el)
	}

	if rect == nil {
		i.logger.Debugf("no geometry for %q, %s overlay left unchanged", e.Selector, e.Overlay)
		return nil
	}

	i.logger.Debugf("highlight %s %q at %+v scroll=%v", e.Overlay, e.Selector, *rect, e.ScrollIntoView)
	return i.overlays.ShowOverlay(rect, e.Overlay, e.ScrollIntoView)
}

// OnHideRequest hides the overlay of type t.
func (i *Inspector) OnHideRequest(ctx context.Context, t overlay.Type) error {
	return i.overlays.HideOverlay(t)
}
