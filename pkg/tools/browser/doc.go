// Package browser hosts the inspected page through Playwright.
//
// # Architecture
//
// The package is built around three pieces:
//
// 1. SessionManager: owns the Playwright driver and the launched browsers
// 2. Session: one browser, context and page; resolves selectors to elements
// 3. Inspector: serves UI requests by running audits and drawing overlays
//
// PageDocument implements overlay.Document with small JavaScript functions
// evaluated in the page, so the overlay geometry logic stays in package
// overlay and is testable without a browser.
//
// # Request flow
//
//  1. The TUI sends a highlight or hide request on types.Channels
//  2. Inspector.Run drains the channel on a single goroutine, in order
//  3. The selector is resolved and measured with overlay.GetElementRectangle
//  4. overlay.Manager positions the click or hover overlay and may scroll
//
// # Example Usage
//
//	session, err := manager.StartSession("inspect", SessionOptions{
//	    Headless: false,
//	    Viewport: &Viewport{Width: 1280, Height: 720},
//	})
//	err = session.Navigate("https://example.com/signup", NavigateOptions{
//	    WaitUntil: "load",
//	})
//	doc := session.Document()
//	_, err = doc.InjectStyles(overlay.DefaultClickID, overlay.DefaultHoverID)
//	insp := NewInspector(InspectorConfig{
//	    Finder:   session,
//	    Overlays: overlay.NewManager(doc),
//	    Channels: channels,
//	    Logger:   logger,
//	})
//	go insp.Run(ctx)
package browser
