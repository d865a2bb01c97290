package browser

import (
	"fmt"

	"github.com/entrhq/formscope/pkg/overlay"
	"github.com/playwright-community/playwright-go"
)

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	gotoOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		gotoOpts.WaitUntil = &waitUntil
	}
	if opts.Timeout > 0 {
		gotoOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(url, gotoOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// FindElement returns the first element matching selector. A selector that
// matches nothing yields a nil element and no error.
func (s *Session) FindElement(selector string) (overlay.Element, error) {
	handle, err := s.Page.QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	if handle == nil {
		return nil, nil
	}
	return &pageElement{handle: handle}, nil
}

// Document returns the overlay host backed by the session's page.
func (s *Session) Document() *PageDocument {
	return NewPageDocument(s.Page)
}

// pageElement adapts a Playwright element handle to overlay.Element.
type pageElement struct {
	handle playwright.ElementHandle
}

// BoundingClientRect reports the element box relative to the main frame
// viewport. Detached or hidden elements have no box.
func (e *pageElement) BoundingClientRect() (*overlay.Rectangle, error) {
	box, err := e.handle.BoundingBox()
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, nil
	}
	return &overlay.Rectangle{
		Top:    box.Y,
		Left:   box.X,
		Width:  box.Width,
		Height: box.Height,
	}, nil
}
