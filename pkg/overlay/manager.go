package overlay

import (
	"errors"
	"fmt"
)

// ErrDetached is returned by a Handle whose element is no longer in the
// page, for example after the document was reloaded.
var ErrDetached = errors.New("overlay element detached")

// Document is the host page the overlays live in.
type Document interface {
	// CreateOverlay inserts a new overlay element with the given id and
	// returns a handle to it.
	CreateOverlay(id string) (Handle, error)

	// ScrollOffset returns the current horizontal and vertical scroll offsets.
	ScrollOffset() (Point, error)

	// ViewportSize returns the inner size of the viewport.
	ViewportSize() (Size, error)

	// ScrollTo requests a scroll to the given page position. It returns
	// without waiting for a smooth scroll to finish.
	ScrollTo(target Point, smooth bool) error
}

// Handle is one overlay element owned by a Manager. Its methods return an
// error wrapping ErrDetached once the hosting document has been replaced.
type Handle interface {
	SetBox(box Box) error
	SetState(state State) error
}

// Element is a live page element whose geometry can be queried.
type Element interface {
	// BoundingClientRect returns the element's viewport-relative box, or nil
	// when the host has no geometry for it.
	BoundingClientRect() (*Rectangle, error)
}

// GetElementRectangle reads the element's current bounding box. It returns
// nil when the query yields nothing, including when the element is no longer
// attached to the page.
func GetElementRectangle(el Element) *Rectangle {
	if el == nil {
		return nil
	}
	rect, err := el.BoundingClientRect()
	if err != nil || rect == nil {
		return nil
	}
	return &Rectangle{
		Top:    rect.Top,
		Left:   rect.Left,
		Width:  rect.Width,
		Height: rect.Height,
	}
}

// Manager owns the click and hover overlays of one page. Handles are created
// on first use and kept for as long as their document lives; a handle that
// reports ErrDetached is dropped and created again in the new document.
//
// A Manager is not safe for concurrent use; calls for the same Type are
// applied in the order they are made and the latest one wins.
type Manager struct {
	doc           Document
	ids           map[Type]string
	handles       map[Type]Handle
	scrollPadding float64
	smoothScroll  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithIDs overrides the element ids used for the two overlays.
func WithIDs(clickID, hoverID string) Option {
	return func(m *Manager) {
		if clickID != "" {
			m.ids[TypeClick] = clickID
		}
		if hoverID != "" {
			m.ids[TypeHover] = hoverID
		}
	}
}

// WithScrollPadding sets the padding kept above and left of an element that
// is scrolled into view.
func WithScrollPadding(padding float64) Option {
	return func(m *Manager) {
		m.scrollPadding = padding
	}
}

// WithSmoothScroll toggles smooth scrolling.
func WithSmoothScroll(smooth bool) Option {
	return func(m *Manager) {
		m.smoothScroll = smooth
	}
}

// NewManager creates a Manager drawing into doc.
func NewManager(doc Document, opts ...Option) *Manager {
	m := &Manager{
		doc: doc,
		ids: map[Type]string{
			TypeClick: DefaultClickID,
			TypeHover: DefaultHoverID,
		},
		handles:       make(map[Type]Handle, 2),
		scrollPadding: DefaultScrollPadding,
		smoothScroll:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the element id used for the given overlay type.
func (m *Manager) ID(t Type) string {
	return m.ids[t]
}

// handle resolves the overlay for t, creating it on first use.
func (m *Manager) handle(t Type) (Handle, error) {
	if h, ok := m.handles[t]; ok {
		return h, nil
	}

	id, ok := m.ids[t]
	if !ok {
		return nil, fmt.Errorf("unknown overlay type %q", t)
	}

	h, err := m.doc.CreateOverlay(id)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s overlay: %w", t, err)
	}
	m.handles[t] = h
	return h, nil
}

// ShowOverlay positions the overlay for t over rect and makes it visible.
//
// A nil or all-zero rect is a no-op: the overlay keeps whatever state it had.
// When scrollIntoView is set and rect is not fully inside the viewport, the
// page is scrolled so the element sits scrollPadding pixels from the top-left
// corner.
func (m *Manager) ShowOverlay(rect *Rectangle, t Type, scrollIntoView bool) error {
	h, err := m.handle(t)
	if err != nil {
		return err
	}

	if rect == nil || rect.IsZero() {
		return nil
	}

	offset, err := m.doc.ScrollOffset()
	if err != nil {
		return fmt.Errorf("failed to read scroll offset: %w", err)
	}

	box := PageBox(*rect, offset)
	err = m.apply(t, h, func(h Handle) error {
		if err := h.SetBox(box); err != nil {
			return fmt.Errorf("failed to position %s overlay: %w", t, err)
		}
		if err := h.SetState(StateIn); err != nil {
			return fmt.Errorf("failed to show %s overlay: %w", t, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !scrollIntoView {
		return nil
	}

	viewport, err := m.doc.ViewportSize()
	if err != nil {
		return fmt.Errorf("failed to read viewport size: %w", err)
	}
	if IsVisible(*rect, viewport) {
		return nil
	}

	if err := m.doc.ScrollTo(ScrollTarget(box, m.scrollPadding), m.smoothScroll); err != nil {
		return fmt.Errorf("failed to scroll to %s overlay: %w", t, err)
	}
	return nil
}

// HideOverlay marks the overlay for t hidden. The element stays in the page
// for reuse.
func (m *Manager) HideOverlay(t Type) error {
	h, err := m.handle(t)
	if err != nil {
		return err
	}
	return m.apply(t, h, func(h Handle) error {
		if err := h.SetState(StateOut); err != nil {
			return fmt.Errorf("failed to hide %s overlay: %w", t, err)
		}
		return nil
	})
}

// apply runs update against h. If h went away with its document, the
// overlay is created again in the current document and update is retried
// once.
func (m *Manager) apply(t Type, h Handle, update func(Handle) error) error {
	err := update(h)
	if !errors.Is(err, ErrDetached) {
		return err
	}

	delete(m.handles, t)
	fresh, cerr := m.handle(t)
	if cerr != nil {
		return cerr
	}
	return update(fresh)
}

// PageBox converts a viewport-relative rectangle to page-absolute placement.
// Width and height are carried over unchanged.
func PageBox(rect Rectangle, offset Point) Box {
	return Box{
		Top:    rect.Top + offset.Y,
		Left:   rect.Left + offset.X,
		Width:  rect.Width,
		Height: rect.Height,
	}
}

// IsVisible reports whether rect lies entirely inside the viewport.
func IsVisible(rect Rectangle, viewport Size) bool {
	return rect.Top >= 0 &&
		rect.Left >= 0 &&
		rect.Top+rect.Height <= viewport.Height &&
		rect.Left+rect.Width <= viewport.Width
}

// ScrollTarget returns the scroll position that brings box into view with
// padding pixels of margin.
func ScrollTarget(box Box, padding float64) Point {
	return Point{
		X: box.Left - padding,
		Y: box.Top - padding,
	}
}
