package browser

import (
	"fmt"

	"github.com/entrhq/formscope/pkg/overlay"
)

// Evaluator runs a JavaScript function in a page. playwright.Page satisfies
// it.
type Evaluator interface {
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
}

const (
	createOverlayJS = `(id) => {
  let el = document.getElementById(id);
  if (!el) {
    el = document.createElement('div');
    el.id = id;
    document.body.appendChild(el);
  }
  return el.id;
}`

	scrollOffsetJS = `() => ({ x: window.pageXOffset, y: window.pageYOffset })`

	viewportSizeJS = `() => ({ width: window.innerWidth, height: window.innerHeight })`

	scrollToJS = `(a) => { window.scrollTo({ left: a.left, top: a.top, behavior: a.smooth ? 'smooth' : 'auto' }); }`

	setBoxJS = `(a) => {
  const el = document.getElementById(a.id);
  if (!el) return false;
  el.style.top = a.top + 'px';
  el.style.left = a.left + 'px';
  el.style.width = a.width + 'px';
  el.style.height = a.height + 'px';
  return true;
}`

	setStateJS = `(a) => {
  const el = document.getElementById(a.id);
  if (!el) return false;
  el.className = a.state;
  return true;
}`

	injectStyleJS = `(a) => {
  if (document.getElementById(a.id)) return false;
  const style = document.createElement('style');
  style.id = a.id;
  style.textContent = a.css;
  (document.head || document.documentElement).appendChild(style);
  return true;
}`
)

// overlayCSS positions both overlays absolutely and maps the in/out classes
// to visibility.
func overlayCSS(clickID, hoverID string) string {
	return fmt.Sprintf(`#%[1]s, #%[2]s {
  position: absolute;
  z-index: 2147483647;
  pointer-events: none;
  box-sizing: border-box;
  transition: opacity 0.2s ease-in-out;
}
#%[1]s { background: rgba(255, 179, 186, 0.35); outline: 2px solid #FF6F7D; }
#%[2]s { background: rgba(168, 230, 207, 0.35); outline: 1px dashed #3FA37C; }
#%[1]s.in, #%[2]s.in { opacity: 1; }
#%[1]s.out, #%[2]s.out { opacity: 0; }
`, clickID, hoverID)
}

// PageDocument implements overlay.Document on top of a live page.
type PageDocument struct {
	page Evaluator
	css  string // stylesheet re-added to replaced documents
}

// NewPageDocument wraps page.
func NewPageDocument(page Evaluator) *PageDocument {
	return &PageDocument{page: page}
}

// InjectStyles adds the overlay stylesheet once per document. It reports
// whether a stylesheet was added. Overlays created later in a reloaded
// document get the stylesheet again.
func (d *PageDocument) InjectStyles(clickID, hoverID string) (bool, error) {
	d.css = overlayCSS(clickID, hoverID)
	return d.ensureStyles()
}

func (d *PageDocument) ensureStyles() (bool, error) {
	result, err := d.page.Evaluate(injectStyleJS, map[string]interface{}{
		"id":  StyleElementID,
		"css": d.css,
	})
	if err != nil {
		return false, fmt.Errorf("failed to inject overlay styles: %w", err)
	}
	added, _ := result.(bool)
	return added, nil
}

// CreateOverlay implements overlay.Document. An existing element with the
// same id is reused.
func (d *PageDocument) CreateOverlay(id string) (overlay.Handle, error) {
	if d.css != "" {
		if _, err := d.ensureStyles(); err != nil {
			return nil, err
		}
	}
	if _, err := d.page.Evaluate(createOverlayJS, id); err != nil {
		return nil, fmt.Errorf("failed to create overlay element %q: %w", id, err)
	}
	return &pageHandle{page: d.page, id: id}, nil
}

// ScrollOffset implements overlay.Document.
func (d *PageDocument) ScrollOffset() (overlay.Point, error) {
	result, err := d.page.Evaluate(scrollOffsetJS)
	if err != nil {
		return overlay.Point{}, err
	}
	x, y, err := numberPair(result, "x", "y")
	if err != nil {
		return overlay.Point{}, fmt.Errorf("unexpected scroll offset: %w", err)
	}
	return overlay.Point{X: x, Y: y}, nil
}

// ViewportSize implements overlay.Document.
func (d *PageDocument) ViewportSize() (overlay.Size, error) {
	result, err := d.page.Evaluate(viewportSizeJS)
	if err != nil {
		return overlay.Size{}, err
	}
	w, h, err := numberPair(result, "width", "height")
	if err != nil {
		return overlay.Size{}, fmt.Errorf("unexpected viewport size: %w", err)
	}
	return overlay.Size{Width: w, Height: h}, nil
}

// ScrollTo implements overlay.Document. The page animates a smooth scroll
// on its own; this call does not wait for it.
func (d *PageDocument) ScrollTo(target overlay.Point, smooth bool) error {
	_, err := d.page.Evaluate(scrollToJS, map[string]interface{}{
		"left":   target.X,
		"top":    target.Y,
		"smooth": smooth,
	})
	return err
}

// pageHandle is an overlay element addressed by id.
type pageHandle struct {
	page Evaluator
	id   string
}

func (h *pageHandle) SetBox(box overlay.Box) error {
	result, err := h.page.Evaluate(setBoxJS, map[string]interface{}{
		"id":     h.id,
		"top":    box.Top,
		"left":   box.Left,
		"width":  box.Width,
		"height": box.Height,
	})
	if err != nil {
		return err
	}
	return attached(result, h.id)
}

func (h *pageHandle) SetState(state overlay.State) error {
	result, err := h.page.Evaluate(setStateJS, map[string]interface{}{
		"id":    h.id,
		"state": string(state),
	})
	if err != nil {
		return err
	}
	return attached(result, h.id)
}

// attached converts the boolean result of an element update to an error.
func attached(result interface{}, id string) error {
	if ok, _ := result.(bool); !ok {
		return fmt.Errorf("overlay element %q is not in the page: %w", id, overlay.ErrDetached)
	}
	return nil
}

// numberPair reads two numeric fields from an evaluated object.
func numberPair(result interface{}, a, b string) (float64, float64, error) {
	obj, ok := result.(map[string]interface{})
	if !ok {
		return 0, 0, fmt.Errorf("expected object, got %T", result)
	}
	first, err := toFloat(obj[a])
	if err != nil {
		return 0, 0, fmt.Errorf("field %s: %w", a, err)
	}
	second, err := toFloat(obj[b])
	if err != nil {
		return 0, 0, fmt.Errorf("field %s: %w", b, err)
	}
	return first, second, nil
}

// toFloat accepts the numeric types Playwright decodes JavaScript numbers to.
func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}
