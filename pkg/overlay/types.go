package overlay

// Type identifies which trigger owns a highlight. Each type has its own
// overlay element and visibility state.
type Type string

const (
	// TypeClick is the highlight shown for an explicitly selected element
	TypeClick Type = "click"

	// TypeHover is the highlight that follows the cursor
	TypeHover Type = "hover"
)

// State is the two-valued visibility class applied to an overlay element.
type State string

const (
	StateIn  State = "in"  // StateIn marks the overlay visible.
	StateOut State = "out" // StateOut marks the overlay hidden.
)

// Default overlay element ids, stable for the lifetime of the page.
const (
	DefaultClickID = "form-troubleshooter-highlight-click-overlay"
	DefaultHoverID = "form-troubleshooter-highlight-hover-overlay"

	// DefaultScrollPadding is subtracted from the page-absolute position
	// when scrolling an off-screen element into view.
	DefaultScrollPadding = 50.0
)

// Rectangle is an element's bounding box in viewport-relative pixels at the
// time it was captured.
type Rectangle struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether all four fields are zero, which means there is no
// geometry to draw.
func (r Rectangle) IsZero() bool {
	return r.Top == 0 && r.Left == 0 && r.Width == 0 && r.Height == 0
}

// Box is the page-absolute placement written to an overlay element.
type Box struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Point is a pair of page coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is a viewport size in pixels.
type Size struct {
	Width  float64
	Height float64
}
