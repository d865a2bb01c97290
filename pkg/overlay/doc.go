// Package overlay draws highlight boxes over live page elements.
//
// Two overlays exist per page, one for each Type. A Manager creates them
// lazily through the host Document, converts viewport-relative rectangles to
// page-absolute coordinates, toggles the in/out visibility class and, when
// asked, scrolls an off-screen element into view.
//
//	mgr := overlay.NewManager(doc)
//	if rect := overlay.GetElementRectangle(el); rect != nil {
//	    err = mgr.ShowOverlay(rect, overlay.TypeClick, true)
//	}
//	err = mgr.HideOverlay(overlay.TypeHover)
package overlay
