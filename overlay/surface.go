package overlay

import "image/color"

// Point is a position or extent in surface pixels.
type Point struct {
	X float64
	Y float64
}

// Handle identifies one element placed on the surface's detection
// layer. The renderer replaces whole layers via ClearOverlay and does
// not track handles itself; they exist for callers that manage single
// elements.
type Handle interface {
	// Detach removes the element from the surface.
	Detach()
}

// Surface is the render/compositing collaborator.
//
// Coordinate convention: the surface anchors at the BOTTOM-LEFT corner,
// y growing upward. Video frames are top-left anchored, so the renderer
// inverts the vertical axis when placing elements. Labels always paint
// above every other overlay element.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// ClearOverlay destroys every element on the detection layer.
	ClearOverlay()

	// AddRectangle places a filled rectangle at pos (bottom-left
	// anchor) with the given extent.
	AddRectangle(pos, size Point, fill color.NRGBA) (Handle, error)

	// AddLabel places text anchored at pos, on top of all other
	// overlay elements.
	AddLabel(text string, anchor Point, fill color.NRGBA) (Handle, error)
}
