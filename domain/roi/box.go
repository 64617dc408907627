// Package roi holds the region-of-interest geometry and editing engine:
// normalized boxes, the mapping to absolute display space, the ordered box
// collection with its edit state, and the pointer-driven edit controller.
package roi

// Box is a persisted region of interest. Coordinates are normalized to the
// image size with the origin at the top-left corner and y growing downward.
// While owned by a Collection, edits keep X1 <= X2 and Y1 <= Y2.
type Box struct {
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
	Name string  `json:"name"`
}

// Center returns the midpoint of the box in normalized space.
func (b Box) Center() (float64, float64) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// Contains reports whether (x, y) lies inside the box. The x interval is
// closed, the y interval is half-open so that two vertically adjacent boxes
// sharing an edge never both match.
func (b Box) Contains(x, y float64) bool {
	return b.X1 <= x && x <= b.X2 && b.Y1 <= y && y < b.Y2
}

// Ordered reports whether the box satisfies X1 <= X2 and Y1 <= Y2.
func (b Box) Ordered() bool { return b.X1 <= b.X2 && b.Y1 <= b.Y2 }

// ViewBounds is the visible rectangle of the display surface in absolute
// coordinates. The field order follows the inverted y axis: MaxY is the top
// edge and MinY the bottom edge.
type ViewBounds struct {
	MinX, MaxY, MaxX, MinY float64
}
