package roi

// Corner names the edit handle of the selected box being dragged.
// Handles are full lines: X1/X2 are vertical, Y1/Y2 horizontal.
type Corner int

const (
	CornerNone Corner = iota
	CornerX1
	CornerY1
	CornerX2
	CornerY2
)

// handleOrder is the evaluation order for drag-start handle picking.
// The first handle listed wins exact distance ties.
var handleOrder = [...]Corner{CornerX1, CornerY1, CornerX2, CornerY2}

func (c Corner) String() string {
	switch c {
	case CornerNone:
		return "none"
	case CornerX1:
		return "x1"
	case CornerY1:
		return "y1"
	case CornerX2:
		return "x2"
	case CornerY2:
		return "y2"
	default:
		return "unknown"
	}
}
