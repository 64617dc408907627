package roi

import "math"

// Mapper converts between normalized box space and absolute display space
// for an image of Width x Height pixels. In display space x runs over
// [0, Width] and y over [-Height, 0]: the top image row sits at y=0.
//
// Min edges round outward-down and max edges outward-up, so a rendered
// rectangle never shrinks below its sub-pixel extent. Width and Height must
// be positive.
type Mapper struct {
	Width  float64
	Height float64
}

// NewMapper returns a Mapper for an image of w x h pixels.
func NewMapper(w, h int) Mapper {
	return Mapper{Width: float64(w), Height: float64(h)}
}

// ToAbsolute returns the box edges in display space.
func (m Mapper) ToAbsolute(b Box) (ax1, ay1, ax2, ay2 float64) {
	ax1 = math.Floor(b.X1 * m.Width)
	ay1 = math.Ceil(-(b.Y1 * m.Height))
	ax2 = math.Ceil(b.X2 * m.Width)
	ay2 = math.Floor(-(b.Y2 * m.Height))
	return
}

// X1 maps an absolute x coordinate to a normalized left edge.
func (m Mapper) X1(ax float64) float64 { return clamp01(math.Floor(ax) / m.Width) }

// Y1 maps an absolute y coordinate to a normalized top edge.
func (m Mapper) Y1(ay float64) float64 { return clamp01(math.Ceil(-ay) / m.Height) }

// X2 maps an absolute x coordinate to a normalized right edge.
func (m Mapper) X2(ax float64) float64 { return clamp01(math.Ceil(ax) / m.Width) }

// Y2 maps an absolute y coordinate to a normalized bottom edge.
func (m Mapper) Y2(ay float64) float64 { return clamp01(math.Floor(-ay) / m.Height) }

// Inverse maps the coordinate relevant to corner back to normalized space.
// X handles read ax, Y handles read ay. CornerNone yields 0.
func (m Mapper) Inverse(c Corner, ax, ay float64) float64 {
	switch c {
	case CornerX1:
		return m.X1(ax)
	case CornerY1:
		return m.Y1(ay)
	case CornerX2:
		return m.X2(ax)
	case CornerY2:
		return m.Y2(ay)
	default:
		return 0
	}
}

// RelativeBox builds a normalized box from two arbitrary absolute corners.
// The corners are ordered first, so the result always satisfies the edge
// ordering invariant. The name is left empty.
func (m Mapper) RelativeBox(ax1, ay1, ax2, ay2 float64) Box {
	return Box{
		X1: m.X1(math.Min(ax1, ax2)),
		Y1: m.Y1(math.Max(ay1, ay2)),
		X2: m.X2(math.Max(ax1, ax2)),
		Y2: m.Y2(math.Min(ay1, ay2)),
	}
}

// Polygon returns the closed outline of b in display space, clockwise from
// the (x1, y1) corner.
func (m Mapper) Polygon(b Box) [4][2]float64 {
	x1, y1, x2, y2 := m.ToAbsolute(b)
	return [4][2]float64{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
}

// Valid reports whether the mapper was built from a loaded image.
func (m Mapper) Valid() bool { return m.Width > 0 && m.Height > 0 }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
