package roi

import "math"

const (
	// DefaultHandleThreshold is the maximum single-axis distance, in display
	// units, at which a drag start grabs a handle.
	DefaultHandleThreshold = 10.0
	// DefaultInset is the fraction of the view trimmed from each side when
	// placing a new box.
	DefaultInset = 0.3
	// DefaultName is given to boxes created in the view.
	DefaultName = "new_roi"
)

// Shape is the drawable form of one box in display space.
type Shape struct {
	Index        int
	Name         string
	Polygon      [4][2]float64
	Selected     bool
	ActiveCorner Corner // CornerNone unless Selected and dragging
}

// Controller is the edit state machine. It consumes pointer events in
// absolute display space and mutates its Collection through the Mapper of
// the current image:
//
//	Idle          no box selected
//	Selected(i)   box i selected, no handle
//	Dragging(i,c) handle c of box i follows the pointer
//
// Every operation is total; events that do not apply are absorbed.
type Controller struct {
	coll      *Collection
	mapper    Mapper
	threshold float64
}

// NewController returns a controller editing coll. A nil coll starts empty.
func NewController(coll *Collection) *Controller {
	if coll == nil {
		coll = &Collection{}
	}
	return &Controller{coll: coll, threshold: DefaultHandleThreshold}
}

// SetThreshold changes the handle grab distance. Non-positive values restore
// the default.
func (c *Controller) SetThreshold(t float64) {
	if t <= 0 {
		t = DefaultHandleThreshold
	}
	c.threshold = t
}

// SetImageSize installs the mapper for a w x h image. Non-positive sizes
// detach the image and pointer events are ignored until a valid size is set.
func (c *Controller) SetImageSize(w, h int) {
	if w <= 0 || h <= 0 {
		c.mapper = Mapper{}
		return
	}
	c.mapper = NewMapper(w, h)
}

// Mapper returns the mapper of the current image.
func (c *Controller) Mapper() Mapper { return c.mapper }

// Collection returns the edited collection.
func (c *Controller) Collection() *Collection { return c.coll }

// Replace swaps in a new set of boxes, clearing the edit state.
func (c *Controller) Replace(boxes []Box) { c.coll.Load(boxes) }

// SelectNearest selects the box containing the normalized point (x, y).
// Nothing changes when no box contains it.
func (c *Controller) SelectNearest(x, y float64) bool {
	idx, ok := c.coll.FindContaining(x, y)
	if !ok {
		return false
	}
	c.coll.Select(idx)
	return true
}

// RemoveNearest removes the box containing the normalized point (x, y).
func (c *Controller) RemoveNearest(x, y float64) bool {
	idx, ok := c.coll.FindContaining(x, y)
	if !ok {
		return false
	}
	c.coll.RemoveAt(idx)
	return true
}

// DragStart picks the handle of the selected box closest to (ax, ay).
// Distances are measured along a single axis because handles span the whole
// view. Handles are tried in the order X1, Y1, X2, Y2 and only a strictly
// closer candidate replaces the current best. With no handle within the
// threshold the box stays selected without a handle.
func (c *Controller) DragStart(ax, ay float64) bool {
	box := c.coll.edited()
	if box == nil || !c.mapper.Valid() {
		return false
	}
	x1, y1, x2, y2 := c.mapper.ToAbsolute(*box)
	dist := func(h Corner) float64 {
		switch h {
		case CornerX1:
			return math.Abs(x1 - ax)
		case CornerY1:
			return math.Abs(y1 - ay)
		case CornerX2:
			return math.Abs(x2 - ax)
		default:
			return math.Abs(y2 - ay)
		}
	}
	best, bestDist := CornerNone, math.MaxFloat64
	for _, h := range handleOrder {
		if d := dist(h); d < c.threshold && d < bestDist {
			best, bestDist = h, d
		}
	}
	c.coll.setCorner(best)
	return true
}

// DragUpdate moves the active handle to (ax, ay). The moved edge is clamped
// against the opposite edge so the box stays ordered. It reports whether the
// box changed.
func (c *Controller) DragUpdate(ax, ay float64) bool {
	_, corner, _ := c.coll.Edit()
	box := c.coll.edited()
	if box == nil || corner == CornerNone || !c.mapper.Valid() {
		return false
	}
	before := *box
	v := c.mapper.Inverse(corner, ax, ay)
	switch corner {
	case CornerX1:
		box.X1 = math.Min(v, box.X2)
	case CornerY1:
		box.Y1 = math.Min(v, box.Y2)
	case CornerX2:
		box.X2 = math.Max(v, box.X1)
	case CornerY2:
		box.Y2 = math.Max(v, box.Y1)
	}
	return *box != before
}

// DragStop releases the handle. The selection is kept.
func (c *Controller) DragStop() bool {
	_, corner, _ := c.coll.Edit()
	c.coll.setCorner(CornerNone)
	return corner != CornerNone
}

// HandlePointerEvent dispatches a host event. A secondary click selects and
// a middle click removes the box under the pointer; secondary drags resize
// the selected box. Other events are left to the host. It reports whether
// boxes or edit state changed.
func (c *Controller) HandlePointerEvent(ev PointerEvent) bool {
	if !c.mapper.Valid() {
		return false
	}
	switch ev.Kind {
	case EventSecondaryClick:
		return c.SelectNearest(c.mapper.X1(ev.X), c.mapper.Y1(ev.Y))
	case EventMiddleClick:
		return c.RemoveNearest(c.mapper.X1(ev.X), c.mapper.Y1(ev.Y))
	case EventDragStart:
		if ev.Button != ButtonSecondary {
			return false
		}
		return c.DragStart(ev.X, ev.Y)
	case EventDragUpdate:
		if ev.Button != ButtonSecondary {
			return false
		}
		return c.DragUpdate(ev.X, ev.Y)
	case EventDragStop:
		if ev.Button != ButtonSecondary {
			return false
		}
		return c.DragStop()
	default:
		return false
	}
}

// AddInView appends a box inset within bounds and returns its index, or -1
// when no image is loaded.
func (c *Controller) AddInView(bounds ViewBounds, inset float64, name string) int {
	if !c.mapper.Valid() {
		return -1
	}
	c.coll.Add(NewBoxInView(c.mapper, bounds, inset, name))
	return c.coll.Len() - 1
}

// Shapes returns every box in display space, in z-order.
func (c *Controller) Shapes() []Shape {
	if !c.mapper.Valid() {
		return nil
	}
	idx, corner, ok := c.coll.Edit()
	shapes := make([]Shape, 0, c.coll.Len())
	for i, b := range c.coll.boxes {
		s := Shape{Index: i, Name: b.Name, Polygon: c.mapper.Polygon(b)}
		if ok && i == idx {
			s.Selected = true
			s.ActiveCorner = corner
		}
		shapes = append(shapes, s)
	}
	return shapes
}

// NewBoxInView places a box inside bounds, trimmed by inset on every side.
// Out-of-range inset falls back to DefaultInset and an empty name to
// DefaultName.
func NewBoxInView(m Mapper, bounds ViewBounds, inset float64, name string) Box {
	if inset < 0 || inset >= 0.5 {
		inset = DefaultInset
	}
	if name == "" {
		name = DefaultName
	}
	w := bounds.MaxX - bounds.MinX
	h := bounds.MaxY - bounds.MinY
	b := m.RelativeBox(
		bounds.MinX+inset*w,
		bounds.MaxY-inset*h,
		bounds.MaxX-inset*w,
		bounds.MinY+inset*h,
	)
	b.Name = name
	return b
}
