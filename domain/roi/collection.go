package roi

import "math"

// Collection owns an ordered sequence of boxes and the edit state: the index
// of the selected box and the handle being dragged on it. Order is z-order
// and is preserved by every mutation. Out-of-range indices are ignored.
//
// The zero value is an empty collection with nothing selected.
type Collection struct {
	boxes      []Box
	editIndex  int // valid only when editSet
	editSet    bool
	editCorner Corner
}

// NewCollection returns a collection holding a copy of boxes.
func NewCollection(boxes []Box) *Collection {
	c := &Collection{}
	c.Load(boxes)
	return c
}

// Load replaces every box and clears the edit state. The boxes are not
// validated.
func (c *Collection) Load(boxes []Box) {
	c.boxes = append(c.boxes[:0:0], boxes...)
	c.clearEdit()
}

// Add appends b. The selection is not altered.
func (c *Collection) Add(b Box) { c.boxes = append(c.boxes, b) }

// Len returns the number of boxes.
func (c *Collection) Len() int { return len(c.boxes) }

// Boxes returns a copy of the boxes in order.
func (c *Collection) Boxes() []Box { return append([]Box(nil), c.boxes...) }

// Box returns the box at idx.
func (c *Collection) Box(idx int) (Box, bool) {
	if !c.inRange(idx) {
		return Box{}, false
	}
	return c.boxes[idx], true
}

// Rename sets the name of the box at idx.
func (c *Collection) Rename(idx int, name string) {
	if !c.inRange(idx) {
		return
	}
	c.boxes[idx].Name = name
}

// RemoveAt deletes the box at idx and keeps the edit state pointing at the
// same box. Any drag in progress is dropped when the edited box shifts or
// disappears.
func (c *Collection) RemoveAt(idx int) {
	if !c.inRange(idx) {
		return
	}
	c.boxes = append(c.boxes[:idx], c.boxes[idx+1:]...)
	if !c.editSet {
		return
	}
	switch {
	case idx < c.editIndex:
		c.editIndex--
		c.editCorner = CornerNone
	case idx == c.editIndex:
		c.clearEdit()
	}
}

// FindContaining returns the index of the box containing (x, y) whose center
// is closest to the point. The first box wins distance ties.
func (c *Collection) FindContaining(x, y float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, b := range c.boxes {
		if !b.Contains(x, y) {
			continue
		}
		cx, cy := b.Center()
		if d := math.Hypot(cx-x, cy-y); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Select marks the box at idx for editing and drops any handle.
func (c *Collection) Select(idx int) {
	if !c.inRange(idx) {
		return
	}
	c.editIndex, c.editSet, c.editCorner = idx, true, CornerNone
}

// ClearSelection resets the edit state.
func (c *Collection) ClearSelection() { c.clearEdit() }

// Edit returns the selected index and dragged handle. ok is false when no
// box is selected, in which case corner is always CornerNone.
func (c *Collection) Edit() (idx int, corner Corner, ok bool) {
	if !c.editSet {
		return -1, CornerNone, false
	}
	return c.editIndex, c.editCorner, true
}

// Serialize encodes the boxes in the persisted record format.
func (c *Collection) Serialize() ([]byte, error) { return EncodeRecords(c.boxes) }

// Deserialize decodes a record set and loads it. On error the collection is
// left untouched.
func (c *Collection) Deserialize(data []byte) error {
	boxes, err := DecodeRecords(data)
	if err != nil {
		return err
	}
	c.Load(boxes)
	return nil
}

func (c *Collection) setCorner(corner Corner) {
	if !c.editSet {
		return
	}
	c.editCorner = corner
}

// edited returns a pointer to the selected box, or nil.
func (c *Collection) edited() *Box {
	if !c.editSet || !c.inRange(c.editIndex) {
		return nil
	}
	return &c.boxes[c.editIndex]
}

func (c *Collection) clearEdit() {
	c.editIndex, c.editSet, c.editCorner = -1, false, CornerNone
}

func (c *Collection) inRange(idx int) bool { return idx >= 0 && idx < len(c.boxes) }
