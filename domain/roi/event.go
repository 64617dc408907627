package roi

// EventKind enumerates the discrete pointer events delivered by the host.
type EventKind int

const (
	EventPrimaryClick EventKind = iota + 1
	EventSecondaryClick
	EventMiddleClick
	EventDragStart
	EventDragUpdate
	EventDragStop
)

func (k EventKind) String() string {
	switch k {
	case EventPrimaryClick:
		return "primary_click"
	case EventSecondaryClick:
		return "secondary_click"
	case EventMiddleClick:
		return "middle_click"
	case EventDragStart:
		return "drag_start"
	case EventDragUpdate:
		return "drag_update"
	case EventDragStop:
		return "drag_stop"
	default:
		return "unknown"
	}
}

// Button identifies the pointer button that produced a drag event.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}

// PointerEvent is one pointer interaction in absolute display space.
type PointerEvent struct {
	Kind   EventKind
	X, Y   float64
	Button Button
}
