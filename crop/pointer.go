package crop

import "fmt"

// EventType is the kind of a pointer or touch event.
type EventType uint8

const (
	EventPress EventType = iota + 1
	EventMove
	EventRelease
	// EventCancel is a cancelled touch.
	EventCancel
	// EventLeave is the pointer leaving the document.
	EventLeave
)

func (t EventType) String() string {
	switch t {
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	case EventCancel:
		return "cancel"
	case EventLeave:
		return "leave"
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Ends reports whether the event finishes an active gesture. Cancel and
// leave finish it exactly like a release.
func (t EventType) Ends() bool {
	return t == EventRelease || t == EventCancel || t == EventLeave
}

// Target is the element a press landed on.
type Target uint8

const (
	TargetNone Target = iota
	// TargetMedia is the image outside the current selection.
	TargetMedia
	// TargetSelection is the selection body or one of its handles.
	TargetSelection
)

// Event is a mouse or touch event as delivered by the presentation layer.
type Event struct {
	Type   EventType
	Target Target
	// Ord is the handle tag of the pressed element; OrdMove for the body.
	Ord   Ord
	PageX float64
	PageY float64
	// Touches holds the page positions of the active touches of a touch
	// event. It is empty for mouse events.
	Touches []Point
}

// ClientPos returns the page position of ev, using the first touch for
// touch events.
func ClientPos(ev Event) Point {
	if len(ev.Touches) > 0 {
		return ev.Touches[0]
	}
	return Point{X: ev.PageX, Y: ev.PageY}
}

// Layout is what the presentation layer knows about the displayed media.
// It is read again for every event since layout can change between them.
type Layout interface {
	// MediaSize returns the displayed, not natural, size of the media.
	MediaSize() Media
	// MediaOffset returns the page position of the media's top-left corner.
	MediaOffset() Point
}

// StaticLayout is a Layout with fixed values that the host updates in place.
type StaticLayout struct {
	Size   Media
	Offset Point
}

func (l *StaticLayout) MediaSize() Media   { return l.Size }
func (l *StaticLayout) MediaOffset() Point { return l.Offset }
