package crop

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Keyboard nudge distances in pixels.
const (
	NudgeStep      = 0.2
	NudgeStepLarge = 2
)

// Arrow keys understood by KeyDown.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
)

// Config configures a Cropper. Every callback is optional.
type Config struct {
	Limits

	// Disabled ignores all input.
	Disabled bool
	// Locked prevents drawing, moving or resizing the selection with the
	// pointer.
	Locked bool
	// KeepSelection prevents drawing a new selection over a valid one.
	KeepSelection bool

	// OnChange receives the crop after every change, in both units.
	OnChange func(pixel, percent Rect)
	// OnComplete receives the final crop of a gesture or nudge.
	OnComplete  func(pixel, percent Rect)
	OnDragStart func(ev Event)
	OnDragEnd   func(ev Event)

	Logger *zerolog.Logger
}

// State is the gesture state of a Cropper.
type State uint8

const (
	StateIdle State = iota
	StateTranslating
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateTranslating:
		return "translating"
	case StateResizing:
		return "resizing"
	}
	return "idle"
}

// KeyEvent is a key press forwarded by the presentation layer.
type KeyEvent struct {
	Key   string
	Shift bool
}

// Cropper runs the drag gestures of a single crop selection. It owns the
// current crop and at most one active gesture. Its methods must be called
// from one goroutine, the one delivering input events.
type Cropper struct {
	cfg    Config
	layout Layout
	doc    *Document
	logger *zerolog.Logger

	crop        Rect
	session     Session
	active      bool
	dragStarted bool
	drawing     bool
	capture     *Capture
}

// New returns an idle Cropper. Move and end events reach it through doc
// while a gesture is active.
func New(cfg Config, layout Layout, doc *Document) *Cropper {
	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Cropper{
		cfg:    cfg,
		layout: layout,
		doc:    doc,
		logger: logger,
	}
}

// Crop returns the current crop.
func (c *Cropper) Crop() Rect { return c.crop }

// SetCrop replaces the current crop without emitting anything.
func (c *Cropper) SetCrop(r Rect) { c.crop = r }

// State returns the gesture state.
func (c *Cropper) State() State {
	switch {
	case !c.active:
		return StateIdle
	case c.session.Resize:
		return StateResizing
	}
	return StateTranslating
}

// Session returns the active gesture session, if any.
func (c *Cropper) Session() (Session, bool) { return c.session, c.active }

// Drawing reports whether the active gesture draws a new selection.
func (c *Cropper) Drawing() bool { return c.active && c.drawing }

// PointerDown starts a gesture for a press on the media or the selection and
// reports whether one started.
func (c *Cropper) PointerDown(ev Event) bool {
	if c.cfg.Disabled || ev.Type != EventPress {
		return false
	}
	if c.active {
		c.logger.Debug().Str("session", c.session.ID).Msg("press ignored, gesture already active")
		return false
	}

	switch ev.Target {
	case TargetMedia:
		return c.startDraw(ev)
	case TargetSelection:
		return c.startSelection(ev)
	}
	return false
}

func (c *Cropper) startDraw(ev Event) bool {
	if c.cfg.Locked || (c.cfg.KeepSelection && c.crop.Valid()) {
		return false
	}

	pos := ClientPos(ev)
	offset := c.layout.MediaOffset()
	next := Rect{
		X:      pos.X - offset.X,
		Y:      pos.Y - offset.Y,
		Unit:   UnitPixel,
		Aspect: c.crop.Aspect,
	}

	c.crop = next
	c.begin(BeginDraw(next, pos))
	c.drawing = true
	c.emitChange(next)
	return true
}

func (c *Cropper) startSelection(ev Event) bool {
	if c.cfg.Locked || !c.crop.Valid() {
		return false
	}

	px := ToPixel(c.crop, c.layout.MediaSize())
	c.begin(Begin(px, ev.Ord, ClientPos(ev), c.layout.MediaOffset()))
	return true
}

func (c *Cropper) begin(s Session) {
	s.ID = uuid.NewString()
	c.session = s
	c.active = true
	c.capture = c.doc.Listen(c.pointerMove, c.pointerEnd)

	c.logger.Debug().
		Str("session", s.ID).
		Stringer("ord", s.Ord).
		Bool("resize", s.Resize).
		Stringer("crop", c.crop).
		Msg("gesture started")
}

func (c *Cropper) pointerMove(ev Event) {
	if !c.active {
		return
	}

	if !c.dragStarted {
		c.dragStarted = true
		if fn := c.cfg.OnDragStart; fn != nil {
			fn(ev)
		}
	}

	media := c.layout.MediaSize()
	session, next := c.session.Move(c.crop, ClientPos(ev), media, c.cfg.Limits)
	c.session = session
	if next == ToPixel(c.crop, media) {
		return
	}

	c.crop = next
	c.emitChange(next)
}

func (c *Cropper) pointerEnd(ev Event) {
	if !c.active {
		return
	}

	capture := c.capture
	defer capture.Release()

	c.active = false
	c.dragStarted = false
	c.drawing = false
	c.capture = nil

	c.logger.Debug().
		Str("session", c.session.ID).
		Stringer("event", ev.Type).
		Stringer("crop", c.crop).
		Msg("gesture ended")

	if fn := c.cfg.OnDragEnd; fn != nil {
		fn(ev)
	}
	c.emitComplete(c.crop)
}

// Close abandons an active gesture without emitting anything and detaches
// its listeners.
func (c *Cropper) Close() {
	if !c.active {
		return
	}
	c.capture.Release()
	c.capture = nil
	c.active = false
	c.dragStarted = false
	c.drawing = false
}

// KeyDown nudges a valid crop with the arrow keys and reports whether the
// key was handled.
func (c *Cropper) KeyDown(ev KeyEvent) bool {
	if c.cfg.Disabled || !c.crop.Valid() {
		return false
	}

	step := NudgeStep
	if ev.Shift {
		step = NudgeStepLarge
	}

	media := c.layout.MediaSize()
	next := ToPixel(c.crop, media)
	switch ev.Key {
	case KeyArrowLeft:
		next.X -= step
	case KeyArrowRight:
		next.X += step
	case KeyArrowUp:
		next.Y -= step
	case KeyArrowDown:
		next.Y += step
	default:
		return false
	}

	next.X = Clamp(next.X, 0, media.Width-next.Width)
	next.Y = Clamp(next.Y, 0, media.Height-next.Height)

	c.crop = next
	c.emitChange(next)
	c.emitComplete(next)
	return true
}

// MediaLoaded fits the current crop into freshly loaded media, emitting a
// change and a completion when it had to move.
func (c *Cropper) MediaLoaded() {
	if !c.crop.Valid() {
		return
	}

	media := c.layout.MediaSize()
	resolved := Resolve(c.crop, media)
	if resolved == ToPixel(c.crop, media) {
		return
	}

	c.logger.Debug().Stringer("from", c.crop).Stringer("to", resolved).Msg("crop resolved to media")
	c.crop = resolved
	c.emitChange(resolved)
	c.emitComplete(resolved)
}

func (c *Cropper) emitChange(r Rect) {
	if fn := c.cfg.OnChange; fn != nil {
		media := c.layout.MediaSize()
		fn(ToPixel(r, media), ToPercent(r, media))
	}
}

func (c *Cropper) emitComplete(r Rect) {
	if fn := c.cfg.OnComplete; fn != nil {
		media := c.layout.MediaSize()
		fn(ToPixel(r, media), ToPercent(r, media))
	}
}
