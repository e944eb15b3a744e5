package crop

import "math"

// Limits bounds the size a resize may produce. A zero maximum falls back to
// the media dimension on that axis.
type Limits struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64
}

func (l Limits) maxWidth(m Media) float64 {
	if l.MaxWidth == 0 {
		return m.Width
	}
	return l.MaxWidth
}

func (l Limits) maxHeight(m Media) float64 {
	if l.MaxHeight == 0 {
		return m.Height
	}
	return l.MaxHeight
}

type crossing uint8

const (
	crossingUnknown crossing = iota
	crossingNo
	crossingYes
)

func crossingOf(crossed bool) crossing {
	if crossed {
		return crossingYes
	}
	return crossingNo
}

// Session is the state of one drag gesture. It is a value: Move returns the
// next session instead of mutating the receiver.
type Session struct {
	// ID correlates log lines of one gesture.
	ID     string
	Ord    Ord
	Resize bool

	ClientStart Point

	// StartX and StartY are the corner that stays fixed while resizing,
	// i.e. the one opposite the grabbed handle.
	StartX      float64
	StartY      float64
	StartWidth  float64
	StartHeight float64

	XInversed bool
	YInversed bool

	XCrossOver      bool
	YCrossOver      bool
	StartXCrossOver bool
	StartYCrossOver bool

	// SwapX and SwapY report that the grabbed handle now acts as its mirror
	// on that axis.
	SwapX bool
	SwapY bool

	XDiff float64
	YDiff float64

	// CropOffset is the page position of the selection's top-left corner.
	// It is only captured for aspect locked corner resizes.
	CropOffset Point
	HasOffset  bool

	lastY crossing
}

// Begin starts a gesture on the existing pixel crop px. OrdMove translates the
// crop; any handle resizes it. mediaOffset is the page position of the
// media's top-left corner.
func Begin(px Rect, ord Ord, pos, mediaOffset Point) Session {
	xInversed, yInversed := ord.xInversed(), ord.yInversed()

	s := Session{
		Ord:             ord,
		Resize:          ord != OrdMove,
		ClientStart:     pos,
		StartX:          px.X,
		StartY:          px.Y,
		StartWidth:      px.Width,
		StartHeight:     px.Height,
		XInversed:       xInversed,
		YInversed:       yInversed,
		XCrossOver:      xInversed,
		YCrossOver:      yInversed,
		StartXCrossOver: xInversed,
		StartYCrossOver: yInversed,
	}
	if xInversed {
		s.StartX = px.X + px.Width
	}
	if yInversed {
		s.StartY = px.Y + px.Height
	}
	if px.Aspect != 0 && ord.Diagonal() {
		s.CropOffset = Point{X: mediaOffset.X + px.X, Y: mediaOffset.Y + px.Y}
		s.HasOffset = true
	}
	return s
}

// BeginDraw starts drawing a new selection from the zero-size pixel crop px,
// dragging its bottom-right corner out of the press position.
func BeginDraw(px Rect, pos Point) Session {
	return Session{
		Ord:         OrdNW,
		Resize:      true,
		ClientStart: pos,
		StartX:      px.X,
		StartY:      px.Y,
		StartWidth:  px.Width,
		StartHeight: px.Height,
	}
}

// Move applies the pointer position pos to the crop cur and returns the
// updated session with the next pixel crop. The crop is returned unchanged
// when an aspect locked corner drag started from a zero-width selection.
func (s Session) Move(cur Rect, pos Point, m Media, lim Limits) (Session, Rect) {
	cur = ToPixel(cur, m)

	if s.Resize && cur.Aspect != 0 && s.HasOffset {
		if s.StartWidth == 0 {
			return s, cur
		}
		pos.Y = s.straightenY(pos.X)
	}

	s.XDiff = pos.X - s.ClientStart.X
	s.YDiff = pos.Y - s.ClientStart.Y

	if !s.Resize {
		return s, s.translate(cur, m)
	}
	return s.resize(cur, m, lim)
}

// straightenY projects x onto the selection's diagonal so a corner drag
// stays proportional wherever the pointer drifts.
func (s Session) straightenY(x float64) float64 {
	var k, d float64
	if s.Ord == OrdNW || s.Ord == OrdSE {
		k = s.StartHeight / s.StartWidth
		d = s.CropOffset.Y - s.CropOffset.X*k
	} else {
		k = -s.StartHeight / s.StartWidth
		d = s.CropOffset.Y + (s.StartHeight - s.CropOffset.X*k)
	}
	return k*x + d
}

func (s Session) translate(cur Rect, m Media) Rect {
	next := cur
	next.X = Clamp(s.StartX+s.XDiff, 0, m.Width-cur.Width)
	next.Y = Clamp(s.StartY+s.YDiff, 0, m.Height-cur.Height)
	return next
}

func (s Session) resize(cur Rect, m Media, lim Limits) (Session, Rect) {
	// Handles on the far side grow against the axis; shift the diff so the
	// same arithmetic applies.
	if s.XInversed {
		s.XDiff -= s.StartWidth * 2
	}
	if s.YInversed {
		s.YDiff -= s.StartHeight * 2
	}

	width, height := s.newSize(cur.Aspect, m, lim)

	x, y := s.StartX, s.StartY
	if s.XCrossOver {
		x = cur.X + (cur.Width - width)
	}
	if s.YCrossOver {
		if s.lastY == crossingNo {
			// Crossed on this move: grow up from the collapsed edge.
			y = cur.Y - height
		} else {
			y = cur.Y + (cur.Height - height)
		}
	}

	contained := Contain(cur, Rect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Unit:   UnitPixel,
		Aspect: cur.Aspect,
	}, m)

	next := cur
	switch {
	case cur.Aspect != 0 || s.Ord.Diagonal():
		next.X = contained.X
		next.Y = contained.Y
		next.Width = contained.Width
		next.Height = contained.Height
	case s.Ord.Horizontal():
		next.X = contained.X
		next.Width = contained.Width
	case s.Ord.Vertical():
		next.Y = contained.Y
		next.Height = contained.Height
	}

	s.lastY = crossingOf(s.YCrossOver)
	return s.CrossOver(lim), next
}

func (s Session) newSize(aspect float64, m Media, lim Limits) (width, height float64) {
	width = s.StartWidth + s.XDiff
	if s.XCrossOver {
		width = math.Abs(width)
	}
	width = Clamp(width, lim.MinWidth, lim.maxWidth(m))

	if aspect != 0 {
		height = width / aspect
	} else {
		height = s.StartHeight + s.YDiff
	}
	if s.YCrossOver {
		// Never taller than the room between the fixed edge and the top.
		height = min(math.Abs(height), s.StartY)
	}
	height = Clamp(height, lim.MinHeight, lim.maxHeight(m))

	if aspect != 0 {
		width = Clamp(height*aspect, 0, m.Width)
	}
	return width, height
}
