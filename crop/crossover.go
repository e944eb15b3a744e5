package crop

import "math"

// CrossOver flips the cross-over flag of each axis whose accumulated diff
// has pushed the grabbed edge through the opposite one, then records which
// axes now act mirrored. An axis with a minimum size never crosses over.
func (s Session) CrossOver(lim Limits) Session {
	if lim.MinWidth == 0 && crosses(s.XCrossOver, s.StartWidth, s.XDiff) {
		s.XCrossOver = !s.XCrossOver
	}
	if lim.MinHeight == 0 && crosses(s.YCrossOver, s.StartHeight, s.YDiff) {
		s.YCrossOver = !s.YCrossOver
	}

	s.SwapX = s.XCrossOver != s.StartXCrossOver
	s.SwapY = s.YCrossOver != s.StartYCrossOver
	return s
}

func crosses(crossed bool, size, diff float64) bool {
	edge := -math.Abs(size) - diff
	if crossed {
		return edge <= 0
	}
	return edge >= 0
}

// InversedXOrd returns the handle the gesture visually acts as after crossing
// over on the x axis. ok is false while the x axis is not swapped.
func (s Session) InversedXOrd() (ord Ord, ok bool) {
	if !s.SwapX {
		return s.Ord, false
	}
	return s.Ord.Inverse(), true
}

// InversedYOrd is InversedXOrd for the y axis.
func (s Session) InversedYOrd() (ord Ord, ok bool) {
	if !s.SwapY {
		return s.Ord, false
	}
	return s.Ord.Inverse(), true
}
