package crop

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tolerance*max(1, math.Abs(a), math.Abs(b))
}

func rectApprox(a, b Rect) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) &&
		approx(a.Width, b.Width) && approx(a.Height, b.Height) &&
		a.Unit == b.Unit && approx(a.Aspect, b.Aspect)
}

func assertRect(t *testing.T, got, want Rect) {
	t.Helper()
	if !rectApprox(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
