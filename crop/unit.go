package crop

// ToPercent converts r to percentages of m. A rectangle already in percent is
// returned unchanged.
func ToPercent(r Rect, m Media) Rect {
	if r.Unit == UnitPercent {
		return r
	}

	return Rect{
		X:      r.X / m.Width * 100,
		Y:      r.Y / m.Height * 100,
		Width:  r.Width / m.Width * 100,
		Height: r.Height / m.Height * 100,
		Unit:   UnitPercent,
		Aspect: r.Aspect,
	}
}

// ToPixel converts r to pixels of m. A rectangle without a unit is stamped as
// pixels without scaling.
func ToPixel(r Rect, m Media) Rect {
	switch r.Unit {
	case UnitNone:
		r.Unit = UnitPixel
		return r
	case UnitPixel:
		return r
	}

	return Rect{
		X:      r.X * m.Width / 100,
		Y:      r.Y * m.Height / 100,
		Width:  r.Width * m.Width / 100,
		Height: r.Height * m.Height / 100,
		Unit:   UnitPixel,
		Aspect: r.Aspect,
	}
}
