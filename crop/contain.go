package crop

// Contain fits next inside the media bounds, keeping its aspect ratio when
// one is set. prev is the crop before this change and decides which edge stays
// pinned when a locked aspect forces a shrink. The result is in pixels.
//
// Without an aspect the top edge is never clipped, only the bottom overflow.
func Contain(prev, next Rect, m Media) Rect {
	pixel := ToPixel(next, m)
	prevPixel := ToPixel(prev, m)
	contained := pixel

	if pixel.Aspect == 0 {
		if contained.X < 0 {
			contained.Width = max(contained.Width+contained.X, 0)
			contained.X = 0
		}
		if contained.X+contained.Width > m.Width {
			contained.Width = max(m.Width-contained.X, 0)
		}
		if contained.Y+contained.Height > m.Height {
			contained.Height = max(m.Height-contained.Y, 0)
			contained.Y = min(contained.Y, m.Height-contained.Height)
		}
		return contained
	}

	adjustedForX := false
	if contained.X < 0 {
		contained.Width = max(contained.Width+contained.X, 0)
		contained.X = 0
		adjustedForX = true
	}
	if contained.X+contained.Width > m.Width {
		contained.Width = max(m.Width-contained.X, 0)
		adjustedForX = true
	}
	if adjustedForX {
		contained.Height = contained.Width / pixel.Aspect
		// Sizing upwards: keep the bottom edge where it was.
		if prevPixel.Y > contained.Y {
			contained.Y = pixel.Y + (pixel.Height - contained.Height)
		}
	}

	beforeY := contained
	if contained.Y+contained.Height > m.Height {
		contained.Height = max(m.Height-contained.Y, 0)
		contained.Width = contained.Height * pixel.Aspect
		// A crop starting below the media collapses onto its bottom edge.
		contained.Y = min(contained.Y, m.Height-contained.Height)
		// Sizing leftwards: keep the right edge where it was.
		if prevPixel.X > contained.X {
			contained.X = beforeY.X + (beforeY.Width - contained.Width)
		}
	}

	return contained
}

// Resolve pulls a crop that overflows m back to the origin and shrinks it to
// fit. It is meant for a crop set before the media size was known.
func Resolve(r Rect, m Media) Rect {
	pixel := ToPixel(r, m)
	widthOverflows := pixel.X+pixel.Width > m.Width
	heightOverflows := pixel.Y+pixel.Height > m.Height

	if widthOverflows {
		pixel.X = 0
		pixel.Width = min(pixel.Width, m.Width)
	}
	if heightOverflows {
		pixel.Y = 0
		pixel.Height = min(pixel.Height, m.Height)
	}
	return pixel
}
