package draw

import "github.com/BeatGlow/st7565/pixel"

// Pixel sets a single pixel.
func Pixel(dst Surface, x, y int, c pixel.Color) {
	dst.SetPixel(x, y, c)
}

// Line draws a line between (x0,y0) and (x1,y1), both ends included.
func Line(dst Surface, x0, y0, x1, y1 int, c pixel.Color) {
	bresenham(dst, x0, y0, x1, y1, c)
}

// HLine draws a horizontal line of w pixels starting at (x,y).
func HLine(dst Surface, x, y, w int, c pixel.Color) {
	if w <= 0 {
		return
	}
	bresenham(dst, x, y, x+w-1, y, c)
}

// VLine draws a vertical line of h pixels starting at (x,y).
func VLine(dst Surface, x, y, h int, c pixel.Color) {
	if h <= 0 {
		return
	}
	bresenham(dst, x, y, x, y+h-1, c)
}

// Rect draws the outline of a w×h rectangle with its top left corner at (x,y).
func Rect(dst Surface, x, y, w, h int, c pixel.Color) {
	HLine(dst, x, y, w, c)
	HLine(dst, x, y+h-1, w, c)
	VLine(dst, x, y, h, c)
	VLine(dst, x+w-1, y, h, c)
}

// FillRect draws a filled w×h rectangle.
func FillRect(dst Surface, x, y, w, h int, c pixel.Color) {
	for i := x; i < x+w; i++ {
		VLine(dst, i, y, h, c)
	}
}

// Fill paints the whole surface.
func Fill(dst Surface, c pixel.Color) {
	w, h := dst.Size()
	FillRect(dst, 0, 0, w, h, c)
}

// Circle draws a circle outline of radius r around (x0,y0).
func Circle(dst Surface, x0, y0, r int, c pixel.Color) {
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)

	dst.SetPixel(x0, y0+r, c)
	dst.SetPixel(x0, y0-r, c)
	dst.SetPixel(x0+r, y0, c)
	dst.SetPixel(x0-r, y0, c)

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		dst.SetPixel(x0+x, y0+y, c)
		dst.SetPixel(x0-x, y0+y, c)
		dst.SetPixel(x0+x, y0-y, c)
		dst.SetPixel(x0-x, y0-y, c)
		dst.SetPixel(x0+y, y0+x, c)
		dst.SetPixel(x0-y, y0+x, c)
		dst.SetPixel(x0+y, y0-x, c)
		dst.SetPixel(x0-y, y0-x, c)
	}
}

// Corners of a quarter circle, as used by CircleHelper.
const (
	TopLeft     = 1
	TopRight    = 2
	BottomRight = 4
	BottomLeft  = 8
)

// CircleHelper draws the quarter circle outlines selected by the corner mask.
func CircleHelper(dst Surface, x0, y0, r, corner int, c pixel.Color) {
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if corner&BottomRight != 0 {
			dst.SetPixel(x0+x, y0+y, c)
			dst.SetPixel(x0+y, y0+x, c)
		}
		if corner&TopRight != 0 {
			dst.SetPixel(x0+x, y0-y, c)
			dst.SetPixel(x0+y, y0-x, c)
		}
		if corner&BottomLeft != 0 {
			dst.SetPixel(x0-y, y0+x, c)
			dst.SetPixel(x0-x, y0+y, c)
		}
		if corner&TopLeft != 0 {
			dst.SetPixel(x0-y, y0-x, c)
			dst.SetPixel(x0-x, y0-y, c)
		}
	}
}

// Halves of a filled circle, as used by FillCircleHelper.
const (
	RightHalf = 1
	LeftHalf  = 2
)

// FillCircleHelper fills the circle halves selected by the side mask. Every vertical span is
// stretched by delta pixels, which is how FillRoundRect joins its corners.
func FillCircleHelper(dst Surface, x0, y0, r, side, delta int, c pixel.Color) {
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if side&RightHalf != 0 {
			VLine(dst, x0+x, y0-y, 2*y+1+delta, c)
			VLine(dst, x0+y, y0-x, 2*x+1+delta, c)
		}
		if side&LeftHalf != 0 {
			VLine(dst, x0-x, y0-y, 2*y+1+delta, c)
			VLine(dst, x0-y, y0-x, 2*x+1+delta, c)
		}
	}
}

// FillCircle draws a filled circle of radius r around (x0,y0).
func FillCircle(dst Surface, x0, y0, r int, c pixel.Color) {
	VLine(dst, x0, y0-r, 2*r+1, c)
	FillCircleHelper(dst, x0, y0, r, RightHalf|LeftHalf, 0, c)
}

// Triangle draws a triangle outline.
func Triangle(dst Surface, x0, y0, x1, y1, x2, y2 int, c pixel.Color) {
	Line(dst, x0, y0, x1, y1, c)
	Line(dst, x1, y1, x2, y2, c)
	Line(dst, x2, y2, x0, y0, c)
}

// FillTriangle draws a filled triangle using horizontal spans.
func FillTriangle(dst Surface, x0, y0, x1, y1, x2, y2 int, c pixel.Color) {
	// Sort by y, y0 <= y1 <= y2.
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	if y0 == y2 {
		a, b := x0, x0
		if x1 < a {
			a = x1
		} else if x1 > b {
			b = x1
		}
		if x2 < a {
			a = x2
		} else if x2 > b {
			b = x2
		}
		HLine(dst, a, y0, b-a+1, c)
		return
	}

	var (
		dx01 = x1 - x0
		dy01 = y1 - y0
		dx02 = x2 - x0
		dy02 = y2 - y0
		dx12 = x2 - x1
		dy12 = y2 - y1
		sa   int
		sb   int
		last int
		y    int
	)

	// The upper part ends at y1 unless the lower edge is flat, in which case it includes y1.
	if y1 == y2 {
		last = y1
	} else {
		last = y1 - 1
	}

	for y = y0; y <= last; y++ {
		a := x0 + sa/dy01
		b := x0 + sb/dy02
		sa += dx01
		sb += dx02
		if a > b {
			a, b = b, a
		}
		HLine(dst, a, y, b-a+1, c)
	}

	sa = dx12 * (y - y1)
	sb = dx02 * (y - y0)
	for ; y <= y2; y++ {
		a := x1 + sa/dy12
		b := x0 + sb/dy02
		sa += dx12
		sb += dx02
		if a > b {
			a, b = b, a
		}
		HLine(dst, a, y, b-a+1, c)
	}
}

// RoundRect draws a rectangle outline with corners of radius r.
func RoundRect(dst Surface, x, y, w, h, r int, c pixel.Color) {
	HLine(dst, x+r, y, w-2*r, c)
	HLine(dst, x+r, y+h-1, w-2*r, c)
	VLine(dst, x, y+r, h-2*r, c)
	VLine(dst, x+w-1, y+r, h-2*r, c)
	CircleHelper(dst, x+r, y+r, r, TopLeft, c)
	CircleHelper(dst, x+w-r-1, y+r, r, TopRight, c)
	CircleHelper(dst, x+w-r-1, y+h-r-1, r, BottomRight, c)
	CircleHelper(dst, x+r, y+h-r-1, r, BottomLeft, c)
}

// FillRoundRect draws a filled rectangle with corners of radius r.
func FillRoundRect(dst Surface, x, y, w, h, r int, c pixel.Color) {
	FillRect(dst, x+r, y, w-2*r, h, c)
	FillCircleHelper(dst, x+w-r-1, y+r, r, RightHalf, h-2*r-1, c)
	FillCircleHelper(dst, x+r, y+r, r, LeftHalf, h-2*r-1, c)
}

// Ellipse draws an ellipse outline with radii rx and ry around (x0,y0).
func Ellipse(dst Surface, x0, y0, rx, ry int, c pixel.Color) {
	ellipse(rx, ry, func(x, y int) {
		dst.SetPixel(x0+x, y0+y, c)
		dst.SetPixel(x0-x, y0+y, c)
		dst.SetPixel(x0-x, y0-y, c)
		dst.SetPixel(x0+x, y0-y, c)
	})
}

// FillEllipse draws a filled ellipse.
func FillEllipse(dst Surface, x0, y0, rx, ry int, c pixel.Color) {
	ellipse(rx, ry, func(x, y int) {
		HLine(dst, x0-x, y0-y, 2*x+1, c)
		HLine(dst, x0-x, y0+y, 2*x+1, c)
	})
}

// ellipse walks one quadrant of the ellipse with the midpoint algorithm and calls plot for every
// step, with (x,y) relative to the center.
func ellipse(rx, ry int, plot func(x, y int)) {
	if rx < 0 || ry < 0 {
		return
	}

	var (
		rx2 = rx * rx
		ry2 = ry * ry
		fx2 = 4 * rx2
		fy2 = 4 * ry2
	)

	// Region where the slope is shallower than -1.
	for x, y, s := 0, ry, 2*ry2+rx2*(1-2*ry); ry2*x <= rx2*y; x++ {
		plot(x, y)
		if s >= 0 {
			s += fx2 * (1 - y)
			y--
		}
		s += ry2 * (4*x + 6)
	}

	// Steep region.
	for x, y, s := rx, 0, 2*rx2+ry2*(1-2*rx); rx2*y <= ry2*x; y++ {
		plot(x, y)
		if s >= 0 {
			s += fy2 * (1 - x)
			x--
		}
		s += rx2 * (4*y + 6)
	}
}

// bresenham plots every pixel of the line, walking the major axis.
func bresenham(dst Surface, x0, y0, x1, y1 int, c pixel.Color) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	var (
		dx    = x1 - x0
		dy    = abs(y1 - y0)
		e     = dx / 2
		ystep = -1
	)
	if y0 < y1 {
		ystep = 1
	}

	for ; x0 <= x1; x0++ {
		if steep {
			dst.SetPixel(y0, x0, c)
		} else {
			dst.SetPixel(x0, y0, c)
		}
		e -= dy
		if e < 0 {
			y0 += ystep
			e += dx
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
