package draw

import (
	"fmt"

	"github.com/BeatGlow/st7565/pixel"
)

// BitmapMode is the byte layout of bitmap data.
type BitmapMode uint8

// Bitmap layouts.
const (
	// Vertical bitmaps are stored in pages of 8 rows, one byte per column, LSB on top. This is the
	// native layout of the controller.
	Vertical BitmapMode = iota

	// Horizontal bitmaps are stored row by row, MSB leftmost.
	Horizontal
)

func (m BitmapMode) String() string {
	switch m {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("BitmapMode(%d)", uint8(m))
	}
}

// Bitmap draws a w×h bitmap with its top left corner at (x,y). Set bits are drawn with fg, clear
// bits with bg. Nothing is drawn when an error is returned.
func Bitmap(dst Surface, x, y int, data []byte, w, h int, fg, bg pixel.Color, mode BitmapMode) error {
	if data == nil {
		return ErrNullBitmapData
	}

	sw, sh := dst.Size()
	if w <= 0 || h <= 0 || x >= sw || y >= sh || x+w <= 0 || y+h <= 0 {
		return fmt.Errorf("%w: %dx%d at (%d,%d)", ErrBitmapOutOfScreenBounds, w, h, x, y)
	}
	if w > sw || h > sh {
		return fmt.Errorf("%w: %dx%d on %dx%d", ErrBitmapLargerThanSurface, w, h, sw, sh)
	}

	var (
		bit func(i, j int) bool
		err error
	)
	switch mode {
	case Horizontal:
		if w%8 != 0 {
			return fmt.Errorf("%w: width %d", ErrBitmapHorizontalSizeInvalid, w)
		}
		var img *pixel.MonoImage
		if img, err = pixel.WrapMonoImage(data, w, h); err == nil {
			bit = img.Bit
		}
	default:
		if h%8 != 0 {
			return fmt.Errorf("%w: height %d", ErrBitmapVerticalSizeInvalid, h)
		}
		var img *pixel.MonoVerticalLSBImage
		if img, err = pixel.WrapMonoVerticalLSBImage(data, w, h); err == nil {
			bit = img.Bit
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBitmapDataShort, err)
	}

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if bit(i, j) {
				dst.SetPixel(x+i, y+j, fg)
			} else {
				dst.SetPixel(x+i, y+j, bg)
			}
		}
	}
	return nil
}
