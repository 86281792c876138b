// Package framebuffer provides the in-memory pixel buffers of a page addressed LCD.
//
// A [Screen] is a rectangular region of the panel backed by a page-packed buffer: byte x of page p
// holds rows p*8 to p*8+7 of column x, least significant bit on top. Screens carry their panel
// offset, so several screens may cover different regions of one panel, or share one backing buffer.
//
// The [IconStrip] is the separate 8 pixel high row of status pictograms found on ST7565 and UC1609
// glass, driven from its own buffer.
package framebuffer

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/BeatGlow/st7565/pixel"
)

// Errors
var (
	ErrSize   = errors.New("framebuffer: height must be a non-zero multiple of 8")
	ErrOffset = errors.New("framebuffer: vertical offset must be page aligned")
)

// PageHeight is the number of pixel rows packed into one byte.
const PageHeight = 8

// Screen is a page-packed 1-bit buffer for a region of the panel.
type Screen struct {
	*pixel.MonoVerticalLSBImage

	// X is the panel column of the leftmost pixel.
	X int

	// Y is the panel row of the topmost pixel, a multiple of PageHeight.
	Y int
}

// New allocates a w×h screen at the panel origin.
func New(w, h int) (*Screen, error) {
	return NewAt(w, h, 0, 0)
}

// NewAt allocates a w×h screen whose top left pixel is panel pixel (x, y).
func NewAt(w, h, x, y int) (*Screen, error) {
	if err := checkGeometry(w, h, y); err != nil {
		return nil, err
	}
	return &Screen{
		MonoVerticalLSBImage: pixel.NewMonoVerticalLSBImage(w, h),
		X:                    x,
		Y:                    y,
	}, nil
}

// Wrap uses pix as backing storage for a w×h screen at panel pixel (x, y). Screens wrapping the
// same slice share their pixels.
func Wrap(pix []byte, w, h, x, y int) (*Screen, error) {
	if err := checkGeometry(w, h, y); err != nil {
		return nil, err
	}
	i, err := pixel.WrapMonoVerticalLSBImage(pix, w, h)
	if err != nil {
		return nil, fmt.Errorf("framebuffer: %dx%d screen: %w", w, h, err)
	}
	return &Screen{
		MonoVerticalLSBImage: i,
		X:                    x,
		Y:                    y,
	}, nil
}

func checkGeometry(w, h, y int) error {
	if w <= 0 || h <= 0 || h%PageHeight != 0 {
		return ErrSize
	}
	if y%PageHeight != 0 {
		return ErrOffset
	}
	return nil
}

func (s *Screen) String() string {
	return fmt.Sprintf("screen %dx%d at (%d,%d)", s.Width(), s.Height(), s.X, s.Y)
}

// Width in pixels.
func (s *Screen) Width() int { return s.Rect.Dx() }

// Height in pixels.
func (s *Screen) Height() int { return s.Rect.Dy() }

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.Rect.Dx(), s.Rect.Dy()
}

// SetPixel applies c to the pixel at (x, y). Pixels outside the screen are ignored.
func (s *Screen) SetPixel(x, y int, c pixel.Color) {
	s.SetBit(x, y, c)
}

// FirstPage is the panel page that holds the first row of the screen.
func (s *Screen) FirstPage() int {
	return s.Y / PageHeight
}

// IconStrip is the status icon row. Each byte drives one column segment of a pictogram, so icons
// are switched by writing 0x00 or 0xFF at fixed offsets.
type IconStrip struct {
	*pixel.MonoVerticalLSBImage
}

// NewIconStrip allocates an icon row w segments wide.
func NewIconStrip(w int) *IconStrip {
	return &IconStrip{
		MonoVerticalLSBImage: pixel.NewMonoVerticalLSBImage(w, PageHeight),
	}
}

// Width is the number of segments.
func (s *IconStrip) Width() int { return len(s.Pix) }

// SetSegment lights (0xFF) or clears (0x00) the segment at offset. Offsets outside the strip are
// ignored.
func (s *IconStrip) SetSegment(offset int, on bool) {
	if offset < 0 || offset >= len(s.Pix) {
		return
	}
	if on {
		s.Pix[offset] = 0xFF
	} else {
		s.Pix[offset] = 0x00
	}
}

// Segment reports if the segment at offset is lit.
func (s *IconStrip) Segment(offset int) bool {
	if offset < 0 || offset >= len(s.Pix) {
		return false
	}
	return s.Pix[offset] != 0x00
}

// FillColor sets all segments on or off.
func (s *IconStrip) FillColor(c pixel.Color) {
	switch c {
	case pixel.Foreground:
		s.Fill(color.White)
	case pixel.Background:
		s.Clear()
	case pixel.Invert:
		s.Invert()
	}
}
