package pixel

import (
	"fmt"
	"image/color"
)

// MonoModel is the model for 1-bit monochrome colors.
var MonoModel color.Model = color.ModelFunc(monoModel)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, _ := c.RGBA()

	// These coefficients (the fractions 0.299, 0.587 and 0.114) are the same
	// as those given by the JFIF specification and used by func RGBToYCbCr in
	// ycbcr.go.
	//
	// Note that 19595 + 38470 + 7471 equals 65536.
	//
	// The 31 is 16 + 15. The 16 is the same as used in RGBToYCbCr. The 15 is
	// because the return value is 1 bit color, not 16 bit color.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y != 0}
}

// Color is a drawing color on a 1-bit surface. It describes how a pixel write is combined with the
// pixel already in the buffer.
type Color uint8

// Drawing colors.
const (
	Background Color = iota // clear the pixel
	Foreground              // set the pixel
	Invert                  // toggle the pixel
)

func (c Color) String() string {
	switch c {
	case Background:
		return "background"
	case Foreground:
		return "foreground"
	case Invert:
		return "invert"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Apply combines the bits in mask with b.
func (c Color) Apply(b, mask byte) byte {
	switch c {
	case Foreground:
		return b | mask
	case Background:
		return b &^ mask
	case Invert:
		return b ^ mask
	default:
		return b
	}
}

// ColorOf maps any color onto Foreground (lit) or Background (dark).
func ColorOf(c color.Color) Color {
	if monoModel(c).(Mono).On {
		return Foreground
	}
	return Background
}
