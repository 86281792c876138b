// Package draw rasterizes shapes, bitmaps, images and text onto a 1-bit surface.
//
// Every primitive is expressed in SetPixel calls on a [Surface]; pixels outside the surface are
// silently clipped by the surface, so shapes may extend past the edges.
package draw

import (
	"errors"
	"image"
	stddraw "image/draw"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/BeatGlow/st7565/pixel"
)

// Errors
var (
	ErrWrongFont                   = errors.New("draw: operation does not match the font family")
	ErrCharOutOfScreenBounds       = errors.New("draw: character is outside the surface")
	ErrCharOutOfFontRange          = errors.New("draw: character is not in the font")
	ErrNullCharacterArray          = errors.New("draw: nil text")
	ErrNullBitmapData              = errors.New("draw: nil bitmap data")
	ErrBitmapOutOfScreenBounds     = errors.New("draw: bitmap is outside the surface")
	ErrBitmapLargerThanSurface     = errors.New("draw: bitmap is larger than the surface")
	ErrBitmapVerticalSizeInvalid   = errors.New("draw: vertical bitmap height is not a multiple of 8")
	ErrBitmapHorizontalSizeInvalid = errors.New("draw: horizontal bitmap width is not a multiple of 8")
	ErrBitmapDataShort             = errors.New("draw: bitmap data is shorter than its size")
)

// Surface is a 1-bit drawing target.
type Surface interface {
	// SetPixel applies c to the pixel at (x, y), ignoring pixels outside the surface.
	SetPixel(x, y int, c pixel.Color)

	// Size returns the surface dimensions.
	Size() (w, h int)
}

// Image composites the part of src starting at sp onto the rectangle r of dst. Lit source pixels
// are drawn as Foreground, dark ones as Background.
func Image(dst Surface, r image.Rectangle, src image.Image, sp image.Point) {
	w, h := dst.Size()
	clip := r.Intersect(image.Rect(0, 0, w, h))
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			p := image.Pt(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)
			if !p.In(src.Bounds()) {
				continue
			}
			dst.SetPixel(x, y, pixel.ColorOf(src.At(p.X, p.Y)))
		}
	}
}

var ditherPalette = color.Palette{color.Black, color.White}

// ScaledImage scales src to fit r and composites it onto dst. With dither set the gray levels are
// error-diffused, otherwise they are thresholded.
func ScaledImage(dst Surface, r image.Rectangle, src image.Image, dither bool) {
	gray := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.BiLinear.Scale(gray, gray.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	if !dither {
		Image(dst, r, gray, image.Point{})
		return
	}
	mono := image.NewPaletted(gray.Bounds(), ditherPalette)
	stddraw.FloydSteinberg.Draw(mono, mono.Bounds(), gray, image.Point{})
	Image(dst, r, mono, image.Point{})
}
