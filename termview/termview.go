// Package termview previews a monochrome LCD frame on a terminal using ANSI colors.
//
// Handy while the panel is not wired yet: the demo mirrors every flushed frame here.
package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/BeatGlow/st7565/pixel"
)

// Colors of a typical yellow-green STN panel.
var (
	DefaultOn  = color.NRGBA{R: 0x20, G: 0x28, B: 0x10, A: 0xFF}
	DefaultOff = color.NRGBA{R: 0x9C, G: 0xB0, B: 0x3C, A: 0xFF}
)

// Opts represents the options available for the view.
type Opts struct {
	Width  int
	Height int

	// Palette used to pick the terminal colors, ansi256.Default if nil.
	Palette *ansi256.Palette

	// On and Off are the lit and dark pixel colors, DefaultOn and DefaultOff if zero.
	On  color.NRGBA
	Off color.NRGBA

	// W receives the output, colorable stdout if nil.
	W io.Writer
}

// Dev is an LCD emulator writing to a terminal.
type Dev struct {
	w      io.Writer
	frame  *pixel.MonoVerticalLSBImage
	icons  []byte
	on     string
	off    string
	drawn  int
	buf    bytes.Buffer
	halted bool
}

// New returns a view of a w×h panel with an icon row of the same width.
func New(opts *Opts) *Dev {
	var (
		p   = opts.Palette
		on  = opts.On
		off = opts.Off
	)
	if p == nil {
		p = ansi256.Default
	}
	if on == (color.NRGBA{}) {
		on = DefaultOn
	}
	if off == (color.NRGBA{}) {
		off = DefaultOff
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:     w,
		frame: pixel.NewMonoVerticalLSBImage(opts.Width, opts.Height),
		icons: make([]byte, opts.Width),
		on:    p.Block(on),
		off:   p.Block(off),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermView %dx%d", d.frame.Rect.Dx(), d.frame.Rect.Dy())
}

// Halt implements conn.Resource. It resets the terminal colors.
func (d *Dev) Halt() error {
	d.halted = true
	_, err := io.WriteString(d.w, "\033[0m\n")
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return pixel.MonoModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Bounds()
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	stddraw.Draw(d.frame, r, src, sp, stddraw.Src)
	return d.refresh()
}

// Show copies a page-packed frame and the icon row, then redraws.
func (d *Dev) Show(frame, icons []byte) error {
	copy(d.frame.Pix, frame)
	copy(d.icons, icons)
	return d.refresh()
}

func (d *Dev) block(on bool) string {
	if on {
		return d.on
	}
	return d.off
}

func (d *Dev) refresh() error {
	w, h := d.frame.Rect.Dx(), d.frame.Rect.Dy()

	d.buf.Reset()
	if d.drawn > 0 && !d.halted {
		// Overwrite the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", d.drawn)
	}
	d.halted = false

	d.buf.WriteString("\r\033[0m")
	for x := 0; x < w; x++ {
		d.buf.WriteString(d.block(d.icons[x] != 0))
	}
	d.buf.WriteString("\033[0m\n")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.buf.WriteString(d.block(d.frame.Bit(x, y)))
		}
		d.buf.WriteString("\033[0m\n")
	}
	d.drawn = h + 1

	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
