package pixel

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// ErrBufferSize is returned when wrapping a byte slice that is too small for the requested image.
var ErrBufferSize = errors.New("pixel: buffer too small for image size")

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)

	// SetBit applies a drawing color to the pixel at (x, y).
	SetBit(x, y int, c Color)

	// Bit reports if the pixel at (x, y) is lit.
	Bit(x, y int) bool
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels, or pages.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// Invert toggles every pixel.
func (p *Buffer) Invert() {
	for i := range p.Pix {
		p.Pix[i] ^= 0xff
	}
}

func (p *Buffer) fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

func wrapBuffer(pix []byte, w, h, stride, size int) (Buffer, error) {
	if w < 0 || h < 0 || size < 0 || len(pix) < size {
		return Buffer{}, ErrBufferSize
	}
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    pix[:size:size],
		Stride: stride,
	}, nil
}

// MonoImage is a 1-bit per pixel monochrome image with horizontally packed rows.
//
// Each row is packed into (w+7)/8 bytes, the most significant bit is the leftmost pixel. This is the
// layout of horizontal mode bitmaps.
type MonoImage struct {
	Buffer
}

func monoImageStride(w int) int {
	return ((w + 7) & ^7) / 8 // round up to whole bytes
}

func NewMonoImage(w, h int) *MonoImage {
	stride := monoImageStride(w)
	return &MonoImage{
		Buffer: makeBuffer(w, h, stride, stride*h),
	}
}

// WrapMonoImage uses pix as the backing storage of a w×h MonoImage.
func WrapMonoImage(pix []byte, w, h int) (*MonoImage, error) {
	stride := monoImageStride(w)
	b, err := wrapBuffer(pix, w, h, stride, stride*h)
	if err != nil {
		return nil, err
	}
	return &MonoImage{Buffer: b}, nil
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoImage) PixOffset(x, y int) int {
	return y*p.Stride + x/8
}

func (p *MonoImage) Bit(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return false
	}
	return p.Pix[p.PixOffset(x, y)]&(0x80>>uint(x&7)) != 0
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.Bit(x, y)}
}

func (p *MonoImage) SetBit(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i] = c.Apply(p.Pix[i], 0x80>>uint(x&7))
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, ColorOf(c))
}

func (p *MonoImage) Fill(c color.Color) {
	p.fill(c)
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image.
//
// Pixels are packed in pages of 8 rows: byte x of page p holds rows p*8 to p*8+7 of column x, with
// the least significant bit on top. This is the display RAM layout of ST7565 and SSD1xxx controllers.
type MonoVerticalLSBImage struct {
	Buffer
}

func monoVerticalLSBSize(w, h int) int {
	bands := ((h + 7) & ^7) / 8 // round up to whole bytes
	return bands * w
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	return &MonoVerticalLSBImage{
		Buffer: makeBuffer(w, h, w, monoVerticalLSBSize(w, h)),
	}
}

// WrapMonoVerticalLSBImage uses pix as the backing storage of a w×h MonoVerticalLSBImage.
func WrapMonoVerticalLSBImage(pix []byte, w, h int) (*MonoVerticalLSBImage, error) {
	b, err := wrapBuffer(pix, w, h, w, monoVerticalLSBSize(w, h))
	if err != nil {
		return nil, err
	}
	return &MonoVerticalLSBImage{Buffer: b}, nil
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoVerticalLSBImage) PixOffset(x, y int) int {
	return y/8*p.Stride + x
}

// Pages is the number of 8 pixel high pages.
func (p *MonoVerticalLSBImage) Pages() int {
	return (p.Rect.Dy() + 7) / 8
}

// Page returns the bytes of one page, nil if the page is out of range.
func (p *MonoVerticalLSBImage) Page(page int) []byte {
	if page < 0 || page >= p.Pages() {
		return nil
	}
	off := page * p.Stride
	return p.Pix[off : off+p.Rect.Dx()]
}

func (p *MonoVerticalLSBImage) Bit(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return false
	}
	return p.Pix[p.PixOffset(x, y)]&(1<<uint(y&7)) != 0
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.Bit(x, y)}
}

func (p *MonoVerticalLSBImage) SetBit(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i] = c.Apply(p.Pix[i], 1<<uint(y&7))
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, ColorOf(c))
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	p.fill(c)
}

var (
	_ Image = (*MonoImage)(nil)
	_ Image = (*MonoVerticalLSBImage)(nil)
)
