package draw

import (
	"fmt"
	"image"

	"github.com/BeatGlow/st7565/fonts"
	"github.com/BeatGlow/st7565/pixel"
)

// Canvas binds the drawing primitives to a surface and keeps the text state: font, cursor, text
// colors, scale, wrapping and bitmap layout.
type Canvas struct {
	dst     Surface
	catalog *fonts.Catalog
	font    *fonts.Font
	cursorX int
	cursorY int
	fg      pixel.Color
	bg      pixel.Color
	size    int
	wrap    bool
	mode    BitmapMode
}

// NewCanvas returns a canvas drawing on dst with the default font, transparent foreground text,
// wrapping enabled and vertical bitmaps.
func NewCanvas(dst Surface) *Canvas {
	catalog := fonts.NewCatalog()
	font, _ := catalog.Lookup(fonts.Default)
	return &Canvas{
		dst:     dst,
		catalog: catalog,
		font:    font,
		fg:      pixel.Foreground,
		bg:      pixel.Foreground,
		size:    1,
		wrap:    true,
		mode:    Vertical,
	}
}

// Catalog returns the font catalog, register glyph tables here before selecting their font.
func (c *Canvas) Catalog() *fonts.Catalog { return c.catalog }

// Font returns the current font.
func (c *Canvas) Font() *fonts.Font { return c.font }

// SetFont selects a font. Unknown ids select the default font; a font without glyph data is
// refused and the current font is kept.
func (c *Canvas) SetFont(id fonts.ID) error {
	f, err := c.catalog.Lookup(id)
	if err != nil {
		return err
	}
	c.font = f
	return nil
}

// SetCursor moves the text cursor.
func (c *Canvas) SetCursor(x, y int) {
	c.cursorX, c.cursorY = x, y
}

// Cursor returns the text cursor.
func (c *Canvas) Cursor() (x, y int) {
	return c.cursorX, c.cursorY
}

// SetTextColor sets foreground and background to the same color, making the text background
// transparent.
func (c *Canvas) SetTextColor(fg pixel.Color) {
	c.fg, c.bg = fg, fg
}

// SetTextColors sets the text foreground and background.
func (c *Canvas) SetTextColors(fg, bg pixel.Color) {
	c.fg, c.bg = fg, bg
}

// TextColors returns the text foreground and background.
func (c *Canvas) TextColors() (fg, bg pixel.Color) {
	return c.fg, c.bg
}

// SetTextSize sets the byte-column font scale, values below 1 are taken as 1.
func (c *Canvas) SetTextSize(size int) {
	c.size = max(size, 1)
}

func (c *Canvas) TextSize() int { return c.size }

// SetTextWrap enables or disables wrapping text at the right edge.
func (c *Canvas) SetTextWrap(wrap bool) {
	c.wrap = wrap
}

func (c *Canvas) TextWrap() bool { return c.wrap }

// SetBitmapMode selects the layout used by Bitmap.
func (c *Canvas) SetBitmapMode(mode BitmapMode) {
	c.mode = mode
}

func (c *Canvas) BitmapMode() BitmapMode { return c.mode }

// DrawChar draws a character of the current byte-column font at (x,y), scaled by size. The glyph
// is followed by a blank spacing column. Clear glyph bits are drawn with bg unless bg equals fg.
func (c *Canvas) DrawChar(x, y int, ch byte, fg, bg pixel.Color, size int) error {
	f := c.font
	if f.Family != fonts.ByteColumn {
		return fmt.Errorf("%w: %s", ErrWrongFont, f)
	}
	glyph := f.Glyph(ch)
	if glyph == nil {
		return fmt.Errorf("%w: %#02x in %s", ErrCharOutOfFontRange, ch, f.ID)
	}
	size = max(size, 1)

	w, h := c.dst.Size()
	if x >= w || y >= h || x+(f.Width+1)*size-1 < 0 || y+f.Height*size-1 < 0 {
		return fmt.Errorf("%w: %#02x at (%d,%d)", ErrCharOutOfScreenBounds, ch, x, y)
	}

	bpc := (f.Height + 7) / 8
	for i := 0; i <= f.Width; i++ {
		for j := 0; j < f.Height; j++ {
			var on bool
			if i < f.Width {
				on = glyph[i*bpc+j/8]&(1<<uint(j&7)) != 0
			}
			switch {
			case on:
				c.plot(x+i*size, y+j*size, size, fg)
			case bg != fg:
				c.plot(x+i*size, y+j*size, size, bg)
			}
		}
	}
	return nil
}

func (c *Canvas) plot(x, y, size int, col pixel.Color) {
	if size == 1 {
		c.dst.SetPixel(x, y, col)
		return
	}
	FillRect(c.dst, x, y, size, size, col)
}

// DrawLargeChar draws a character of the current row-scan font at (x,y). Row-scan glyphs are not
// scaled and have no spacing column.
func (c *Canvas) DrawLargeChar(x, y int, ch byte, fg, bg pixel.Color) error {
	f := c.font
	if f.Family != fonts.RowScan {
		return fmt.Errorf("%w: %s", ErrWrongFont, f)
	}
	glyph := f.Glyph(ch)
	if glyph == nil {
		return fmt.Errorf("%w: %#02x in %s", ErrCharOutOfFontRange, ch, f.ID)
	}

	w, h := c.dst.Size()
	if x >= w || y >= h || x+f.Width-1 < 0 || y+f.Height-1 < 0 {
		return fmt.Errorf("%w: %#02x at (%d,%d)", ErrCharOutOfScreenBounds, ch, x, y)
	}

	bpc := (f.Height + 7) / 8
	for i := 0; i < f.Width; i++ {
		for j := 0; j < f.Height; j++ {
			switch {
			case glyph[i*bpc+j/8]&(0x80>>uint(j&7)) != 0:
				c.dst.SetPixel(x+i, y+j, fg)
			case bg != fg:
				c.dst.SetPixel(x+i, y+j, bg)
			}
		}
	}
	return nil
}

// advance returns the horizontal step and line height of one character in the current font.
func (c *Canvas) advance(size int) (dx, dy, cell int) {
	f := c.font
	if f.Family == fonts.RowScan {
		return f.Width, f.Height, f.Width
	}
	return size * (f.Width + 1), size * f.Height, size * f.Width
}

// put draws one character at (x,y), wrapping to the start of the next line first if the glyph
// would cross the right edge. It returns the position of the next character.
func (c *Canvas) put(x, y int, ch byte, fg, bg pixel.Color, size int) (int, int, error) {
	dx, dy, cell := c.advance(size)
	if w, _ := c.dst.Size(); c.wrap && x+cell > w {
		x, y = 0, y+dy
	}

	var err error
	if c.font.Family == fonts.RowScan {
		err = c.DrawLargeChar(x, y, ch, fg, bg)
	} else {
		err = c.DrawChar(x, y, ch, fg, bg, size)
	}
	if err != nil {
		return x, y, err
	}
	return x + dx, y, nil
}

// DrawText draws s starting at (x,y) in the current font, without moving the cursor. Every byte
// is drawn as a glyph. Drawing stops at the first character that fails.
func (c *Canvas) DrawText(x, y int, s string, fg, bg pixel.Color, size int) error {
	size = max(size, 1)
	for i := 0; i < len(s); i++ {
		var err error
		if x, y, err = c.put(x, y, s[i], fg, bg, size); err != nil {
			return err
		}
	}
	return nil
}

// DrawBytes is DrawText for a byte slice, a nil slice is an error.
func (c *Canvas) DrawBytes(x, y int, b []byte, fg, bg pixel.Color, size int) error {
	if b == nil {
		return ErrNullCharacterArray
	}
	return c.DrawText(x, y, string(b), fg, bg, size)
}

// WriteChar draws ch at the cursor with the text state and advances the cursor. A newline moves
// the cursor to the start of the next line, a carriage return is ignored.
func (c *Canvas) WriteChar(ch byte) error {
	switch ch {
	case '\n':
		_, dy, _ := c.advance(c.size)
		c.cursorX, c.cursorY = 0, c.cursorY+dy
		return nil
	case '\r':
		return nil
	}

	x, y, err := c.put(c.cursorX, c.cursorY, ch, c.fg, c.bg, c.size)
	if err != nil {
		return err
	}
	c.cursorX, c.cursorY = x, y
	return nil
}

// Write implements io.Writer by writing every byte of p with WriteChar.
func (c *Canvas) Write(p []byte) (int, error) {
	for i, ch := range p {
		if err := c.WriteChar(ch); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (c *Canvas) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := c.WriteChar(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// Shapes on the canvas surface.

func (c *Canvas) Pixel(x, y int, col pixel.Color)          { Pixel(c.dst, x, y, col) }
func (c *Canvas) Line(x0, y0, x1, y1 int, col pixel.Color) { Line(c.dst, x0, y0, x1, y1, col) }
func (c *Canvas) HLine(x, y, w int, col pixel.Color)       { HLine(c.dst, x, y, w, col) }
func (c *Canvas) VLine(x, y, h int, col pixel.Color)       { VLine(c.dst, x, y, h, col) }
func (c *Canvas) Rect(x, y, w, h int, col pixel.Color)     { Rect(c.dst, x, y, w, h, col) }
func (c *Canvas) FillRect(x, y, w, h int, col pixel.Color) { FillRect(c.dst, x, y, w, h, col) }
func (c *Canvas) FillScreen(col pixel.Color)               { Fill(c.dst, col) }
func (c *Canvas) Circle(x0, y0, r int, col pixel.Color)    { Circle(c.dst, x0, y0, r, col) }

func (c *Canvas) FillCircle(x0, y0, r int, col pixel.Color) {
	FillCircle(c.dst, x0, y0, r, col)
}

func (c *Canvas) Triangle(x0, y0, x1, y1, x2, y2 int, col pixel.Color) {
	Triangle(c.dst, x0, y0, x1, y1, x2, y2, col)
}

func (c *Canvas) FillTriangle(x0, y0, x1, y1, x2, y2 int, col pixel.Color) {
	FillTriangle(c.dst, x0, y0, x1, y1, x2, y2, col)
}

func (c *Canvas) RoundRect(x, y, w, h, r int, col pixel.Color) {
	RoundRect(c.dst, x, y, w, h, r, col)
}

func (c *Canvas) FillRoundRect(x, y, w, h, r int, col pixel.Color) {
	FillRoundRect(c.dst, x, y, w, h, r, col)
}

func (c *Canvas) Ellipse(x0, y0, rx, ry int, col pixel.Color) {
	Ellipse(c.dst, x0, y0, rx, ry, col)
}

func (c *Canvas) FillEllipse(x0, y0, rx, ry int, col pixel.Color) {
	FillEllipse(c.dst, x0, y0, rx, ry, col)
}

// Bitmap draws bitmap data in the canvas bitmap layout.
func (c *Canvas) Bitmap(x, y int, data []byte, w, h int, fg, bg pixel.Color) error {
	return Bitmap(c.dst, x, y, data, w, h, fg, bg, c.mode)
}

// Image composites src at sp onto the rectangle r.
func (c *Canvas) Image(r image.Rectangle, src image.Image, sp image.Point) {
	Image(c.dst, r, src, sp)
}

// ScaledImage scales src into the rectangle r.
func (c *Canvas) ScaledImage(r image.Rectangle, src image.Image, dither bool) {
	ScaledImage(c.dst, r, src, dither)
}
