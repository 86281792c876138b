package draw

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/BeatGlow/st7565/fonts"
	"github.com/BeatGlow/st7565/pixel"
)

func TestDrawChar(t *testing.T) {
	s := newScreen(t)
	c := NewCanvas(s)
	if err := c.DrawChar(0, 0, 'H', pixel.Foreground, pixel.Background, 1); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x7f, 0x08, 0x08, 0x08, 0x7f, 0x00, 0x00}
	if diff := cmp.Diff(s.Page(0)[:7], want); diff != "" {
		t.Errorf("page 0 difference (-got +want):\n%s", diff)
	}

	t.Run("scaled", func(t *testing.T) {
		s := newScreen(t)
		c := NewCanvas(s)
		if err := c.DrawChar(0, 0, 'H', pixel.Foreground, pixel.Foreground, 2); err != nil {
			t.Fatal(err)
		}
		// 'H' has 2×7 + 3 lit pixels, each 2×2
		if n := countSet(s); n != 4*(7+7+3) {
			t.Errorf("expected %d pixels, got %d", 4*17, n)
		}
		if !s.Bit(1, 13) || s.Bit(1, 14) {
			t.Error("left stroke has the wrong height")
		}
	})

	t.Run("transparent", func(t *testing.T) {
		s := newScreen(t)
		Fill(s, pixel.Foreground)
		c := NewCanvas(s)
		if err := c.DrawChar(0, 0, 'H', pixel.Background, pixel.Background, 1); err != nil {
			t.Fatal(err)
		}
		if s.Bit(0, 0) || !s.Bit(1, 0) || !s.Bit(5, 0) {
			t.Error("transparent background was painted")
		}
	})
}

func TestDrawCharErrors(t *testing.T) {
	s := newScreen(t)
	c := NewCanvas(s)
	for _, tc := range []struct {
		name string
		x, y int
		ch   byte
		want error
	}{
		{name: "range", ch: 0x80, want: ErrCharOutOfFontRange},
		{name: "right", x: 128, ch: 'A', want: ErrCharOutOfScreenBounds},
		{name: "bottom", y: 64, ch: 'A', want: ErrCharOutOfScreenBounds},
		{name: "left", x: -6, ch: 'A', want: ErrCharOutOfScreenBounds},
		{name: "top", y: -8, ch: 'A', want: ErrCharOutOfScreenBounds},
		{name: "partially left", x: -5, ch: 'A'},
		{name: "partially bottom", y: 60, ch: 'A'},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := c.DrawChar(tc.x, tc.y, tc.ch, pixel.Foreground, pixel.Background, 1)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if err := c.DrawLargeChar(0, 0, '1', pixel.Foreground, pixel.Background); !errors.Is(err, ErrWrongFont) {
		t.Errorf("expected %v drawing a large char in a byte-column font, got %v", ErrWrongFont, err)
	}
}

func TestDrawText(t *testing.T) {
	t.Run("HI", func(t *testing.T) {
		s := newScreen(t)
		c := NewCanvas(s)
		if err := c.DrawText(0, 0, "HI", pixel.Foreground, pixel.Background, 1); err != nil {
			t.Fatal(err)
		}
		want := []byte{
			0x7f, 0x08, 0x08, 0x08, 0x7f, 0x00, // H
			0x00, 0x41, 0x7f, 0x41, 0x00, 0x00, // I
			0x00,
		}
		if diff := cmp.Diff(s.Page(0)[:13], want); diff != "" {
			t.Errorf("page 0 difference (-got +want):\n%s", diff)
		}
		if x, y := c.Cursor(); x != 0 || y != 0 {
			t.Errorf("DrawText moved the cursor to (%d,%d)", x, y)
		}
	})

	t.Run("wrap", func(t *testing.T) {
		s := newScreen(t)
		c := NewCanvas(s)
		if err := c.DrawText(0, 0, strings.Repeat("H", 22), pixel.Foreground, pixel.Background, 1); err != nil {
			t.Fatal(err)
		}
		if !s.Bit(120, 0) {
			t.Error("21st character missing")
		}
		if s.Bit(126, 0) {
			t.Error("22nd character not wrapped")
		}
		if !s.Bit(0, 8) || s.Bit(6, 8) {
			t.Error("22nd character not at the start of the second line")
		}
	})

	t.Run("no wrap", func(t *testing.T) {
		s := newScreen(t)
		c := NewCanvas(s)
		c.SetTextWrap(false)
		err := c.DrawText(0, 0, strings.Repeat("H", 22), pixel.Foreground, pixel.Background, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !s.Bit(126, 0) || s.Bit(0, 8) {
			t.Error("text wrapped")
		}
		err = c.DrawText(0, 0, strings.Repeat("H", 23), pixel.Foreground, pixel.Background, 1)
		if !errors.Is(err, ErrCharOutOfScreenBounds) {
			t.Errorf("expected %v, got %v", ErrCharOutOfScreenBounds, err)
		}
	})

	t.Run("nil", func(t *testing.T) {
		c := NewCanvas(newScreen(t))
		if err := c.DrawBytes(0, 0, nil, pixel.Foreground, pixel.Background, 1); !errors.Is(err, ErrNullCharacterArray) {
			t.Errorf("expected %v, got %v", ErrNullCharacterArray, err)
		}
	})
}

func TestWrite(t *testing.T) {
	s := newScreen(t)
	c := NewCanvas(s)
	c.SetTextColors(pixel.Foreground, pixel.Background)

	if _, err := fmt.Fprint(c, "H\r\nI"); err != nil {
		t.Fatal(err)
	}
	if !s.Bit(0, 0) {
		t.Error("first line missing")
	}
	if !s.Bit(1, 8) || s.Bit(0, 8) {
		t.Error("second line not drawn at the line start")
	}
	if x, y := c.Cursor(); x != 6 || y != 8 {
		t.Errorf("expected cursor at (6,8), got (%d,%d)", x, y)
	}

	c.SetTextSize(2)
	c.SetCursor(0, 32)
	if n, err := c.WriteString("HH"); err != nil || n != 2 {
		t.Fatalf("WriteString: %d, %v", n, err)
	}
	if x, y := c.Cursor(); x != 24 || y != 32 {
		t.Errorf("expected cursor at (24,32), got (%d,%d)", x, y)
	}

	c.SetCursor(0, 64)
	n, err := c.Write([]byte("ab"))
	if n != 0 || !errors.Is(err, ErrCharOutOfScreenBounds) {
		t.Errorf("expected 0, %v writing off screen, got %d, %v", ErrCharOutOfScreenBounds, n, err)
	}
}

func TestTextState(t *testing.T) {
	c := NewCanvas(newScreen(t))
	c.SetTextSize(0)
	if got := c.TextSize(); got != 1 {
		t.Errorf("expected text size 1, got %d", got)
	}
	c.SetTextColor(pixel.Invert)
	if fg, bg := c.TextColors(); fg != pixel.Invert || bg != pixel.Invert {
		t.Errorf("expected invert/invert, got %s/%s", fg, bg)
	}

	if err := c.SetFont(fonts.Bignum); !errors.Is(err, fonts.ErrFontUnavailable) {
		t.Errorf("expected %v, got %v", fonts.ErrFontUnavailable, err)
	}
	if got := c.Font().ID; got != fonts.Default {
		t.Errorf("expected the default font to be kept, got %s", got)
	}
	if err := c.SetFont(fonts.ID(200)); err != nil || c.Font().ID != fonts.Default {
		t.Errorf("unknown font: %v, %s", err, c.Font())
	}
}

func TestDrawLargeChar(t *testing.T) {
	s := newScreen(t)
	c := NewCanvas(s)

	// Mednum is 16×16 covering '-' to ':', two bytes per column.
	f, _ := c.Catalog().Lookup(fonts.Mednum)
	table := make([]byte, f.Count*f.GlyphSize())
	glyph := table[int('1'-f.Offset)*f.GlyphSize():]
	glyph[0] = 0x80 // column 0, row 0
	glyph[1] = 0x01 // column 0, row 15
	glyph[2*3] = 0x40
	if err := c.Catalog().Register(fonts.Mednum, table); err != nil {
		t.Fatal(err)
	}
	if err := c.SetFont(fonts.Mednum); err != nil {
		t.Fatal(err)
	}

	if err := c.DrawChar(0, 0, '1', pixel.Foreground, pixel.Background, 1); !errors.Is(err, ErrWrongFont) {
		t.Errorf("expected %v, got %v", ErrWrongFont, err)
	}
	if err := c.DrawLargeChar(10, 20, '1', pixel.Foreground, pixel.Foreground); err != nil {
		t.Fatal(err)
	}
	if n := countSet(s); n != 3 {
		t.Errorf("expected 3 pixels, got %d", n)
	}
	for _, p := range [][2]int{{10, 20}, {10, 35}, {13, 21}} {
		if !s.Bit(p[0], p[1]) {
			t.Errorf("pixel %v not set", p)
		}
	}
	if err := c.DrawLargeChar(0, 0, 'A', pixel.Foreground, pixel.Background); !errors.Is(err, ErrCharOutOfFontRange) {
		t.Errorf("expected %v, got %v", ErrCharOutOfFontRange, err)
	}

	// Row-scan text advances by the glyph width.
	c.SetCursor(0, 0)
	if _, err := c.WriteString("11"); err != nil {
		t.Fatal(err)
	}
	if x, _ := c.Cursor(); x != 32 {
		t.Errorf("expected cursor at 32, got %d", x)
	}
	if !s.Bit(16, 0) {
		t.Error("second glyph not at x=16")
	}
}

func TestBitmap(t *testing.T) {
	t.Run("vertical", func(t *testing.T) {
		s := newScreen(t)
		data := []byte{0x01, 0x80, 0xff, 0x00}
		if err := Bitmap(s, 4, 8, data, 4, 8, pixel.Foreground, pixel.Background, Vertical); err != nil {
			t.Fatal(err)
		}
		want := []byte{0x01, 0x80, 0xff, 0x00}
		if diff := cmp.Diff(s.Page(1)[4:8], want); diff != "" {
			t.Errorf("page 1 difference (-got +want):\n%s", diff)
		}
	})

	t.Run("horizontal", func(t *testing.T) {
		s := newScreen(t)
		data := []byte{0x80, 0x01}
		if err := Bitmap(s, 0, 0, data, 8, 2, pixel.Foreground, pixel.Background, Horizontal); err != nil {
			t.Fatal(err)
		}
		if !s.Bit(0, 0) || !s.Bit(7, 1) || countSet(s) != 2 {
			t.Error("horizontal bitmap decoded wrong")
		}
	})

	t.Run("clipped", func(t *testing.T) {
		s := newScreen(t)
		data := bytes.Repeat([]byte{0xff}, 16)
		if err := Bitmap(s, 120, 60, data, 16, 8, pixel.Foreground, pixel.Background, Vertical); err != nil {
			t.Fatal(err)
		}
		if n := countSet(s); n != 8*4 {
			t.Errorf("expected %d pixels, got %d", 8*4, n)
		}
	})

	for _, tc := range []struct {
		name string
		x, y int
		data []byte
		w, h int
		mode BitmapMode
		want error
	}{
		{name: "nil", w: 8, h: 8, want: ErrNullBitmapData},
		{name: "outside", x: 128, data: make([]byte, 8), w: 8, h: 8, want: ErrBitmapOutOfScreenBounds},
		{name: "above", y: -8, data: make([]byte, 8), w: 8, h: 8, want: ErrBitmapOutOfScreenBounds},
		{name: "negative width", x: 20, y: 20, data: make([]byte, 8), w: -8, h: 8, want: ErrBitmapOutOfScreenBounds},
		{name: "negative width horizontal", x: 20, y: 20, data: make([]byte, 8), w: -8, h: 8, mode: Horizontal, want: ErrBitmapOutOfScreenBounds},
		{name: "negative height", x: 20, y: 20, data: make([]byte, 8), w: 8, h: -8, want: ErrBitmapOutOfScreenBounds},
		{name: "empty", x: 20, y: 20, data: make([]byte, 8), w: 0, h: 8, want: ErrBitmapOutOfScreenBounds},
		{name: "larger", data: make([]byte, 129*8), w: 129, h: 8, want: ErrBitmapLargerThanSurface},
		{name: "vertical size", data: make([]byte, 8), w: 8, h: 7, want: ErrBitmapVerticalSizeInvalid},
		{name: "horizontal size", data: make([]byte, 8), w: 7, h: 8, mode: Horizontal, want: ErrBitmapHorizontalSizeInvalid},
		{name: "short", data: make([]byte, 7), w: 8, h: 8, want: ErrBitmapDataShort},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := newScreen(t)
			FillRect(s, 0, 0, 64, 32, pixel.Foreground)
			before := append([]byte(nil), s.Pix...)

			err := Bitmap(s, tc.x, tc.y, tc.data, tc.w, tc.h, pixel.Background, pixel.Foreground, tc.mode)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if diff := cmp.Diff(s.Pix, before); diff != "" {
				t.Errorf("buffer changed on error (-got +want):\n%s", diff)
			}
		})
	}
}

func TestImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	src.SetGray(1, 2, color.Gray{Y: 0xff})

	s := newScreen(t)
	c := NewCanvas(s)
	c.Image(image.Rect(10, 10, 14, 14), src, image.Point{})
	if !s.Bit(11, 12) || countSet(s) != 1 {
		t.Error("image not composited at the destination")
	}

	// An all white source scales to a lit rectangle.
	big := image.NewGray(image.Rect(0, 0, 256, 128))
	for i := range big.Pix {
		big.Pix[i] = 0xff
	}
	s = newScreen(t)
	NewCanvas(s).ScaledImage(image.Rect(0, 0, 128, 64), big, false)
	if n := countSet(s); n != 128*64 {
		t.Errorf("expected a full screen, got %d pixels", n)
	}
}
