package fonts

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/math/fixed"
)

// alphaThreshold is the coverage from which a rendered pixel is lit.
const alphaThreshold = 0x80

// TrueType parses a TrueType font and returns the largest face whose line and widest glyph fit in
// a w×h cell.
func TrueType(ttf []byte, w, h int) (xfont.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse TrueType: %w", err)
	}
	for size := float64(h); size >= 4; size -= 0.5 {
		face := truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: xfont.HintingFull,
		})
		m := face.Metrics()
		adv, _ := face.GlyphAdvance('M')
		if (m.Ascent+m.Descent).Ceil() <= h && adv.Ceil() <= w {
			return face, nil
		}
		_ = face.Close()
	}
	return nil, fmt.Errorf("fonts: no TrueType size fits a %dx%d cell", w, h)
}

// Rasterize renders the glyphs of face into the table of font id. Characters the face has no
// glyph for are left blank.
func (c *Catalog) Rasterize(id ID, face xfont.Face) error {
	if !id.Known() {
		return fmt.Errorf("%w: %s", ErrUnknownFont, id)
	}
	f := &c.fonts[id-1]
	return c.Register(id, rasterize(f.Family, f.Metrics, face))
}

// RasterizeAll renders every font without glyph data from a TrueType font, sized to each cell.
func (c *Catalog) RasterizeAll(ttf []byte) error {
	return c.rasterizeMissing(func(ID) []byte { return ttf })
}

// LoadGoFonts renders every font without glyph data from the Go Mono typefaces, using the bold cut
// for the heavy fonts.
func (c *Catalog) LoadGoFonts() error {
	return c.rasterizeMissing(func(id ID) []byte {
		switch id {
		case Thick, Wide, Bignum, ArialBold:
			return gomonobold.TTF
		default:
			return gomono.TTF
		}
	})
}

func (c *Catalog) rasterizeMissing(source func(ID) []byte) error {
	for i := range c.fonts {
		f := &c.fonts[i]
		if f.Available() {
			continue
		}
		face, err := TrueType(source(f.ID), f.Width, f.Height)
		if err != nil {
			return fmt.Errorf("%s: %w", f.ID, err)
		}
		err = c.Rasterize(f.ID, face)
		_ = face.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func rasterize(family Family, m Metrics, face xfont.Face) []byte {
	var (
		size     = m.GlyphSize()
		glyphs   = make([]byte, m.Count*size)
		cell     = image.NewAlpha(image.Rect(0, 0, m.Width, m.Height))
		metrics  = face.Metrics()
		ascent   = metrics.Ascent.Ceil()
		line     = ascent + metrics.Descent.Ceil()
		baseline = (m.Height-line)/2 + ascent
		d        = &xfont.Drawer{Dst: cell, Src: image.Opaque, Face: face}
	)
	for i := 0; i < m.Count; i++ {
		r := rune(int(m.Offset) + i)
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		for j := range cell.Pix {
			cell.Pix[j] = 0
		}
		d.Dot = fixed.P((m.Width-adv.Round())/2, baseline)
		d.DrawString(string(r))
		pack(family, m, cell, glyphs[i*size:(i+1)*size])
	}
	return glyphs
}

// pack stores a rendered cell in the glyph layout of the family.
func pack(family Family, m Metrics, cell *image.Alpha, glyph []byte) {
	bytesPerColumn := (m.Height + 7) / 8
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			if cell.AlphaAt(x, y).A < alphaThreshold {
				continue
			}
			i := x*bytesPerColumn + y/8
			if family == RowScan {
				glyph[i] |= 0x80 >> uint(y&7)
			} else {
				glyph[i] |= 1 << uint(y&7)
			}
		}
	}
}
