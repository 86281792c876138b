// Package fonts is the catalog of bitmap fonts available to the text renderer.
//
// Fonts come in two glyph layouts. Byte-column fonts store every glyph as Width bytes, one byte
// per column, least significant bit on top; they are at most 8 pixels high and can be scaled by
// the renderer. Row-scan fonts are larger, fixed size glyphs stored column by column with
// (Height+7)/8 bytes per column, most significant bit on top.
package fonts

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrUnknownFont     = errors.New("fonts: unknown font")
	ErrFontUnavailable = errors.New("fonts: font has no glyph data")
	ErrGlyphTableSize  = errors.New("fonts: glyph table size does not match font metrics")
)

// ID identifies a catalog font.
type ID uint8

// Catalog fonts.
const (
	Default ID = iota + 1
	Thick
	SevenSeg
	Wide
	Tiny
	Homespun
	Bignum
	Mednum
	ArialRound
	ArialBold
	Mia
	Dedica
)

var names = [...]string{
	Default:    "default",
	Thick:      "thick",
	SevenSeg:   "sevenseg",
	Wide:       "wide",
	Tiny:       "tiny",
	Homespun:   "homespun",
	Bignum:     "bignum",
	Mednum:     "mednum",
	ArialRound: "arialround",
	ArialBold:  "arialbold",
	Mia:        "mia",
	Dedica:     "dedica",
}

func (id ID) String() string {
	if id.Known() {
		return names[id]
	}
	return fmt.Sprintf("font(%d)", uint8(id))
}

// Known reports if id is a catalog font.
func (id ID) Known() bool {
	return id >= Default && id <= Dedica
}

// ParseID returns the font with the given name.
func ParseID(name string) (ID, error) {
	for id := Default; id <= Dedica; id++ {
		if names[id] == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFont, name)
}

// Family is a glyph table layout.
type Family uint8

// Glyph table layouts.
const (
	ByteColumn Family = iota
	RowScan
)

func (f Family) String() string {
	if f == RowScan {
		return "row-scan"
	}
	return "byte-column"
}

// Metrics describe the glyph cell and the character coverage of a font.
type Metrics struct {
	// Width of a glyph in pixels.
	Width int

	// Height of a glyph in pixels.
	Height int

	// Offset is the character code of the first glyph.
	Offset byte

	// Count is the number of glyphs.
	Count int
}

// GlyphSize is the number of bytes per glyph.
func (m Metrics) GlyphSize() int {
	return m.Width * ((m.Height + 7) / 8)
}

// Covers reports if the font has a glyph for c.
func (m Metrics) Covers(c byte) bool {
	return int(c) >= int(m.Offset) && int(c) < int(m.Offset)+m.Count
}

// Font is a catalog entry.
type Font struct {
	ID     ID
	Family Family
	Metrics

	// Glyphs is the glyph table, nil if no data is loaded. It is never modified.
	Glyphs []byte
}

func (f *Font) String() string {
	return fmt.Sprintf("%s %dx%d %s", f.ID, f.Width, f.Height, f.Family)
}

// Available reports if the glyph table is loaded.
func (f *Font) Available() bool {
	return f.Glyphs != nil
}

// Glyph returns the glyph bytes for c, nil if c is not covered or no data is loaded.
func (f *Font) Glyph(c byte) []byte {
	if f.Glyphs == nil || !f.Covers(c) {
		return nil
	}
	size := f.GlyphSize()
	off := (int(c) - int(f.Offset)) * size
	return f.Glyphs[off : off+size]
}

var catalog = [...]Font{
	{ID: Default, Family: ByteColumn, Metrics: Metrics{Width: 5, Height: 8, Offset: 0x00, Count: 128}},
	{ID: Thick, Family: ByteColumn, Metrics: Metrics{Width: 7, Height: 8, Offset: 0x20, Count: 59}},
	{ID: SevenSeg, Family: ByteColumn, Metrics: Metrics{Width: 4, Height: 8, Offset: 0x20, Count: 95}},
	{ID: Wide, Family: ByteColumn, Metrics: Metrics{Width: 8, Height: 8, Offset: 0x20, Count: 59}},
	{ID: Tiny, Family: ByteColumn, Metrics: Metrics{Width: 3, Height: 8, Offset: 0x20, Count: 95}},
	{ID: Homespun, Family: ByteColumn, Metrics: Metrics{Width: 7, Height: 8, Offset: 0x20, Count: 95}},
	{ID: Bignum, Family: RowScan, Metrics: Metrics{Width: 16, Height: 32, Offset: 0x2D, Count: 14}},
	{ID: Mednum, Family: RowScan, Metrics: Metrics{Width: 16, Height: 16, Offset: 0x2D, Count: 14}},
	{ID: ArialRound, Family: RowScan, Metrics: Metrics{Width: 16, Height: 24, Offset: 0x20, Count: 95}},
	{ID: ArialBold, Family: RowScan, Metrics: Metrics{Width: 16, Height: 16, Offset: 0x20, Count: 95}},
	{ID: Mia, Family: RowScan, Metrics: Metrics{Width: 8, Height: 16, Offset: 0x20, Count: 95}},
	{ID: Dedica, Family: RowScan, Metrics: Metrics{Width: 6, Height: 12, Offset: 0x20, Count: 95}},
}

// Catalog holds the fonts and their glyph tables. The zero value is not usable, use NewCatalog.
type Catalog struct {
	fonts [len(catalog)]Font
}

// NewCatalog returns a catalog with all fonts known and the built-in default font loaded.
func NewCatalog() *Catalog {
	c := new(Catalog)
	c.fonts = catalog
	c.fonts[Default-1].Glyphs = defaultGlyphs
	return c
}

// Lookup returns the font for id. Unknown ids silently return the default font. A known font
// without glyph data is returned together with ErrFontUnavailable.
func (c *Catalog) Lookup(id ID) (*Font, error) {
	if !id.Known() {
		id = Default
	}
	f := &c.fonts[id-1]
	if !f.Available() {
		return f, fmt.Errorf("%w: %s", ErrFontUnavailable, id)
	}
	return f, nil
}

// Fonts returns all catalog fonts in id order.
func (c *Catalog) Fonts() []*Font {
	out := make([]*Font, len(c.fonts))
	for i := range c.fonts {
		out[i] = &c.fonts[i]
	}
	return out
}

// Register installs a glyph table for a font. The table is used as is and must not be modified.
func (c *Catalog) Register(id ID, glyphs []byte) error {
	if !id.Known() {
		return fmt.Errorf("%w: %s", ErrUnknownFont, id)
	}
	f := &c.fonts[id-1]
	if want := f.Count * f.GlyphSize(); len(glyphs) != want {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrGlyphTableSize, id, want, len(glyphs))
	}
	f.Glyphs = glyphs
	return nil
}
