package st7565

import (
	"bytes"
	"fmt"
	"log"

	"github.com/BeatGlow/st7565/draw"
	"github.com/BeatGlow/st7565/framebuffer"
	"github.com/BeatGlow/st7565/pixel"
)

// setPage selects the page for the following data bytes.
func (d *Display) setPage(page int) error {
	return d.command(cmdSetPage | byte(page&0x0F))
}

// setColumn selects the column, the address is split over two 4-bit commands.
func (d *Display) setColumn(column int) error {
	return d.commands(
		cmdSetColumnLower|byte(column&0x0F),
		cmdSetColumnUpper|byte((column>>4)&0x0F),
	)
}

// GotoXY moves the controller RAM address to column and page.
func (d *Display) GotoXY(column, page int) error {
	if err := d.setPage(page); err != nil {
		return err
	}
	return d.setColumn(column)
}

// Flush sends the active buffer to its region of the panel, followed by the icon row.
func (d *Display) Flush() error {
	if err := d.writeScreen(d.active); err != nil {
		return err
	}
	return d.writeIcons()
}

// Refresh redraws the display, same as Flush.
func (d *Display) Refresh() error {
	return d.Flush()
}

// writeScreen sends every page of s that falls on the panel, clipping columns to the panel edges.
func (d *Display) writeScreen(s *framebuffer.Screen) error {
	if debug {
		log.Printf("st7565: flush %s", s)
	}
	for p := 0; p < s.Pages(); p++ {
		y := s.Y + p*framebuffer.PageHeight
		if y < 0 || y >= d.height {
			continue
		}

		// Visible columns of this page.
		lo := max(0, -s.X)
		hi := min(s.Width(), d.width-s.X)
		if lo >= hi {
			continue
		}

		if err := d.setPage(y / framebuffer.PageHeight); err != nil {
			return err
		}
		if err := d.setColumn(s.X + lo); err != nil {
			return err
		}
		if err := d.data(s.Page(p)[lo:hi]...); err != nil {
			return err
		}
	}
	return nil
}

func (d *Display) writeIcons() error {
	if err := d.setPage(d.iconPage); err != nil {
		return err
	}
	if err := d.setColumn(0); err != nil {
		return err
	}
	return d.data(d.icons.Pix...)
}

// FillPanel writes pattern to every byte of the panel RAM, icon row included. The buffers are not
// changed, the next Flush restores their contents.
func (d *Display) FillPanel(pattern byte) error {
	row := bytes.Repeat([]byte{pattern}, d.width)
	for page := 0; page < d.height/framebuffer.PageHeight; page++ {
		if err := d.GotoXY(0, page); err != nil {
			return err
		}
		if err := d.data(row...); err != nil {
			return err
		}
	}
	if err := d.GotoXY(0, d.iconPage); err != nil {
		return err
	}
	return d.data(row[:d.icons.Width()]...)
}

// WriteBitmap writes a vertical bitmap straight to the panel RAM at (x, y), bypassing the buffers.
// Rows are sent in whole pages starting at page y/8; parts outside the panel are clipped.
func (d *Display) WriteBitmap(x, y, w, h int, data []byte) error {
	if data == nil {
		return draw.ErrNullBitmapData
	}
	if w <= 0 || h <= 0 || x > d.width || y > d.height {
		return fmt.Errorf("%w: %dx%d at (%d,%d)", draw.ErrBitmapOutOfScreenBounds, w, h, x, y)
	}
	if w > d.width || h > d.height {
		return fmt.Errorf("%w: %dx%d on %dx%d", draw.ErrBitmapLargerThanSurface, w, h, d.width, d.height)
	}
	if h%framebuffer.PageHeight != 0 {
		return fmt.Errorf("%w: height %d", draw.ErrBitmapVerticalSizeInvalid, h)
	}
	img, err := pixel.WrapMonoVerticalLSBImage(data, w, h)
	if err != nil {
		return fmt.Errorf("%w: %v", draw.ErrBitmapDataShort, err)
	}
	return d.writeScreen(&framebuffer.Screen{
		MonoVerticalLSBImage: img,
		X:                    x,
		Y:                    y,
	})
}
