package termview

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestShow(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Width: 8, Height: 8, W: &out})
	if got := d.String(); got != "TermView 8x8" {
		t.Errorf("unexpected name %q", got)
	}

	frame := make([]byte, 8)
	frame[3] = 0x01 // pixel (3,0)
	icons := make([]byte, 8)
	icons[7] = 0xFF
	if err := d.Show(frame, icons); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(lines))
	}
	on, off := ansi256.Default.Block(DefaultOn), ansi256.Default.Block(DefaultOff)
	if want := "\r\033[0m" + strings.Repeat(off, 7) + on + "\033[0m"; lines[0] != want {
		t.Errorf("icon row is %q, want %q", lines[0], want)
	}
	if want := strings.Repeat(off, 3) + on + strings.Repeat(off, 4) + "\033[0m"; lines[1] != want {
		t.Errorf("first row is %q, want %q", lines[1], want)
	}

	// The next frame moves the cursor back up.
	out.Reset()
	if err := d.Draw(d.Bounds(), image.NewUniform(color.White), image.Point{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[9A") {
		t.Errorf("redraw does not move the cursor up: %q", out.String()[:8])
	}
	if !d.frame.Bit(0, 0) || !d.frame.Bit(7, 7) {
		t.Error("expected a lit frame")
	}

	out.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[0m\n" {
		t.Errorf("unexpected halt output %q", out.String())
	}
}
