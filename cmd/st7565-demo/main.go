package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/st7565"
	"github.com/BeatGlow/st7565/conn"
	"github.com/BeatGlow/st7565/fonts"
	"github.com/BeatGlow/st7565/framebuffer"
	"github.com/BeatGlow/st7565/termview"
)

func main() {
	widthFlag := flag.Int("width", st7565.DefaultWidth, "Display width")
	heightFlag := flag.Int("height", st7565.DefaultHeight, "Display height")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	contrastFlag := flag.Uint("contrast", 0x20, "Contrast (electronic volume, 0-63)")
	fontFlag := flag.String("font", "default", "Text font")
	csPinFlag := flag.String("cs", "GPIO8", "Chip select GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (A0)")
	wrPinFlag := flag.String("wr", "GPIO23", "Write strobe GPIO pin")
	rdPinFlag := flag.String("rd", "", "Read strobe GPIO pin (optional)")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dataPinsFlag := flag.String("data", "GPIO4,GPIO17,GPIO18,GPIO27,GPIO22,GPIO5,GPIO6,GPIO13", "D0 to D7 GPIO pins, comma separated")
	settleFlag := flag.Duration("settle", conn.DefaultSettle, "Bus settle delay")
	intervalFlag := flag.Duration("interval", time.Second, "Update interval")
	framesFlag := flag.Int("frames", 0, "Number of frames to show (0: until interrupted)")
	dryRunFlag := flag.Bool("dry-run", false, "Do not access hardware")
	previewFlag := flag.Bool("preview", false, "Mirror frames on the terminal")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <test|gauge|sysinfo>\n", os.Args[0])
		os.Exit(1)
	}
	run, ok := modes[strings.ToLower(flag.Arg(0))]
	if !ok {
		fatal(fmt.Errorf("unsupported mode %q", flag.Arg(0)))
	}

	var rotation st7565.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = st7565.NoRotation
	case "90", "right", "cw":
		rotation = st7565.Rotate90
	case "180", "flip":
		rotation = st7565.Rotate180
	case "270", "left", "ccw":
		rotation = st7565.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}
	fmt.Printf("using rotation: %s\n", rotation)

	var (
		c   st7565.Conn
		err error
	)
	if *dryRunFlag {
		c = new(nopConn)
	} else {
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
		config := &st7565.ParallelConfig{
			ParallelConfig: conn.ParallelConfig{
				CS:     gpioreg.ByName(*csPinFlag),
				DC:     gpioreg.ByName(*dcPinFlag),
				WR:     gpioreg.ByName(*wrPinFlag),
				Settle: *settleFlag,
			},
			Reset: gpioreg.ByName(*resetPinFlag),
		}
		if *rdPinFlag != "" {
			config.RD = gpioreg.ByName(*rdPinFlag)
		}
		names := strings.Split(*dataPinsFlag, ",")
		if len(names) != len(config.Data) {
			fatal(fmt.Errorf("expected %d data pins, got %d", len(config.Data), len(names)))
		}
		for i, name := range names {
			config.Data[i] = gpioreg.ByName(strings.TrimSpace(name))
		}
		if c, err = st7565.OpenParallel(config); err != nil {
			fatal(err)
		}
	}
	fmt.Printf("using connection: %s\n", c)

	d, err := st7565.New(c, &st7565.Config{
		Width:    *widthFlag,
		Height:   *heightFlag,
		Rotation: rotation,
		Contrast: uint8(*contrastFlag),
	})
	if err != nil {
		_ = c.Close()
		fatal(err)
	}
	defer d.Close()

	if err = d.Begin(); err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s\n", d)

	fontID, err := fonts.ParseID(*fontFlag)
	if err != nil {
		fatal(err)
	}
	if fontID != fonts.Default {
		if err = d.Catalog().LoadGoFonts(); err != nil {
			fatal(err)
		}
	}
	if err = d.SetFont(fontID); err != nil {
		fatal(err)
	}
	fmt.Printf("using font: %s\n", d.Font())

	show := d.Flush
	if *previewFlag || (*dryRunFlag && isatty.IsTerminal(os.Stdout.Fd())) {
		view := termview.New(&termview.Opts{Width: d.RawWidth(), Height: d.RawHeight()})
		defer view.Halt()
		panel, err := framebuffer.New(d.RawWidth(), d.RawHeight())
		if err != nil {
			fatal(err)
		}
		copy(panel.Pix, d.MainBuffer().Pix)
		show = func() error {
			if err := d.Flush(); err != nil {
				return err
			}
			mirror(panel, d.ActiveBuffer())
			return view.Show(panel.Pix, d.Icons())
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ticker := time.NewTicker(*intervalFlag)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for frame := 0; *framesFlag == 0 || frame < *framesFlag; frame++ {
		if err = run(d, frame); err != nil {
			fatal(err)
		}
		if err = show(); err != nil {
			fatal(err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// nopConn discards all bus traffic.
type nopConn struct{}

func (nopConn) String() string              { return "dry run" }
func (nopConn) Close() error                { return nil }
func (nopConn) Reset(gpio.Level) error      { return nil }
func (nopConn) Command(byte, ...byte) error { return nil }
func (nopConn) Data(...byte) error          { return nil }
func (nopConn) Delay(time.Duration)         {}

// mirror copies s into panel at its offset, clipped the same way Flush clips it. The rest of panel
// keeps what was flushed before, like the controller RAM does.
func mirror(panel, s *framebuffer.Screen) {
	lo := max(0, -s.X)
	hi := min(s.Width(), panel.Width()-s.X)
	if lo >= hi {
		return
	}
	for p := 0; p < s.Pages(); p++ {
		if dst := panel.Page(s.FirstPage() + p); dst != nil {
			copy(dst[s.X+lo:], s.Page(p)[lo:hi])
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
