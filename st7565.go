// Package st7565 drives ST7565 and UC1609 128×64 monochrome LCDs over an 8-bit parallel bus.
//
// Drawing goes to an in-memory page buffer through the embedded [draw.Canvas]; nothing reaches the
// panel until [Display.Flush]. A Display is not safe for concurrent use.
package st7565

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/st7565/draw"
	"github.com/BeatGlow/st7565/framebuffer"
	"github.com/BeatGlow/st7565/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Errors
var (
	ErrSize     = errors.New("st7565: height must be a non-zero multiple of 8")
	ErrRotation = errors.New("st7565: invalid rotation")
)

// Panel defaults.
const (
	DefaultWidth    = 128
	DefaultHeight   = 64
	DefaultIconPage = 8
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Config is the display configuration.
type Config struct {
	// Width of the panel in pixels, DefaultWidth if zero.
	Width int

	// Height of the panel in pixels, DefaultHeight if zero.
	Height int

	// Rotation of the display.
	Rotation Rotation

	// Contrast is the initial electronic volume, defaultContrast if zero.
	Contrast uint8

	// IconPage is the controller page of the icon row, DefaultIconPage if zero.
	IconPage int
}

// Display is an ST7565 LCD with its frame buffers.
type Display struct {
	*draw.Canvas

	c        Conn
	width    int
	height   int
	rotation Rotation
	main     *framebuffer.Screen
	active   *framebuffer.Screen
	icons    *framebuffer.IconStrip
	iconPage int
	contrast uint8
	halted   bool
}

// New allocates the frame buffers for a display on c. It does not talk to the controller, call
// Begin for that.
func New(c Conn, config *Config) (*Display, error) {
	if c == nil {
		return nil, ErrNoConn
	}
	if config == nil {
		config = new(Config)
	}

	d := &Display{
		c:        c,
		width:    config.Width,
		height:   config.Height,
		iconPage: config.IconPage,
		contrast: config.Contrast,
	}
	if d.width == 0 {
		d.width = DefaultWidth
	}
	if d.height == 0 {
		d.height = DefaultHeight
	}
	if d.iconPage == 0 {
		d.iconPage = DefaultIconPage
	}
	if d.contrast == 0 {
		d.contrast = defaultContrast
	}
	if err := d.SetRotation(config.Rotation); err != nil {
		return nil, err
	}

	var err error
	if d.main, err = framebuffer.New(d.width, d.height); err != nil {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, d.width, d.height)
	}
	d.active = d.main
	d.icons = framebuffer.NewIconStrip(d.width)
	d.Canvas = draw.NewCanvas(d)
	return d, nil
}

func (d *Display) String() string {
	return fmt.Sprintf("ST7565 LCD %dx%d on %s", d.width, d.height, d.c)
}

// Begin resets the controller, runs the power up sequence and shows the buffers.
func (d *Display) Begin() (err error) {
	if debug {
		log.Printf("st7565: init %s", d)
	}

	d.c.Delay(5 * time.Millisecond)
	if err = d.Reset(); err != nil {
		return
	}

	if err = d.commands(
		cmdSetBias9,
		cmdSetADCNormal,
		cmdSetCOMReverse,
		cmdSetStartLine|0x00,
		cmdSetBoosterFirst, cmdSetBooster234,
	); err != nil {
		return
	}

	// Power up in steps: converter, then regulator, then follower.
	for _, mode := range []byte{
		powerVoltageConverter,
		powerVoltageConverter | powerVoltageRegulator,
		powerVoltageConverter | powerVoltageRegulator | powerVoltageFollower,
	} {
		if err = d.command(cmdSetPowerControl | mode); err != nil {
			return
		}
		d.c.Delay(5 * time.Millisecond)
	}

	if err = d.command(cmdSetResistorRatio | defaultResistorRatio); err != nil {
		return
	}
	d.c.Delay(5 * time.Millisecond)

	if err = d.SetContrast(d.contrast); err != nil {
		return
	}
	if err = d.commands(cmdDisplayOn, cmdSetDisplayNormal); err != nil {
		return
	}
	d.halted = false
	return d.Flush()
}

// Reset pulses the reset line. The controller registers return to their power on state, run
// Begin to initialize it again.
func (d *Display) Reset() error {
	if err := d.c.Reset(gpio.Low); err != nil {
		return err
	}
	d.c.Delay(100 * time.Millisecond)
	return d.c.Reset(gpio.High)
}

// Halt turns the display off, the buffers are kept.
func (d *Display) Halt() error {
	if err := d.Show(false); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// Close turns the display off and closes the connection.
func (d *Display) Close() error {
	if !d.halted {
		if err := d.Halt(); err != nil {
			_ = d.c.Close()
			return err
		}
	}
	return d.c.Close()
}

// Show toggles the display on or off.
func (d *Display) Show(show bool) error {
	if show {
		d.halted = false
		return d.command(cmdDisplayOn)
	}
	return d.command(cmdDisplayOff)
}

// SetContrast sets the electronic volume, only the lower 6 bits are used.
func (d *Display) SetContrast(level uint8) error {
	d.contrast = level
	return d.commands(
		cmdDisplayOff,
		cmdSetVolumeFirst, level&contrastMask,
		cmdDisplayOn,
	)
}

// Contrast returns the last contrast level set.
func (d *Display) Contrast() uint8 { return d.contrast }

// Invert switches the panel to reverse display, the buffers are not touched.
func (d *Display) Invert(invert bool) error {
	if invert {
		return d.command(cmdSetDisplayInvert)
	}
	return d.command(cmdSetDisplayNormal)
}

// AllPixelsOn lights every pixel regardless of the display RAM.
func (d *Display) AllPixelsOn(on bool) error {
	if on {
		return d.command(cmdSetAllPtsOn)
	}
	return d.command(cmdSetAllPtsNormal)
}

// Sleep enters or leaves the power save state.
func (d *Display) Sleep(sleep bool) error {
	if sleep {
		return d.commands(cmdDisplayOff, cmdSetAllPtsOn)
	}
	return d.commands(cmdSetAllPtsNormal, cmdDisplayOn)
}

// SetRotation changes how subsequent drawing maps onto the panel. Pixels already drawn stay put.
func (d *Display) SetRotation(rotation Rotation) error {
	if rotation > Rotate270 {
		return fmt.Errorf("%w: %d", ErrRotation, rotation)
	}
	d.rotation = rotation
	return nil
}

func (d *Display) Rotation() Rotation { return d.rotation }

// Size is the logical size of the active buffer, width and height swap at 90° and 270°.
func (d *Display) Size() (w, h int) {
	w, h = d.active.Size()
	if d.rotation == Rotate90 || d.rotation == Rotate270 {
		return h, w
	}
	return w, h
}

// Width is the logical width.
func (d *Display) Width() int {
	w, _ := d.Size()
	return w
}

// Height is the logical height.
func (d *Display) Height() int {
	_, h := d.Size()
	return h
}

// RawWidth is the panel width, it does not change with rotation.
func (d *Display) RawWidth() int { return d.width }

// RawHeight is the panel height.
func (d *Display) RawHeight() int { return d.height }

// physical maps logical coordinates onto the active buffer. The second return is false if the
// pixel is outside the logical bounds.
func (d *Display) physical(x, y int) (int, int, bool) {
	if w, h := d.Size(); x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	w, h := d.active.Size()
	switch d.rotation {
	case Rotate90:
		x, y = w-1-y, x
	case Rotate180:
		x, y = w-1-x, h-1-y
	case Rotate270:
		x, y = y, h-1-x
	}
	return x, y, true
}

// SetPixel draws one pixel in logical coordinates, pixels outside are ignored.
func (d *Display) SetPixel(x, y int, c pixel.Color) {
	if x, y, ok := d.physical(x, y); ok {
		d.active.SetPixel(x, y, c)
	}
}

// Bit reports if the pixel at logical (x, y) is set.
func (d *Display) Bit(x, y int) bool {
	if x, y, ok := d.physical(x, y); ok {
		return d.active.Bit(x, y)
	}
	return false
}

// Bounds is the logical display bounding box.
func (d *Display) Bounds() image.Rectangle {
	w, h := d.Size()
	return image.Rect(0, 0, w, h)
}

// ColorModel used by the display.
func (d *Display) ColorModel() color.Model {
	return pixel.MonoModel
}

// Draw composites src onto the buffer at r and flushes.
func (d *Display) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Image(d, r, src, sp)
	return d.Flush()
}

// SetActiveBuffer selects the buffer that drawing and Flush use, nil selects the main buffer.
func (d *Display) SetActiveBuffer(s *framebuffer.Screen) {
	if s == nil {
		s = d.main
	}
	d.active = s
}

// ActiveBuffer returns the buffer drawing goes to.
func (d *Display) ActiveBuffer() *framebuffer.Screen { return d.active }

// MainBuffer returns the full panel buffer allocated by New.
func (d *Display) MainBuffer() *framebuffer.Screen { return d.main }

// NewScreen allocates a w×h buffer shown at panel pixel (x, y), y must be page aligned.
func (d *Display) NewScreen(w, h, x, y int) (*framebuffer.Screen, error) {
	return framebuffer.NewAt(w, h, x, y)
}

// ClearActiveBuffer clears the active buffer and the icon row.
func (d *Display) ClearActiveBuffer() {
	d.active.Clear()
	d.icons.Clear()
}

// FillBuffers applies c to every pixel of the active buffer and every icon segment.
func (d *Display) FillBuffers(c pixel.Color) {
	switch c {
	case pixel.Foreground:
		d.active.Fill(pixel.On)
	case pixel.Background:
		d.active.Clear()
	case pixel.Invert:
		d.active.Invert()
	}
	d.icons.FillColor(c)
}

// ToggleInvert inverts every pixel of the active buffer in software.
func (d *Display) ToggleInvert() {
	d.active.Invert()
}

// LibVersion is the driver version number.
func (d *Display) LibVersion() int { return libVersion }

// AddressControl is the address control setting used for column addressing.
func (d *Display) AddressControl() byte { return defaultAddressControl }

// SettleDelay returns the bus settle delay, zero if the connection has none.
func (d *Display) SettleDelay() time.Duration {
	if s, ok := d.c.(settler); ok {
		return s.Settle()
	}
	return 0
}

// SetSettleDelay changes the bus settle delay if the connection supports it.
func (d *Display) SetSettleDelay(delay time.Duration) {
	if s, ok := d.c.(settler); ok {
		s.SetSettle(delay)
	}
}

func (d *Display) command(cmnd byte, args ...byte) error {
	return d.c.Command(cmnd, args...)
}

func (d *Display) commands(cmnds ...byte) error {
	if len(cmnds) == 0 {
		return nil
	}
	return d.c.Command(cmnds[0], cmnds[1:]...)
}

func (d *Display) data(data ...byte) error {
	return d.c.Data(data...)
}

var (
	_ draw.Surface   = (*Display)(nil)
	_ display.Drawer = (*Display)(nil)
)
