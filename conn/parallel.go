package conn

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DefaultSettle is the delay after every signal change on the parallel bus.
const DefaultSettle = 2 * time.Microsecond

// ErrPin is returned when a required bus pin is missing.
var ErrPin = errors.New("conn: parallel bus GPIO pin is invalid")

// ParallelConfig describes the 8-bit parallel bus pins.
type ParallelConfig struct {
	// CS is the chip select pin, active low.
	CS gpio.PinOut

	// DC is the data/command select pin (A0), low for commands.
	DC gpio.PinOut

	// WR is the write strobe, data is latched on the rising edge.
	WR gpio.PinOut

	// RD is the optional read strobe, it is held high.
	RD gpio.PinOut

	// Data are the D0 to D7 pins.
	Data [8]gpio.PinOut

	// Settle is the delay after every signal change, DefaultSettle if zero.
	Settle time.Duration

	// Sleep blocks for the given duration, time.Sleep if nil.
	Sleep func(time.Duration)
}

// Parallel is a write-only 8080 style parallel bus, bit-banged over GPIO pins.
//
// Every byte is a complete transfer: chip select, data/command select, data lines and a write strobe,
// each followed by the settle delay. There is no ready signal; the fixed delay is the only timing.
type Parallel struct {
	cs     gpio.PinOut
	dc     gpio.PinOut
	wr     gpio.PinOut
	rd     gpio.PinOut
	data   [8]gpio.PinOut
	settle time.Duration
	sleep  func(time.Duration)
}

func validPin(p gpio.PinOut) bool {
	return p != nil && p != gpio.INVALID
}

// OpenParallel configures the bus pins as outputs and leaves the bus idle.
func OpenParallel(config *ParallelConfig) (*Parallel, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: no configuration", ErrPin)
	}
	for _, p := range []struct {
		name string
		pin  gpio.PinOut
	}{
		{"CS", config.CS},
		{"DC", config.DC},
		{"WR", config.WR},
	} {
		if !validPin(p.pin) {
			return nil, fmt.Errorf("%w: %s", ErrPin, p.name)
		}
	}
	for i, pin := range config.Data {
		if !validPin(pin) {
			return nil, fmt.Errorf("%w: D%d", ErrPin, i)
		}
	}

	p := &Parallel{
		cs:     config.CS,
		dc:     config.DC,
		wr:     config.WR,
		data:   config.Data,
		settle: config.Settle,
		sleep:  config.Sleep,
	}
	if validPin(config.RD) {
		p.rd = config.RD
	}
	if p.settle <= 0 {
		p.settle = DefaultSettle
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}

	// Driving a pin configures it as output.
	eh := errorHandler{p: p}
	eh.out(p.cs, gpio.High)
	eh.out(p.wr, gpio.High)
	if p.rd != nil {
		eh.out(p.rd, gpio.High)
	}
	eh.out(p.dc, gpio.Low)
	for _, pin := range p.data {
		eh.out(pin, gpio.Low)
	}
	if eh.err != nil {
		return nil, fmt.Errorf("conn: parallel bus setup: %w", eh.err)
	}
	return p, nil
}

func (p *Parallel) String() string {
	var data []string
	for _, pin := range p.data {
		data = append(data, pin.Name())
	}
	return fmt.Sprintf("parallel bus CS=%s DC=%s WR=%s D=[%s]", p.cs.Name(), p.dc.Name(), p.wr.Name(), strings.Join(data, " "))
}

// Settle is the delay after every signal change.
func (p *Parallel) Settle() time.Duration {
	return p.settle
}

// SetSettle adjusts the delay after every signal change.
func (p *Parallel) SetSettle(d time.Duration) {
	if d > 0 {
		p.settle = d
	}
}

// Delay blocks for d, using the bus sleep function.
func (p *Parallel) Delay(d time.Duration) {
	p.sleep(d)
}

// TransferByte sends one byte, as a command if isCommand is set, otherwise as display data.
func (p *Parallel) TransferByte(value byte, isCommand bool) error {
	eh := errorHandler{p: p}
	eh.transfer(value, isCommand)
	return eh.err
}

// Write sends all bytes, one transfer per byte. It stops at the first failing pin write.
func (p *Parallel) Write(isCommand bool, data ...byte) error {
	eh := errorHandler{p: p}
	for _, value := range data {
		if eh.transfer(value, isCommand); eh.err != nil {
			break
		}
	}
	return eh.err
}

// Halt deselects the controller.
func (p *Parallel) Halt() error {
	return p.cs.Out(gpio.High)
}

// Close releases the bus.
func (p *Parallel) Close() error {
	return p.Halt()
}
