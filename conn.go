package st7565

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/st7565/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("st7565: reset GPIO pin is invalid")
	ErrNoConn   = errors.New("st7565: no connection")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte, followed by argument bytes which are also sent as commands.
	Command(byte, ...byte) error

	// Data sends display data bytes.
	Data(...byte) error

	// Delay blocks for the given duration.
	Delay(time.Duration)
}

// ParallelConfig describes the 8-bit parallel bus configuration.
type ParallelConfig struct {
	conn.ParallelConfig

	// Reset pin, active low.
	Reset gpio.PinOut
}

// settler is implemented by connections with an adjustable bus settle delay.
type settler interface {
	Settle() time.Duration
	SetSettle(time.Duration)
}

type parallelConn struct {
	*conn.Parallel
	reset gpio.PinOut
}

// OpenParallel opens the 8-bit parallel bus.
func OpenParallel(config *ParallelConfig) (Conn, error) {
	if config == nil {
		return nil, fmt.Errorf("st7565: %w", conn.ErrPin)
	}
	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	bus, err := conn.OpenParallel(&config.ParallelConfig)
	if err != nil {
		return nil, err
	}
	if err = config.Reset.Out(gpio.High); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("st7565: reset pin: %w", err)
	}
	return &parallelConn{
		Parallel: bus,
		reset:    config.Reset,
	}, nil
}

func (c *parallelConn) Command(cmnd byte, args ...byte) error {
	return c.Parallel.Write(true, append([]byte{cmnd}, args...)...)
}

func (c *parallelConn) Data(data ...byte) error {
	return c.Parallel.Write(false, data...)
}

func (c *parallelConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}
