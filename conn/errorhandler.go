package conn

import "periph.io/x/conn/v3/gpio"

// errorHandler records the first pin error; every later step is skipped.
type errorHandler struct {
	p   *Parallel
	err error
}

func (eh *errorHandler) out(pin gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = pin.Out(l)
}

func (eh *errorHandler) settle() {
	if eh.err != nil {
		return
	}
	eh.p.sleep(eh.p.settle)
}

func (eh *errorHandler) transfer(value byte, isCommand bool) {
	eh.out(eh.p.cs, gpio.Low)
	eh.settle()
	eh.out(eh.p.dc, gpio.Level(!isCommand))
	eh.settle()
	for i, pin := range eh.p.data {
		eh.out(pin, gpio.Level((value>>uint(i))&1 == 1))
	}
	eh.settle()
	eh.out(eh.p.wr, gpio.Low)
	eh.settle()
	eh.out(eh.p.wr, gpio.High)
	eh.settle()
	eh.out(eh.p.cs, gpio.High)
	eh.settle()
}
