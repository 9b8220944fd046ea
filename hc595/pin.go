// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hc595

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is one output of the register.
type Pin struct {
	dev    *Dev
	name   string
	number int
}

func (pin *Pin) String() string {
	return pin.name
}

// Halt implements conn.Resource.
func (pin *Pin) Halt() error {
	return nil
}

// Name returns the name of the output, e.g. 74HC595_QC.
func (pin *Pin) Name() string {
	return pin.name
}

// Number returns the position of the output, 0 for QA.
func (pin *Pin) Number() int {
	return pin.number
}

// Deprecated: returns "Out"
func (pin *Pin) Function() string {
	return "Out"
}

// Out sets the output, leaving the other 7 untouched.
func (pin *Pin) Out(l gpio.Level) error {
	mask := byte(1) << uint(pin.number)
	var v byte
	if l {
		v = mask
	}
	return pin.dev.Out(v, mask)
}

// Not implemented.
func (pin *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

var _ gpio.PinOut = &Pin{}
