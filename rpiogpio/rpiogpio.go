// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rpiogpio exposes the Raspberry Pi header through go-rpio as
// gpio.PinOut.
//
// go-rpio writes the GPIO registers through /dev/gpiomem directly, which is
// a fair bit faster than the sysfs path when a display is refreshed at a few
// kHz from user space.
package rpiogpio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/stianeikeland/go-rpio"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// maxPin is the highest BCM line on the 40 pins header.
const maxPin = 27

// ErrNotImplemented is returned by the pin features this backend lacks.
var ErrNotImplemented = errors.New("rpiogpio: not implemented")

// Register hooks, replaced in tests.
var (
	open      = rpio.Open
	closeMem  = rpio.Close
	setOutput = func(p rpio.Pin) { p.Output() }
	write     = func(p rpio.Pin, s rpio.State) { p.Write(s) }
)

var (
	mu     sync.Mutex
	opened int
)

// Open maps the GPIO registers. Every successful call must be paired with a
// Close.
func Open() error {
	mu.Lock()
	defer mu.Unlock()
	if opened == 0 {
		if err := open(); err != nil {
			return fmt.Errorf("rpiogpio: %w", err)
		}
	}
	opened++
	return nil
}

// Close unmaps the GPIO registers once the last user is gone.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if opened == 0 {
		return nil
	}
	opened--
	if opened == 0 {
		return closeMem()
	}
	return nil
}

// ByName returns the output for the BCM line name, "GPIO17" or "17". Open
// must have been called.
func ByName(name string) (*Pin, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(name), "GPIO"))
	if err != nil || n < 0 || n > maxPin {
		return nil, fmt.Errorf("rpiogpio: invalid pin %q", name)
	}
	return ByNumber(n)
}

// ByNumber returns the output for BCM line n and sets it as an output.
func ByNumber(n int) (*Pin, error) {
	if n < 0 || n > maxPin {
		return nil, fmt.Errorf("rpiogpio: invalid pin %d", n)
	}
	mu.Lock()
	defer mu.Unlock()
	if opened == 0 {
		return nil, errors.New("rpiogpio: Open was not called")
	}
	p := &Pin{number: n, pin: rpio.Pin(n)}
	setOutput(p.pin)
	return p, nil
}

// Pin is one GPIO line driven through go-rpio.
type Pin struct {
	number int
	pin    rpio.Pin
}

func (p *Pin) String() string {
	return p.Name()
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name returns the BCM name of the line, e.g. GPIO17.
func (p *Pin) Name() string {
	return "GPIO" + strconv.Itoa(p.number)
}

// Number returns the BCM number of the line.
func (p *Pin) Number() int {
	return p.number
}

// Deprecated: returns "Out"
func (p *Pin) Function() string {
	return "Out"
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if l {
		write(p.pin, rpio.High)
	} else {
		write(p.pin, rpio.Low)
	}
	return nil
}

// Not implemented.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

var _ gpio.PinOut = &Pin{}
