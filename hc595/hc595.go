// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hc595 drives a 74HC595 serial shift register over SPI and exposes
// its 8 outputs as gpio.PinOut.
//
// This makes it possible to hang the segment (or digit) lines of a
// multiplexed display behind three wires: MOSI, SCLK and the latch on CS.
//
// # Datasheet
//
// https://www.nexperia.com/product/74HC595D
package hc595

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	devName = "74HC595"
	numPins = 8
)

// ErrNotImplemented is returned by the pin features the register lacks.
var ErrNotImplemented = errors.New("hc595: not implemented")

// errHalted is returned once Halt was called.
var errHalted = errors.New("hc595: device is halted")

// Opts represents the options available for the shift register.
type Opts struct {
	// Name prefixes the output names. It defaults to "74HC595".
	Name string
	// Invert flips every level written, for registers driving inverting
	// transistor stages.
	Invert bool

	_ struct{}
}

// Dev represents a 74HC595 device.
type Dev struct {
	// Pins are the parallel outputs, QA to QH.
	Pins []gpio.PinOut

	name   string
	invert bool

	mu    sync.Mutex
	conn  spi.Conn
	value byte
	valid bool
}

// Connect opens the register on p. The register latches on the rising edge of
// CS and shifts MSB first in SPI mode 0.
func Connect(p spi.Port, opts *Opts) (*Dev, error) {
	c, err := p.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("hc595: %w", err)
	}
	return New(c, opts)
}

// New returns a Dev writing to c.
func New(c spi.Conn, opts *Opts) (*Dev, error) {
	if c == nil {
		return nil, errors.New("hc595: nil connection")
	}
	d := &Dev{conn: c, name: devName, Pins: make([]gpio.PinOut, numPins)}
	if opts != nil {
		if opts.Name != "" {
			d.name = opts.Name
		}
		d.invert = opts.Invert
	}
	for i := range numPins {
		d.Pins[i] = &Pin{dev: d, number: i, name: fmt.Sprintf("%s_Q%c", d.name, 'A'+i)}
	}
	return d, nil
}

func (d *Dev) String() string {
	return d.name
}

// Halt drives every output low and detaches the device from its connection.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.writeLocked(0)
	d.conn = nil
	return err
}

// Value returns the last value latched into the register.
func (d *Dev) Value() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Write sets the 8 outputs at once, bit 0 being QA.
func (d *Dev) Write(value byte) error {
	return d.Out(value, 0xff)
}

// Out updates the outputs selected by mask. Nothing is sent on the bus when
// the outputs already have the requested levels.
func (d *Dev) Out(value, mask byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.value&^mask | value&mask
	if d.valid && v == d.value {
		return nil
	}
	return d.writeLocked(v)
}

func (d *Dev) writeLocked(v byte) error {
	if d.conn == nil {
		return errHalted
	}
	w := v
	if d.invert {
		w = ^w
	}
	if err := d.conn.Tx([]byte{w}, nil); err != nil {
		return fmt.Errorf("hc595: %w", err)
	}
	d.value = v
	d.valid = true
	return nil
}

var _ conn.Resource = &Dev{}
