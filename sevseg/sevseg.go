// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3/cpu"
)

// Dev is a multiplexed seven-segment display.
//
// The Set* methods are safe to call from any goroutine, including while
// another goroutine is in Update or Refresh: the codes are published as a
// single atomic word so a step never sees half of a new number. Refresh,
// Update and Clear are serialized between themselves.
type Dev struct {
	lines     lines
	scan      strategy
	hardware  HardwareConfig
	resistors Resistors
	wait      func(time.Duration)

	frame  atomic.Uint64
	onTime atomic.Int64

	mu     sync.Mutex
	cursor int
	pins   [MaxDigits + NumSegments]gpio.PinOut
}

// New returns a Dev with every line driven to its off level and showing 0.
//
// Digit pins beyond MaxDigits are ignored.
func New(opts *Opts) (*Dev, error) {
	if opts == nil {
		return nil, errors.New("sevseg: missing options")
	}
	if opts.Hardware > PHighSideSwitches {
		return nil, fmt.Errorf("sevseg: invalid hardware config %d", opts.Hardware)
	}
	if opts.Resistors > ResistorsOnDigits {
		return nil, fmt.Errorf("sevseg: invalid resistor placement %d", opts.Resistors)
	}
	if len(opts.SegmentPins) != NumSegments {
		return nil, fmt.Errorf("sevseg: need %d segment pins, got %d", NumSegments, len(opts.SegmentPins))
	}
	if len(opts.DigitPins) == 0 {
		return nil, errors.New("sevseg: need at least one digit pin")
	}
	digits := min(len(opts.DigitPins), MaxDigits)

	d := &Dev{hardware: opts.Hardware, resistors: opts.Resistors, wait: opts.Wait}
	if d.wait == nil {
		d.wait = cpu.Nanospin
	}
	// Both slices share the fixed backing array.
	n := copy(d.pins[:digits], opts.DigitPins)
	copy(d.pins[n:], opts.SegmentPins)
	d.lines.digits = d.pins[:n:n]
	d.lines.segments = d.pins[n : n+NumSegments]
	for i, p := range d.pins[:n+NumSegments] {
		if p == nil {
			return nil, fmt.Errorf("sevseg: pin %d is nil", i)
		}
	}
	d.lines.digitOn, d.lines.segmentOn = opts.Hardware.Levels()
	d.scan = newStrategy(opts.Resistors, &d.lines)
	d.onTime.Store(int64(maxOnTime))

	// Out() configures the pins as output.
	if err := d.lines.allOff(); err != nil {
		return nil, err
	}
	d.SetNumber(0, 0)
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("SevSeg{%d digits, %s, %s}", len(d.lines.digits), d.hardware, d.resistors)
}

// Halt implements conn.Resource.
//
// It turns every line off.
func (d *Dev) Halt() error {
	return d.Clear()
}

// Digits returns the number of digits driven.
func (d *Dev) Digits() int {
	return len(d.lines.digits)
}

// Steps returns the number of steps in a full refresh cycle: the number of
// digits, or 8 when the resistors are on the digits.
func (d *Dev) Steps() int {
	return d.scan.steps()
}

// SetNumber shows value with decimals digits after the decimal point.
//
// Numbers that don't fit are shown as dashes. The decimal point is lit on
// digit Digits()-1-decimals, which is the last digit when decimals is 0.
func (d *Dev) SetNumber(value int64, decimals int) {
	var g [MaxDigits]Glyph
	glyphs := g[:len(d.lines.digits)]
	decompose(glyphs, value, decimals)
	d.frame.Store(uint64(EncodeGlyphs(glyphs, decimals)))
}

// SetUint is SetNumber for unsigned values.
func (d *Dev) SetUint(value uint64, decimals int) {
	if value > math.MaxInt64 {
		value = math.MaxInt64
	}
	d.SetNumber(int64(value), decimals)
}

// SetFloat shows value rounded half away from zero to decimals digits after
// the decimal point. decimals must be in [0, 9].
func (d *Dev) SetFloat(value float64, decimals int) {
	d.SetNumber(FloatToFixed(value, decimals), decimals)
}

// SetSegments shows raw segment codes, one per digit from the left. Missing
// codes are blank and extra codes are ignored.
func (d *Dev) SetSegments(codes []byte) {
	var f Frame
	for i := 0; i < len(d.lines.digits) && i < len(codes); i++ {
		f = f.With(i, codes[i])
	}
	d.frame.Store(uint64(f))
}

// Codes returns the segment codes currently shown.
func (d *Dev) Codes() []byte {
	return d.loadFrame().Bytes(len(d.lines.digits))
}

func (d *Dev) loadFrame() Frame {
	return Frame(d.frame.Load())
}

// Refresh runs one full multiplexing cycle and returns. Each step is lit for
// OnTime(), so the call takes about Steps()*OnTime().
//
// It must be called continuously for the display to stay lit.
func (d *Dev) Refresh() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.loadFrame()
	onTime := d.OnTime()
	var err error
	for step := range d.scan.steps() {
		err = errors.Join(err, d.scan.lightsOn(step, f))
		d.wait(onTime)
		err = errors.Join(err, d.scan.lightsOff(step))
	}
	return err
}

// Update turns the current step off and the next one on, then returns
// immediately.
//
// It is meant to be called at a fixed rate, e.g. from Run. Each step stays
// lit until the next call, so the call interval sets the brightness.
func (d *Dev) Update() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.scan.lightsOff(d.cursor)
	if d.cursor++; d.cursor == d.scan.steps() {
		d.cursor = 0
	}
	return errors.Join(err, d.scan.lightsOn(d.cursor, d.loadFrame()))
}

// Clear turns every digit and segment line off, whatever is shown. Call it
// before stopping Update calls so no digit stays lit.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lines.allOff()
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
