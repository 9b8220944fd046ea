// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sevsegtest is meant to be used to test drivers of multiplexed
// seven-segment displays.
//
// A Panel owns fake digit and segment pins. It records every write and
// accumulates which segments were lit on which digit, which is what a human
// would see once the refresh is fast enough.
package sevsegtest

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Event is a single pin write.
type Event struct {
	Pin   string
	Level gpio.Level
}

// Panel emulates the LED array.
type Panel struct {
	DigitPins   []gpio.PinOut
	SegmentPins []gpio.PinOut

	digitOn   gpio.Level
	segmentOn gpio.Level

	mu       sync.Mutex
	digits   []gpio.Level
	segments []gpio.Level
	seen     []byte
	events   []Event
	fail     map[string]error
	onWrite  func()
}

// NewPanel returns a Panel with digits digit pins and 8 segment pins. digitOn
// and segmentOn are the levels that light a line. Every line starts low.
func NewPanel(digits int, digitOn, segmentOn gpio.Level) *Panel {
	p := &Panel{
		digitOn:   digitOn,
		segmentOn: segmentOn,
		digits:    make([]gpio.Level, digits),
		segments:  make([]gpio.Level, 8),
		seen:      make([]byte, digits),
		fail:      map[string]error{},
	}
	for i := range digits {
		p.DigitPins = append(p.DigitPins, &Pin{p: p, name: fmt.Sprintf("DIG%d", i), num: i, digit: true})
	}
	for i := range 8 {
		p.SegmentPins = append(p.SegmentPins, &Pin{p: p, name: fmt.Sprintf("SEG%c", 'A'+i), num: i})
	}
	return p
}

// Seen returns, per digit, every segment that has been lit since the last
// Reset.
func (p *Panel) Seen() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.seen...)
}

// Lit returns the segments lit right now.
func (p *Panel) Lit() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	lit := make([]byte, len(p.digits))
	p.visit(func(d, s int) { lit[d] |= 1 << uint(s) })
	return lit
}

// Reset forgets the seen segments and the recorded events.
func (p *Panel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.seen)
	p.events = nil
}

// Events returns the recorded pin writes.
func (p *Panel) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Levels returns the current level of the digit and segment lines.
func (p *Panel) Levels() (digits, segments []gpio.Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]gpio.Level(nil), p.digits...), append([]gpio.Level(nil), p.segments...)
}

// AllOff returns true if every line is at its inactive level.
func (p *Panel) AllOff() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, l := range p.digits {
		if l == p.digitOn {
			return false
		}
	}
	for _, l := range p.segments {
		if l == p.segmentOn {
			return false
		}
	}
	return true
}

// Fail makes writes to the named pin return err. A nil err clears it.
func (p *Panel) Fail(pin string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		delete(p.fail, pin)
	} else {
		p.fail[pin] = err
	}
}

// OnWrite registers f to be called after every pin write, outside the lock.
func (p *Panel) OnWrite(f func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onWrite = f
}

func (p *Panel) visit(f func(d, s int)) {
	for d, dl := range p.digits {
		if dl != p.digitOn {
			continue
		}
		for s, sl := range p.segments {
			if sl == p.segmentOn {
				f(d, s)
			}
		}
	}
}

func (p *Panel) out(pin *Pin, l gpio.Level) error {
	p.mu.Lock()
	if err := p.fail[pin.name]; err != nil {
		p.mu.Unlock()
		return err
	}
	if pin.digit {
		p.digits[pin.num] = l
	} else {
		p.segments[pin.num] = l
	}
	p.events = append(p.events, Event{Pin: pin.name, Level: l})
	p.visit(func(d, s int) { p.seen[d] |= 1 << uint(s) })
	f := p.onWrite
	p.mu.Unlock()
	if f != nil {
		f()
	}
	return nil
}

// Pin is a digit or segment line of a Panel.
type Pin struct {
	p     *Panel
	name  string
	num   int
	digit bool
}

func (pin *Pin) String() string {
	return pin.name
}

// Halt implements conn.Resource.
func (pin *Pin) Halt() error {
	return nil
}

// Name returns the name of the pin, DIGn or SEGx.
func (pin *Pin) Name() string {
	return pin.name
}

// Number returns the index of the line.
func (pin *Pin) Number() int {
	return pin.num
}

// Deprecated: returns "Out"
func (pin *Pin) Function() string {
	return "Out"
}

// Out implements gpio.PinOut.
func (pin *Pin) Out(l gpio.Level) error {
	return pin.p.out(pin, l)
}

// PWM is not supported.
func (pin *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("sevsegtest: PWM is not supported")
}

var _ gpio.PinOut = &Pin{}
