// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// lines holds the pins and their active levels.
type lines struct {
	digits    []gpio.PinOut
	segments  []gpio.PinOut
	digitOn   gpio.Level
	segmentOn gpio.Level
}

func (l *lines) digit(i int, on bool) error {
	lvl := l.digitOn
	if !on {
		lvl = !lvl
	}
	if err := l.digits[i].Out(lvl); err != nil {
		return fmt.Errorf("sevseg: digit %d: %w", i, err)
	}
	return nil
}

func (l *lines) segment(i int, on bool) error {
	lvl := l.segmentOn
	if !on {
		lvl = !lvl
	}
	if err := l.segments[i].Out(lvl); err != nil {
		return fmt.Errorf("sevseg: segment %d: %w", i, err)
	}
	return nil
}

// allOff turns every digit line then every segment line off. It keeps going
// after a failure.
func (l *lines) allOff() error {
	var err error
	for i := range l.digits {
		err = errors.Join(err, l.digit(i, false))
	}
	for i := range l.segments {
		err = errors.Join(err, l.segment(i, false))
	}
	return err
}

// strategy is one way of multiplexing the display. A step is the unit lit at
// once.
type strategy interface {
	steps() int
	lightsOn(step int, f Frame) error
	lightsOff(step int) error
}

func newStrategy(r Resistors, l *lines) strategy {
	if r == ResistorsOnDigits {
		return &segmentScan{l}
	}
	return &digitScan{l}
}

// segmentScan lights one segment at a time across all the digits. It is used
// when the resistors are on the digit lines.
type segmentScan struct {
	*lines
}

func (s *segmentScan) steps() int {
	return NumSegments
}

func (s *segmentScan) lightsOn(segment int, f Frame) error {
	mask := byte(1) << uint(segment)
	var err error
	for d := range s.digits {
		if f.Code(d)&mask != 0 {
			err = errors.Join(err, s.digit(d, true))
		}
	}
	return errors.Join(err, s.segment(segment, true))
}

func (s *segmentScan) lightsOff(segment int) error {
	err := s.segment(segment, false)
	for d := range s.digits {
		err = errors.Join(err, s.digit(d, false))
	}
	return err
}

// digitScan lights one digit at a time. It is used when the resistors are on
// the segment lines.
type digitScan struct {
	*lines
}

func (s *digitScan) steps() int {
	return len(s.digits)
}

func (s *digitScan) lightsOn(digit int, f Frame) error {
	code := f.Code(digit)
	var err error
	for seg := range s.segments {
		if code&(1<<uint(seg)) != 0 {
			err = errors.Join(err, s.segment(seg, true))
		}
	}
	return errors.Join(err, s.digit(digit, true))
}

func (s *digitScan) lightsOff(digit int) error {
	err := s.digit(digit, false)
	for seg := range s.segments {
		err = errors.Join(err, s.segment(seg, false))
	}
	return err
}
