// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import (
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// HardwareConfig describes the polarity of the digit and segment lines.
type HardwareConfig uint8

const (
	// CommonCathode displays are lit by driving the digit low and the
	// segment high.
	CommonCathode HardwareConfig = iota
	// CommonAnode displays are lit by driving the digit high and the segment
	// low.
	CommonAnode
	// NLowSideSwitches is for active-high, low-side switches on the digits,
	// most commonly N-type FETs.
	NLowSideSwitches
	// PHighSideSwitches is for active-low, high-side switches on the digits,
	// most commonly P-type FETs.
	PHighSideSwitches
)

var hardwareNames = [...]string{"common-cathode", "common-anode", "n-low-side", "p-high-side"}

// Levels returns the levels that turn a digit line and a segment line on.
// The off levels are their negation.
func (h HardwareConfig) Levels() (digitOn, segmentOn gpio.Level) {
	switch h {
	case CommonAnode:
		return gpio.High, gpio.Low
	case NLowSideSwitches:
		return gpio.High, gpio.High
	case PHighSideSwitches:
		return gpio.Low, gpio.Low
	default:
		return gpio.Low, gpio.High
	}
}

func (h HardwareConfig) String() string {
	if int(h) < len(hardwareNames) {
		return hardwareNames[h]
	}
	return fmt.Sprintf("HardwareConfig(%d)", uint8(h))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HardwareConfig) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for i, n := range hardwareNames {
		if s == n {
			*h = HardwareConfig(i)
			return nil
		}
	}
	return fmt.Errorf("sevseg: unknown hardware config %q", text)
}

// Resistors tells where the current limiting resistors are placed. It
// decides what is multiplexed.
type Resistors uint8

const (
	// ResistorsOnSegments cycles through the digits, lighting all the
	// segments of one digit at a time.
	ResistorsOnSegments Resistors = iota
	// ResistorsOnDigits cycles through the 8 segments, lighting one segment
	// on every digit that needs it at a time.
	ResistorsOnDigits
)

var resistorNames = [...]string{"segments", "digits"}

func (r Resistors) String() string {
	if int(r) < len(resistorNames) {
		return "resistors-on-" + resistorNames[r]
	}
	return fmt.Sprintf("Resistors(%d)", uint8(r))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Resistors) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.ToLower(string(text)), "resistors-on-")
	for i, n := range resistorNames {
		if s == n {
			*r = Resistors(i)
			return nil
		}
	}
	return fmt.Errorf("sevseg: unknown resistor placement %q", text)
}

// Opts is the wiring of a display.
type Opts struct {
	Hardware  HardwareConfig
	Resistors Resistors
	// DigitPins are ordered left to right. Only the first MaxDigits pins are
	// used.
	DigitPins []gpio.PinOut
	// SegmentPins are A to G followed by the decimal point.
	SegmentPins []gpio.PinOut
	// Wait busy-waits while a step is lit in Refresh. It defaults to
	// cpu.Nanospin.
	Wait func(time.Duration)
}
