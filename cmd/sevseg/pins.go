// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/sevseg/hc595"
	"github.com/GermanBionicSystems/sevseg/rpiogpio"
	"github.com/GermanBionicSystems/sevseg/sevseg/sevsegtest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// pinSet is the digit and segment lines of a display and what has to be
// released once done with them.
type pinSet struct {
	digits   []gpio.PinOut
	segments []gpio.PinOut
	closers  []func() error
}

// Close releases the resources in reverse order of acquisition.
func (p *pinSet) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		errs = append(errs, p.closers[i]())
	}
	p.closers = nil
	return errors.Join(errs...)
}

// emulatedPins wires the display to a Panel instead of real hardware.
func emulatedPins(cfg *Config) (*pinSet, *sevsegtest.Panel) {
	digitOn, segmentOn := cfg.Hardware.Levels()
	panel := sevsegtest.NewPanel(cfg.DigitCount(), digitOn, segmentOn)
	return &pinSet{digits: panel.DigitPins, segments: panel.SegmentPins}, panel
}

// openPins looks up the configured lines.
func openPins(cfg *Config) (*pinSet, error) {
	p := &pinSet{}
	if cfg.Backend == backendPeriph || cfg.HC595 != nil {
		if _, err := host.Init(); err != nil {
			return nil, err
		}
	}

	var lookup func(name string) (gpio.PinOut, error)
	switch cfg.Backend {
	case backendRPIO:
		if err := rpiogpio.Open(); err != nil {
			return nil, err
		}
		p.closers = append(p.closers, rpiogpio.Close)
		lookup = func(name string) (gpio.PinOut, error) {
			return rpiogpio.ByName(name)
		}
	default:
		lookup = func(name string) (gpio.PinOut, error) {
			if pin := gpioreg.ByName(name); pin != nil {
				return pin, nil
			}
			return nil, fmt.Errorf("unknown pin %q", name)
		}
	}

	var err error
	if p.digits, err = lookupAll(lookup, cfg.Digits); err != nil {
		return nil, errors.Join(err, p.Close())
	}
	if p.segments, err = lookupAll(lookup, cfg.Segments); err != nil {
		return nil, errors.Join(err, p.Close())
	}

	if h := cfg.HC595; h != nil {
		port, err := spireg.Open(h.Port)
		if err != nil {
			return nil, errors.Join(err, p.Close())
		}
		p.closers = append(p.closers, port.Close)
		reg, err := hc595.Connect(port, &hc595.Opts{Invert: h.Invert})
		if err != nil {
			return nil, errors.Join(err, p.Close())
		}
		p.closers = append(p.closers, reg.Halt)
		if h.Lines == linesDigits {
			p.digits = reg.Pins[:h.Count]
		} else {
			p.segments = reg.Pins
		}
	}
	return p, nil
}

func lookupAll(lookup func(string) (gpio.PinOut, error), names []string) ([]gpio.PinOut, error) {
	pins := make([]gpio.PinOut, 0, len(names))
	for _, name := range names {
		pin, err := lookup(name)
		if err != nil {
			return nil, err
		}
		pins = append(pins, pin)
	}
	return pins, nil
}
