// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GermanBionicSystems/sevseg/sevseg"
	"gopkg.in/yaml.v3"
)

// Config is the wiring of a display.
type Config struct {
	Hardware  sevseg.HardwareConfig `yaml:"hardware"`
	Resistors sevseg.Resistors      `yaml:"resistors"`
	// Digits and Segments are pin names, most significant digit first and
	// segment A to DP.
	Digits   []string `yaml:"digits"`
	Segments []string `yaml:"segments"`
	// Backend selects how named pins are driven: periph (default) or rpio.
	Backend string       `yaml:"backend"`
	HC595   *HC595Config `yaml:"hc595"`
	// Brightness is 0 to 100. It defaults to 100.
	Brightness *int   `yaml:"brightness"`
	LogFile    string `yaml:"log_file"`
}

// HC595Config moves one group of lines behind a 74HC595 on SPI.
type HC595Config struct {
	// Port is the SPI port name, empty for the first one.
	Port string `yaml:"port"`
	// Lines is "segments" or "digits".
	Lines  string `yaml:"lines"`
	Invert bool   `yaml:"invert"`
	// Count is the number of digits wired to the register when Lines is
	// "digits". It defaults to 8.
	Count int `yaml:"count"`
}

const (
	backendPeriph = "periph"
	backendRPIO   = "rpio"
	linesSegments = "segments"
	linesDigits   = "digits"
)

// Load reads the YAML file at path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML configuration and fills in the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	Normalize(cfg)
	return cfg, nil
}

// Normalize fills in the defaults.
func Normalize(cfg *Config) {
	if cfg.Backend == "" {
		cfg.Backend = backendPeriph
	}
	if cfg.Brightness == nil {
		b := 100
		cfg.Brightness = &b
	}
	if h := cfg.HC595; h != nil && h.Lines == linesDigits && h.Count == 0 {
		h.Count = sevseg.MaxDigits
	}
}

// DigitCount returns the number of digits the configuration drives.
func (cfg *Config) DigitCount() int {
	if h := cfg.HC595; h != nil && h.Lines == linesDigits {
		return h.Count
	}
	return len(cfg.Digits)
}

// Validate checks configuration correctness. It doesn't mutate cfg.
func Validate(cfg *Config) error {
	switch cfg.Backend {
	case backendPeriph, backendRPIO:
	default:
		return fmt.Errorf("backend %q: must be %q or %q", cfg.Backend, backendPeriph, backendRPIO)
	}
	if b := cfg.Brightness; b != nil && (*b < 0 || *b > 100) {
		return fmt.Errorf("brightness %d: must be between 0 and 100", *b)
	}

	wantDigits, wantSegments := true, true
	if h := cfg.HC595; h != nil {
		switch h.Lines {
		case linesSegments:
			wantSegments = false
		case linesDigits:
			wantDigits = false
			if h.Count < 1 || h.Count > sevseg.MaxDigits {
				return fmt.Errorf("hc595: count %d: must be between 1 and %d", h.Count, sevseg.MaxDigits)
			}
		default:
			return fmt.Errorf("hc595: lines %q: must be %q or %q", h.Lines, linesSegments, linesDigits)
		}
	}

	if !wantDigits && len(cfg.Digits) != 0 {
		return errors.New("digits: must be empty when the hc595 drives the digits")
	}
	if wantDigits && (len(cfg.Digits) == 0 || len(cfg.Digits) > sevseg.MaxDigits) {
		return fmt.Errorf("digits: got %d pins, need 1 to %d", len(cfg.Digits), sevseg.MaxDigits)
	}
	if !wantSegments && len(cfg.Segments) != 0 {
		return errors.New("segments: must be empty when the hc595 drives the segments")
	}
	if wantSegments && len(cfg.Segments) != sevseg.NumSegments {
		return fmt.Errorf("segments: got %d pins, need %d", len(cfg.Segments), sevseg.NumSegments)
	}

	seen := map[string]string{}
	for _, l := range []struct {
		what  string
		names []string
	}{{"digits", cfg.Digits}, {"segments", cfg.Segments}} {
		for i, name := range l.names {
			if name == "" {
				return fmt.Errorf("%s[%d]: empty pin name", l.what, i)
			}
			key := fmt.Sprintf("%s[%d]", l.what, i)
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("pin %s used by both %s and %s", name, prev, key)
			}
			seen[name] = key
		}
	}
	return nil
}
