// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sevseg shows a number on a multiplexed seven-segment LED display.
//
// The wiring is described in a YAML file:
//
//	hardware: common-cathode
//	resistors: segments
//	digits: [GPIO5, GPIO6, GPIO13, GPIO19]
//	segments: [GPIO17, GPIO27, GPIO22, GPIO23, GPIO24, GPIO25, GPIO12, GPIO16]
//	brightness: 80
//	log_file: /var/log/sevseg.log
//
// Use -emulate to watch the display on the terminal instead, and -png to
// save a picture of what is shown.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/sevseg/screen7seg"
	"github.com/GermanBionicSystems/sevseg/sevseg"
	"github.com/GermanBionicSystems/sevseg/sevseg/sevsegtest"
	"github.com/GermanBionicSystems/sevseg/sevsegimg"
	"github.com/jonboulle/clockwork"
	"gopkg.in/natefinch/lumberjack.v2"
)

// emulatedFPS is how often the emulated panel is printed.
const emulatedFPS = 10

// display is a driver and the lines it scans.
type display struct {
	dev   *sevseg.Dev
	pins  *pinSet
	panel *sevsegtest.Panel
}

func (d *display) Close() error {
	return errors.Join(d.dev.Halt(), d.pins.Close())
}

func newDisplay(cfg *Config, emulate bool) (*display, error) {
	d := &display{}
	var err error
	if emulate {
		d.pins, d.panel = emulatedPins(cfg)
	} else if d.pins, err = openPins(cfg); err != nil {
		return nil, err
	}
	d.dev, err = sevseg.New(&sevseg.Opts{
		Hardware:    cfg.Hardware,
		Resistors:   cfg.Resistors,
		DigitPins:   d.pins.digits,
		SegmentPins: d.pins.segments,
	})
	if err != nil {
		return nil, errors.Join(err, d.pins.Close())
	}
	d.dev.SetBrightness(*cfg.Brightness)
	return d, nil
}

// parseValue parses s as a fixed point number. Without an explicit count of
// decimals, the ones written in s are kept.
func parseValue(s string, decimals int) (float64, int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q", s)
	}
	if decimals < 0 {
		decimals = 0
		for i := len(s) - 1; i >= 0; i-- {
			if s[i] == '.' {
				decimals = len(s) - 1 - i
				break
			}
		}
	}
	if decimals > sevseg.MaxDigits {
		return 0, 0, fmt.Errorf("decimals %d: at most %d", decimals, sevseg.MaxDigits)
	}
	return v, decimals, nil
}

// block refreshes in a busy loop until ctx is done.
func block(ctx context.Context, d *sevseg.Dev) error {
	failed := false
	for ctx.Err() == nil {
		if err := d.Refresh(); err != nil && !failed {
			log.Printf("%s: %v", d, err)
			failed = true
		}
	}
	return d.Clear()
}

// mirror prints what a viewer of the panel would see until ctx is done.
func mirror(ctx context.Context, clk clockwork.Clock, panel *sevsegtest.Panel, screen *screen7seg.Dev) {
	t := clk.NewTicker(time.Second / emulatedFPS)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
			seen := panel.Seen()
			panel.Reset()
			if _, err := screen.Write(seen); err != nil {
				log.Printf("%s: %v", screen, err)
			}
		}
	}
}

func mainImpl() error {
	configPath := flag.String("config", "", "YAML wiring file")
	value := flag.String("value", "0", "number to show")
	decimals := flag.Int("decimals", -1, "digits after the decimal point; defaults to the ones in -value")
	brightness := flag.Int("brightness", -1, "brightness in percent; overrides the configuration")
	mode := flag.String("mode", "block", "refresh mode: block or tick")
	interval := flag.Duration("interval", 2*time.Millisecond, "time between two steps in tick mode")
	duration := flag.Duration("duration", 0, "stop after this long; 0 runs until interrupted")
	emulate := flag.Bool("emulate", false, "show the display on the terminal instead of the GPIO pins")
	digits := flag.Int("digits", 4, "number of digits when emulating without -config")
	pngPath := flag.String("png", "", "save a picture of the display to this file")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if *mode != "block" && *mode != "tick" {
		return fmt.Errorf("invalid -mode %q", *mode)
	}

	pngOnly := *configPath == "" && !*emulate && *pngPath != ""
	var cfg *Config
	var err error
	switch {
	case *configPath != "":
		if cfg, err = Load(*configPath); err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
	case *emulate || *pngPath != "":
		cfg = &Config{Digits: make([]string, *digits), Segments: make([]string, sevseg.NumSegments)}
		for i := range cfg.Digits {
			cfg.Digits[i] = fmt.Sprintf("DIG%d", i)
		}
		for i := range cfg.Segments {
			cfg.Segments[i] = fmt.Sprintf("SEG%c", 'A'+i)
		}
		Normalize(cfg)
		*emulate = true
	default:
		return errors.New("-config is required unless -emulate or -png is used")
	}
	if *brightness >= 0 {
		cfg.Brightness = brightness
	}
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{Filename: cfg.LogFile, MaxSize: 5, MaxBackups: 3, MaxAge: 28}
		defer lj.Close()
		log.SetOutput(lj)
	}

	v, dp, err := parseValue(*value, *decimals)
	if err != nil {
		return err
	}

	d, err := newDisplay(cfg, *emulate)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()
	d.dev.SetFloat(v, dp)
	log.Printf("%s: showing %s as %x", d.dev, *value, d.dev.Codes())

	if *pngPath != "" {
		if err := sevsegimg.SavePNG(*pngPath, d.dev.Codes(), &sevsegimg.Opts{Caption: *value}); err != nil {
			return err
		}
		if pngOnly {
			return nil
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	clk := clockwork.NewRealClock()
	if d.panel != nil {
		screen := screen7seg.New(&screen7seg.Opts{Digits: d.dev.Digits()})
		done := make(chan struct{})
		go func() {
			mirror(ctx, clk, d.panel, screen)
			close(done)
		}()
		defer func() {
			cancel()
			<-done
			_ = screen.Halt()
		}()
	}

	if *mode == "tick" {
		err = d.dev.Run(ctx, clk, *interval)
	} else {
		err = block(ctx, d.dev)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "sevseg: %s.\n", err)
		os.Exit(1)
	}
}
