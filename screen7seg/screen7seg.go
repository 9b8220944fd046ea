// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen7seg emulates a seven-segment LED array on the terminal
// (stdout) using ANSI color codes.
//
// Useful while the display is still on its way by mail, or to watch what a
// multiplexed driver does through a sevsegtest.Panel.
package screen7seg

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// rows is the height of a digit in blocks.
const rows = 5

// cell is a position in the 4x5 block grid of a digit. The segment is -1 for
// the positions that never light up.
type cell struct {
	segment int
}

// grid lays out segments A to G and the decimal point:
//
//	 A
//	F B
//	 G
//	E C
//	 D H
var grid = [rows][4]cell{
	{{-1}, {0}, {-1}, {-1}},
	{{5}, {-1}, {1}, {-1}},
	{{-1}, {6}, {-1}, {-1}},
	{{4}, {-1}, {2}, {-1}},
	{{-1}, {3}, {-1}, {7}},
}

// Opts represents the options available for this display.
type Opts struct {
	Digits  int
	Palette *ansi256.Palette
	// On is the color of a lit segment. It defaults to red.
	On color.NRGBA
	// Off is the color of an unlit segment. It defaults to a dark red.
	Off color.NRGBA

	_ struct{}
}

// Dev is a seven-segment array emulator that outputs to the console.
type Dev struct {
	w     io.Writer
	on    string
	off   string
	codes []byte
	drawn bool

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes to w.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on, off := opts.On, opts.Off
	if on.A == 0 {
		on = color.NRGBA{255, 0, 0, 255}
	}
	if off.A == 0 {
		off = color.NRGBA{48, 0, 0, 255}
	}
	return &Dev{
		w:     w,
		on:    p.Block(on),
		off:   p.Block(off),
		codes: make([]byte, opts.Digits),
	}
}

func (d *Dev) String() string {
	return "Screen7Seg"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Write accepts one segment code per digit, bit 0 being segment A and bit 7
// the decimal point, and redraws the digits in place.
func (d *Dev) Write(codes []byte) (int, error) {
	n := copy(d.codes, codes)
	clear(d.codes[n:])
	return n, d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.drawn {
		// Go back to the top of the previous drawing.
		fmt.Fprintf(&d.buf, "\033[%dA", rows)
	}
	for r := range rows {
		_, _ = d.buf.WriteString("\r\033[0m")
		for _, code := range d.codes {
			for _, c := range grid[r] {
				switch {
				case c.segment < 0:
					_, _ = d.buf.WriteString("\033[0m  ")
				case code&(1<<uint(c.segment)) != 0:
					_, _ = d.buf.WriteString(d.on)
				default:
					_, _ = d.buf.WriteString(d.off)
				}
			}
			_, _ = d.buf.WriteString("\033[0m  ")
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ io.Writer = &Dev{}
var _ fmt.Stringer = &Dev{}
