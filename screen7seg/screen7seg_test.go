// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen7seg

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, &Opts{Digits: 2})
	if d.String() != "Screen7Seg" {
		t.Errorf("unexpected name %q", d.String())
	}
	// "7." and a blank digit.
	n, err := d.Write([]byte{0x87})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 code written, got %d", n)
	}
	out := buf.String()
	on := ansi256.Default.Block(color.NRGBA{255, 0, 0, 255})
	if c := strings.Count(out, on); c != 4 {
		t.Errorf("expected 4 lit segments, got %d", c)
	}
	if c := strings.Count(out, "\n"); c != rows {
		t.Errorf("expected %d lines, got %d", rows, c)
	}
	if strings.Contains(out, "\033[5A") {
		t.Error("first drawing must not move the cursor up")
	}

	buf.Reset()
	if _, err := d.Write([]byte{0x7f, 0xff}); err != nil {
		t.Fatal(err)
	}
	out = buf.String()
	if !strings.HasPrefix(out, "\033[5A") {
		t.Error("expected the drawing to be redrawn in place")
	}
	if c := strings.Count(out, on); c != 15 {
		t.Errorf("expected 15 lit segments, got %d", c)
	}

	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m\n" {
		t.Errorf("unexpected halt output %q", buf.String())
	}
}

func TestColors(t *testing.T) {
	var buf bytes.Buffer
	on := color.NRGBA{0, 255, 0, 255}
	off := color.NRGBA{0, 0, 255, 255}
	d := NewWriter(&buf, &Opts{Digits: 1, On: on, Off: off})
	if _, err := d.Write([]byte{0x01}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if c := strings.Count(out, ansi256.Default.Block(on)); c != 1 {
		t.Errorf("expected 1 lit segment, got %d", c)
	}
	if c := strings.Count(out, ansi256.Default.Block(off)); c != 7 {
		t.Errorf("expected 7 unlit segments, got %d", c)
	}
}
