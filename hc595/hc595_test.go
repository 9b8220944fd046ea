// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hc595

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi/spitest"
)

func newRecorded(t *testing.T, opts *Opts) (*Dev, *spitest.Record) {
	t.Helper()
	r := &spitest.Record{}
	d, err := Connect(r, opts)
	if err != nil {
		t.Fatal(err)
	}
	return d, r
}

func written(r *spitest.Record) []byte {
	r.Lock()
	defer r.Unlock()
	var out []byte
	for _, op := range r.Ops {
		out = append(out, op.W...)
	}
	return out
}

func TestPins(t *testing.T) {
	d, r := newRecorded(t, nil)
	if s := d.String(); s != "74HC595" {
		t.Errorf("unexpected name %q", s)
	}
	if n := d.Pins[2].Name(); n != "74HC595_QC" {
		t.Errorf("unexpected pin name %q", n)
	}
	if d.Pins[7].Number() != 7 || d.Pins[7].Function() != "Out" {
		t.Errorf("unexpected pin %s", d.Pins[7])
	}
	// The first write always goes out, even when it is all low.
	steps := []struct {
		pin int
		l   gpio.Level
	}{
		{0, gpio.Low},
		{0, gpio.High},
		{7, gpio.High},
		{7, gpio.High},
		{0, gpio.Low},
	}
	for _, s := range steps {
		if err := d.Pins[s.pin].Out(s.l); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]byte{0x00, 0x01, 0x81, 0x80}, written(r)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if v := d.Value(); v != 0x80 {
		t.Errorf("expected 0x80, got 0x%02x", v)
	}
	if err := d.Pins[1].PWM(gpio.DutyHalf, 0); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
}

func TestWriteInvert(t *testing.T) {
	d, r := newRecorded(t, &Opts{Name: "SEG", Invert: true})
	if err := d.Write(0x3f); err != nil {
		t.Fatal(err)
	}
	if err := d.Out(0x40, 0x40); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0xc0, 0x80}, written(r)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if v := d.Value(); v != 0x7f {
		t.Errorf("expected 0x7f, got 0x%02x", v)
	}
	if n := d.Pins[0].String(); n != "SEG_QA" {
		t.Errorf("unexpected pin name %q", n)
	}
}

func TestHalt(t *testing.T) {
	d, r := newRecorded(t, nil)
	if err := d.Write(0xff); err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0xff, 0x00}, written(r)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if err := d.Pins[3].Out(gpio.High); !errors.Is(err, errHalted) {
		t.Errorf("expected errHalted, got %v", err)
	}
}

func TestTxError(t *testing.T) {
	p := &spitest.Playback{Playback: conntest.Playback{DontPanic: true}}
	d, err := Connect(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Pins[0].Out(gpio.High); err == nil {
		t.Fatal("expected an error")
	}
	if d.Value() != 0 {
		t.Error("a failed write must not update the cached value")
	}
	if _, err := New(nil, nil); err == nil {
		t.Error("expected an error for a nil connection")
	}
}
