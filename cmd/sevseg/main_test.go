// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"testing"
	"time"

	"github.com/GermanBionicSystems/sevseg/sevseg"
	"gotest.tools/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in       string
		decimals int
		want     float64
		wantDP   int
	}{
		{"3.14", -1, 3.14, 2},
		{"42", -1, 42, 0},
		{"-0.5", -1, -0.5, 1},
		{"7", 2, 7, 2},
		{"1.25", 1, 1.25, 1},
	}
	for _, tt := range tests {
		v, dp, err := parseValue(tt.in, tt.decimals)
		assert.NilError(t, err, tt.in)
		assert.Equal(t, v, tt.want, tt.in)
		assert.Equal(t, dp, tt.wantDP, tt.in)
	}
	_, _, err := parseValue("pi", -1)
	assert.ErrorContains(t, err, "invalid value")
	_, _, err = parseValue("1", 9)
	assert.ErrorContains(t, err, "decimals")
}

func TestEmulatedDisplay(t *testing.T) {
	cfg := validConfig()
	cfg.Hardware = sevseg.CommonAnode
	b := 0
	cfg.Brightness = &b
	d, err := newDisplay(cfg, true)
	assert.NilError(t, err)
	assert.Equal(t, d.dev.Digits(), 2)
	assert.Equal(t, d.dev.OnTime(), time.Microsecond)
	assert.Assert(t, d.panel.AllOff())

	d.dev.SetFloat(4.2, 1)
	assert.NilError(t, d.dev.Refresh())
	// The point is lit after 4 as the number has one decimal.
	assert.DeepEqual(t, d.panel.Seen(), []byte{0x66 | sevseg.DecimalPoint, 0x5b})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NilError(t, block(ctx, d.dev))
	assert.Assert(t, d.panel.AllOff())
	assert.NilError(t, d.Close())
}
