// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import "time"

const (
	minOnTime = 1 * time.Microsecond
	maxOnTime = 2000 * time.Microsecond
)

// onTimeFor maps a brightness in percent to the time a step stays lit in
// Refresh. The input is clamped to [0, 100].
func onTimeFor(percent int) time.Duration {
	percent = max(0, min(percent, 100))
	lo, hi := int(minOnTime/time.Microsecond), int(maxOnTime/time.Microsecond)
	return time.Duration(percent*(hi-lo)/100+lo) * time.Microsecond
}

// SetBrightness sets the brightness used by Refresh, from 0 to 100. Values
// outside that range are clamped.
//
// It has no effect on Update, whose brightness depends on how often it is
// called.
func (d *Dev) SetBrightness(percent int) {
	d.onTime.Store(int64(onTimeFor(percent)))
}

// OnTime returns how long each step stays lit in Refresh.
func (d *Dev) OnTime() time.Duration {
	return time.Duration(d.onTime.Load())
}
