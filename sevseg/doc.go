// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sevseg drives a multiplexed seven-segment LED array directly from
// GPIO lines, without a dedicated display controller.
//
// Only one digit (or one segment, depending on where the current limiting
// resistors sit) is lit at any instant. Cycling through all of them faster
// than ~60Hz makes the whole number appear lit.
//
// # Segment codes
//
// Each digit is described by one byte, bit 0 being segment A:
//
//	 AAAA          0000
//	F    B        5    1
//	F    B        5    1
//	 GGGG          6666
//	E    C        4    2
//	E    C        4    2
//	 DDDD  H       3333  7
//
// Segment H is the decimal point.
//
// # Refresh
//
// Call Dev.Refresh in the main loop for a blocking cycle whose length depends
// on the brightness, or call Dev.Update from a periodic source (see Dev.Run)
// to advance the display one step at a time.
package sevseg
