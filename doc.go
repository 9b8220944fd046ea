// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for drivers and tools for multiplexed
// seven-segment LED arrays wired directly to GPIO lines.
//
// The driver itself lives in package sevseg. screen7seg and sevsegimg render
// segment codes on a terminal or into an image, hc595 and rpiogpio provide
// alternative pin backends and cmd/sevseg ties everything to a YAML wiring
// file.
package devices
