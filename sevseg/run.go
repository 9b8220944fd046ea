// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
)

// Run calls Update every interval until ctx is done, then clears the display
// and returns ctx.Err().
//
// For a flicker free display, interval*Steps() should be below ~16ms. A nil
// clk uses the real clock. Pin errors are logged once and don't stop the scan.
func (d *Dev) Run(ctx context.Context, clk clockwork.Clock, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("sevseg: refresh interval must be positive")
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	t := clk.NewTicker(interval)
	defer t.Stop()
	failed := false
	for {
		select {
		case <-ctx.Done():
			if err := d.Clear(); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.Chan():
			if err := d.Update(); err != nil && !failed {
				log.Printf("%s: %v", d, err)
				failed = true
			}
		}
	}
}
