// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/sevseg/sevseg"
	"github.com/GermanBionicSystems/sevseg/sevseg/sevsegtest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	var digits, segments []gpio.PinOut
	for _, name := range []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"} {
		p := gpioreg.ByName(name)
		if p == nil {
			log.Fatalf("no pin %s", name)
		}
		digits = append(digits, p)
	}
	for _, name := range []string{"GPIO4", "GPIO17", "GPIO27", "GPIO22", "GPIO10", "GPIO9", "GPIO11", "GPIO26"} {
		p := gpioreg.ByName(name)
		if p == nil {
			log.Fatalf("no pin %s", name)
		}
		segments = append(segments, p)
	}

	dev, err := sevseg.New(&sevseg.Opts{
		Hardware:    sevseg.CommonCathode,
		Resistors:   sevseg.ResistorsOnSegments,
		DigitPins:   digits,
		SegmentPins: segments,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	dev.SetFloat(21.5, 1)
	dev.SetBrightness(60)
	// Blocking refresh from the main loop, for 5 seconds.
	for end := time.Now().Add(5 * time.Second); time.Now().Before(end); {
		if err := dev.Refresh(); err != nil {
			log.Fatal(err)
		}
	}

	// Or let Run refresh one digit every 2ms from its own goroutine.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go func() {
		for i := range 50 {
			dev.SetNumber(int64(i), 0)
			time.Sleep(100 * time.Millisecond)
		}
	}()
	_ = dev.Run(ctx, nil, 2*time.Millisecond)
}

func ExampleDev_SetNumber() {
	digitOn, segmentOn := sevseg.CommonAnode.Levels()
	panel := sevsegtest.NewPanel(4, digitOn, segmentOn)
	dev, err := sevseg.New(&sevseg.Opts{
		Hardware:    sevseg.CommonAnode,
		DigitPins:   panel.DigitPins,
		SegmentPins: panel.SegmentPins,
	})
	if err != nil {
		log.Fatal(err)
	}
	// -0.42
	dev.SetNumber(-42, 2)
	fmt.Printf("%v\n", sevseg.DecomposeDigits(-42, 2, 4))
	fmt.Printf("% x\n", dev.Codes())
	// Output:
	// [- 0 4 2]
	// 40 bf 66 5b
}
