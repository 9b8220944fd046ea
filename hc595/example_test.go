// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hc595_test

import (
	"log"

	"github.com/GermanBionicSystems/sevseg/hc595"
	"github.com/GermanBionicSystems/sevseg/sevseg"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Open the SPI Bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()
	reg, err := hc595.Connect(p, nil)
	if err != nil {
		log.Fatal(err)
	}
	// The segments sit behind the register, the digits on the header.
	var digits []gpio.PinOut
	for _, name := range []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"} {
		digits = append(digits, gpioreg.ByName(name))
	}
	d, err := sevseg.New(&sevseg.Opts{
		Hardware:    sevseg.CommonCathode,
		DigitPins:   digits,
		SegmentPins: reg.Pins,
	})
	if err != nil {
		log.Fatal(err)
	}
	d.SetFloat(12.5, 1)
	for range 1000 {
		if err := d.Refresh(); err != nil {
			log.Fatal(err)
		}
	}
	if err := d.Halt(); err != nil {
		log.Println(err)
	}
}
