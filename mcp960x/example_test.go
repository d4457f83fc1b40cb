// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp960x_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	opts := mcp960x.DefaultOpts
	opts.Thermocouple = mcp960x.TypeJ
	dev, err := mcp960x.NewI2C(bus, mcp960x.DefaultAddress, &opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	r, err := dev.ReadTemperatures()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %s\n", dev, r)
}

func ExampleDev_SetAlert() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	dev, err := mcp960x.NewI2C(bus, mcp960x.DefaultAddress, nil)
	if err != nil {
		log.Fatal(err)
	}
	// Assert ALERT1 above 200°C, release it below 195°C.
	var limit physic.Temperature
	if err := limit.Set("200C"); err != nil {
		log.Fatal(err)
	}
	a := mcp960x.Alert{
		Limit:      limit,
		Hysteresis: 5 * physic.Kelvin,
		Direction:  mcp960x.Rising,
		ActiveHigh: true,
		Enabled:    true,
	}
	if err := dev.SetAlert(1, a); err != nil {
		log.Fatal(err)
	}
	s, err := dev.ReadStatus()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("alert 1 active: %t\n", s.AlertActive(1))
}
