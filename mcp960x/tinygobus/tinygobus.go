// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinygobus opens a mcp960x device on a TinyGo drivers.I2C bus and
// reads it in integer units for targets without floating point support.
package tinygobus

import (
	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// New returns a device on bus. An address of 0 selects
// mcp960x.DefaultAddress. If opts is nil, mcp960x.DefaultOpts is used.
func New(bus drivers.I2C, addr uint16, opts *mcp960x.Opts) (*mcp960x.Dev, error) {
	if addr == 0 {
		addr = mcp960x.DefaultAddress
	}
	return mcp960x.New(&mcp960x.TxTransport{Bus: bus}, addr, opts)
}

// Sample is a reading in tenths of a degree Celsius.
type Sample struct {
	HotDeciC   int32
	ColdDeciC  int32
	DeltaDeciC int32
}

// Collect reads the junction temperatures of dev.
func Collect(dev *mcp960x.Dev) (Sample, error) {
	r, err := dev.ReadTemperatures()
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		HotDeciC:   deci(r.Hot - physic.ZeroCelsius),
		ColdDeciC:  deci(r.Cold - physic.ZeroCelsius),
		DeltaDeciC: deci(r.Delta),
	}, nil
}

// deci rounds half away from zero.
func deci(t physic.Temperature) int32 {
	const step = 100 * physic.MilliKelvin
	if t < 0 {
		return int32((t - step/2) / step)
	}
	return int32((t + step/2) / step)
}

var _ mcp960x.Txer = drivers.I2C(nil)
