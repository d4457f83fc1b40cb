// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"periph.io/x/conn/v3/physic"
)

const sampleConfig = `
device:
  bus: "1"
  address: 0x60
  thermocouple: j
  filter: 0
  adc_bits: 14
  cold_junction_step: 0.25
  interval_ms: 250
alerts:
  - slot: 1
    limit_c: 150.5
    hysteresis_c: 10
  - slot: 3
    limit_c: -20
    direction: falling
    source: cold
    active_high: true
    interrupt: true
modbus:
  endpoint: 127.0.0.1:502
  unit_id: 7
  address: 100
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp960x.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Device.Bus != "1" || cfg.Device.Address == nil || *cfg.Device.Address != 0x60 {
		t.Errorf("unexpected device %+v", cfg.Device)
	}
	opts, err := cfg.Device.Opts()
	if err != nil {
		t.Fatal(err)
	}
	expected := mcp960x.Opts{Thermocouple: mcp960x.TypeJ, Filter: mcp960x.FilterOff, ColdJunction: mcp960x.ColdJunctionCoarse, ADC: mcp960x.ADC14Bit}
	if opts != expected {
		t.Errorf("options %+v, expected %+v", opts, expected)
	}
	if cfg.Device.Interval().Milliseconds() != 250 {
		t.Errorf("unexpected interval %s", cfg.Device.Interval())
	}

	if len(cfg.Alerts) != 2 {
		t.Fatalf("got %d alerts", len(cfg.Alerts))
	}
	a, err := cfg.Alerts[0].Alert()
	if err != nil {
		t.Fatal(err)
	}
	want := mcp960x.Alert{Limit: physic.ZeroCelsius + 150_500*physic.MilliKelvin, Hysteresis: 10 * physic.Kelvin, Direction: mcp960x.Rising, Enabled: true}
	if a != want {
		t.Errorf("alert 1 %s, expected %s", &a, &want)
	}
	a, err = cfg.Alerts[1].Alert()
	if err != nil {
		t.Fatal(err)
	}
	want = mcp960x.Alert{Limit: physic.ZeroCelsius - 20*physic.Kelvin, Direction: mcp960x.Falling, Source: mcp960x.ColdJunction, ActiveHigh: true, Interrupt: true, Enabled: true}
	if a != want {
		t.Errorf("alert 3 %s, expected %s", &a, &want)
	}

	if m := cfg.Modbus; m == nil || m.Endpoint != "127.0.0.1:502" || m.UnitID != 7 || m.Address != 100 {
		t.Errorf("unexpected modbus %+v", cfg.Modbus)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error")
	}
}

func TestDecodeConfigUnknownField(t *testing.T) {
	if _, err := decodeConfig(strings.NewReader("device:\n  speed: 400000\n")); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestValidateEmpty(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.Device.Opts()
	if err != nil {
		t.Fatal(err)
	}
	if opts != mcp960x.DefaultOpts {
		t.Errorf("options %+v, expected the defaults", opts)
	}
}

func TestValidateReportsAll(t *testing.T) {
	addr := uint16(0x80)
	filter := uint8(9)
	cfg := &Config{
		Device: DeviceConfig{Address: &addr, Thermocouple: "X", Filter: &filter, ADCBits: 10, IntervalMs: -1},
		Alerts: []AlertConfig{
			{Slot: 1, Direction: "up"},
			{Slot: 1},
			{Slot: 5},
			{Slot: 2, Source: "ambient"},
		},
		Modbus: &ModbusConfig{Address: 65534, TimeoutMs: -5},
	}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	t.Log(msg)
	for _, s := range []string{
		"invalid thermocouple",
		"invalid adc resolution",
		"address 0x80",
		"interval_ms -1",
		"direction \"up\"",
		"slot 1 configured twice",
		"slot must be in [1, 4]",
		"source \"ambient\"",
		"endpoint required",
		"timeout_ms -5",
		"address 65534",
	} {
		if !strings.Contains(msg, s) {
			t.Errorf("%q not reported", s)
		}
	}
}

func TestResolveAddress(t *testing.T) {
	cfgAddr := uint16(0x60)
	tests := []struct {
		flag     uint
		address  *uint16
		expected uint16
	}{
		{0, nil, mcp960x.DefaultAddress},
		{0, &cfgAddr, 0x60},
		{0x61, &cfgAddr, 0x61},
		{0x7f, nil, 0x7f},
	}
	for _, test := range tests {
		d := DeviceConfig{Address: test.address}
		a, err := d.ResolveAddress(test.flag)
		if err != nil || a != test.expected {
			t.Errorf("ResolveAddress(0x%x) = 0x%x, %v; expected 0x%x", test.flag, a, err, test.expected)
		}
	}
	// 0x10067 would wrap to the default address if truncated to 16 bits.
	for _, flag := range []uint{0x80, 0x10067} {
		d := DeviceConfig{Address: &cfgAddr}
		if a, err := d.ResolveAddress(flag); err == nil {
			t.Errorf("ResolveAddress(0x%x) = 0x%x, expected an error", flag, a)
		}
	}
}
