// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Config is the optional YAML configuration file.
type Config struct {
	Device DeviceConfig  `yaml:"device"`
	Alerts []AlertConfig `yaml:"alerts"`
	Modbus *ModbusConfig `yaml:"modbus"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Bus     string  `yaml:"bus"`
	Address *uint16 `yaml:"address"`

	// Empty or zero fields keep mcp960x.DefaultOpts.
	Thermocouple     string  `yaml:"thermocouple"`
	Filter           *uint8  `yaml:"filter"`
	ADCBits          int     `yaml:"adc_bits"`
	ColdJunctionStep float64 `yaml:"cold_junction_step"`
	IntervalMs       int     `yaml:"interval_ms"`
}

// ---- ALERTS ----

type AlertConfig struct {
	Slot        int     `yaml:"slot"`
	LimitC      float64 `yaml:"limit_c"`
	HysteresisC float64 `yaml:"hysteresis_c"`
	Direction   string  `yaml:"direction"` // rising (default) or falling
	Source      string  `yaml:"source"`    // hot (default) or cold
	ActiveHigh  bool    `yaml:"active_high"`
	Interrupt   bool    `yaml:"interrupt"`
}

// ---- MODBUS ----

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Address   uint16 `yaml:"address"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Load reads and decodes path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration without modifying it. Every problem is
// reported.
func Validate(cfg *Config) error {
	var errs []error
	if _, err := cfg.Device.Opts(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Device.Address != nil && *cfg.Device.Address > 0x7f {
		errs = append(errs, fmt.Errorf("device: address 0x%x is not a 7 bit address", *cfg.Device.Address))
	}
	if cfg.Device.IntervalMs < 0 {
		errs = append(errs, fmt.Errorf("device: interval_ms %d is negative", cfg.Device.IntervalMs))
	}
	seen := map[int]bool{}
	for _, a := range cfg.Alerts {
		if seen[a.Slot] {
			errs = append(errs, fmt.Errorf("alerts: slot %d configured twice", a.Slot))
		}
		seen[a.Slot] = true
		if _, err := a.Alert(); err != nil {
			errs = append(errs, fmt.Errorf("alerts: slot %d: %w", a.Slot, err))
		}
	}
	if m := cfg.Modbus; m != nil {
		if m.Endpoint == "" {
			errs = append(errs, errors.New("modbus: endpoint required"))
		}
		if m.TimeoutMs < 0 {
			errs = append(errs, fmt.Errorf("modbus: timeout_ms %d is negative", m.TimeoutMs))
		}
		if int(m.Address)+numRegisters > math.MaxUint16+1 {
			errs = append(errs, fmt.Errorf("modbus: address %d leaves no room for %d registers", m.Address, numRegisters))
		}
	}
	return errors.Join(errs...)
}

// Opts returns the device options, starting from mcp960x.DefaultOpts.
func (d *DeviceConfig) Opts() (mcp960x.Opts, error) {
	o := mcp960x.DefaultOpts
	var errs []error
	if d.Thermocouple != "" {
		t, err := mcp960x.ParseThermocoupleType(d.Thermocouple)
		errs = append(errs, err)
		o.Thermocouple = t
	}
	if d.Filter != nil {
		o.Filter = mcp960x.FilterLevel(*d.Filter)
	}
	if d.ADCBits != 0 {
		r, err := mcp960x.ParseADCResolution(d.ADCBits)
		errs = append(errs, err)
		o.ADC = r
	}
	if d.ColdJunctionStep != 0 {
		r, err := mcp960x.ParseColdJunctionResolution(d.ColdJunctionStep)
		errs = append(errs, err)
		o.ColdJunction = r
	}
	if err := errors.Join(errs...); err != nil {
		return o, err
	}
	return o, o.Validate()
}

// ResolveAddress returns the I²C address to use: override when non zero,
// then the configured address, then mcp960x.DefaultAddress.
func (d *DeviceConfig) ResolveAddress(override uint) (uint16, error) {
	switch {
	case override > 0x7f:
		return 0, fmt.Errorf("address 0x%x is not a 7 bit address", override)
	case override != 0:
		return uint16(override), nil
	case d.Address != nil:
		return *d.Address, nil
	}
	return mcp960x.DefaultAddress, nil
}

// Interval returns the sampling interval, 0 if not set.
func (d *DeviceConfig) Interval() time.Duration {
	return time.Duration(d.IntervalMs) * time.Millisecond
}

// Alert converts the slot configuration. The limits are range checked by
// Dev.SetAlert.
func (a *AlertConfig) Alert() (mcp960x.Alert, error) {
	out := mcp960x.Alert{
		Limit:      physic.ZeroCelsius + celsius(a.LimitC),
		Hysteresis: celsius(a.HysteresisC),
		Direction:  mcp960x.Rising,
		ActiveHigh: a.ActiveHigh,
		Interrupt:  a.Interrupt,
		Enabled:    true,
	}
	switch strings.ToLower(a.Direction) {
	case "", "rising":
	case "falling":
		out.Direction = mcp960x.Falling
	default:
		return out, fmt.Errorf("direction %q must be rising or falling", a.Direction)
	}
	switch strings.ToLower(a.Source) {
	case "", "hot":
	case "cold":
		out.Source = mcp960x.ColdJunction
	default:
		return out, fmt.Errorf("source %q must be hot or cold", a.Source)
	}
	if a.Slot < 1 || a.Slot > mcp960x.NumAlerts {
		return out, fmt.Errorf("slot must be in [1, %d]", mcp960x.NumAlerts)
	}
	return out, nil
}

// celsius converts a temperature difference in °C.
func celsius(c float64) physic.Temperature {
	return physic.Temperature(math.Round(c * float64(physic.Celsius)))
}
