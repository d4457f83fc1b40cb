// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp960x

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// NumAlerts is the number of alert slots. Slots are numbered 1 to NumAlerts
// like the ALERT pins.
const NumAlerts = 4

// Direction selects whether an alert trips while heating or cooling.
type Direction uint8

const (
	Falling Direction = iota
	Rising
)

// Junction is the temperature an alert monitors.
type Junction uint8

const (
	HotJunction Junction = iota
	ColdJunction
)

// Alert is the configuration and state of one alert slot.
//
// In comparator mode the output is asserted while the temperature is past
// Limit and released once it came back by Hysteresis. In interrupt mode it
// stays asserted until cleared with ClearAlert.
type Alert struct {
	// Limit is stored with a resolution of 0.25°C.
	Limit physic.Temperature
	// Hysteresis is a temperature difference, 0-255°C in 1°C steps.
	Hysteresis physic.Temperature
	Direction  Direction
	Source     Junction
	ActiveHigh bool
	Interrupt  bool
	Enabled    bool

	// Active is the alert state reported by the device. It is ignored by
	// SetAlert.
	Active bool
}

func (a *Alert) String() string {
	return fmt.Sprintf("{Limit: %s, Hysteresis: %s, Rising: %t, ColdJunction: %t, ActiveHigh: %t, Interrupt: %t, Enabled: %t, Active: %t}",
		a.Limit, a.Hysteresis+physic.ZeroCelsius, a.Direction == Rising, a.Source == ColdJunction,
		a.ActiveHigh, a.Interrupt, a.Enabled, a.Active)
}

func checkSlot(slot int) error {
	if !inRange(slot, 1, NumAlerts) {
		return &InvalidConfigurationError{Field: "alert slot", Value: slot, Reason: "must be in [1, 4]"}
	}
	return nil
}

// SetAlert writes the alert configuration of slot. The limit and hysteresis
// are encoded before anything is written; a *ValueEncodingError means the
// device was left untouched. The configuration register is written last so
// the alert is only enabled once its limits are in place.
func (dev *Dev) SetAlert(slot int, a Alert) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	limit, err := encodeLimit(a.Limit)
	if err != nil {
		return err
	}
	hyst, err := encodeHysteresis(a.Hysteresis)
	if err != nil {
		return err
	}
	cfg := encodeAlertConfig(&a, false)

	dev.mu.Lock()
	defer dev.mu.Unlock()
	ix := byte(slot - 1)
	if err := dev.writeRegister(regAlertLimit+ix, limit...); err != nil {
		return err
	}
	if err := dev.writeRegister(regAlertHysteresis+ix, hyst); err != nil {
		return err
	}
	return dev.writeRegister(regAlertConfig+ix, cfg)
}

// Alert reads the configuration and state of slot from the device.
func (dev *Dev) Alert(slot int) (Alert, error) {
	if err := checkSlot(slot); err != nil {
		return Alert{}, err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	status, err := dev.readStatus()
	if err != nil {
		return Alert{}, err
	}
	return dev.readAlert(slot, status)
}

// Alerts reads all the alert slots. Index 0 is slot 1.
func (dev *Dev) Alerts() ([NumAlerts]Alert, error) {
	var alerts [NumAlerts]Alert
	dev.mu.Lock()
	defer dev.mu.Unlock()
	status, err := dev.readStatus()
	if err != nil {
		return alerts, err
	}
	for ix := range alerts {
		if alerts[ix], err = dev.readAlert(ix+1, status); err != nil {
			return [NumAlerts]Alert{}, err
		}
	}
	return alerts, nil
}

func (dev *Dev) readAlert(slot int, status Status) (Alert, error) {
	ix := byte(slot - 1)
	var a Alert
	cfg, err := dev.readRegister(regAlertConfig+ix, 1)
	if err != nil {
		return Alert{}, err
	}
	if err := decodeAlertConfig(regAlertConfig+ix, cfg[0], &a); err != nil {
		return Alert{}, err
	}
	limit, err := dev.readRegister(regAlertLimit+ix, 2)
	if err != nil {
		return Alert{}, err
	}
	hyst, err := dev.readRegister(regAlertHysteresis+ix, 1)
	if err != nil {
		return Alert{}, err
	}
	a.Limit = decodeLimit(limit)
	a.Hysteresis = decodeHysteresis(hyst[0])
	a.Active = status.AlertActive(slot)
	return a, nil
}

// ClearAlert clears a latched interrupt mode alert.
func (dev *Dev) ClearAlert(slot int) error {
	return dev.updateAlertConfig(slot, alertIntClear, 0)
}

// DisableAlert disables the output of slot, leaving the limits in place.
func (dev *Dev) DisableAlert(slot int) error {
	return dev.updateAlertConfig(slot, 0, alertEnable)
}

func (dev *Dev) updateAlertConfig(slot int, set, unset byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	reg := regAlertConfig + byte(slot-1)
	r, err := dev.readRegister(reg, 1)
	if err != nil {
		return err
	}
	if r[0]&alertReservedMask != 0 {
		return &UnsupportedEncodingError{Register: reg, Value: r[0], Reason: "reserved bits set"}
	}
	return dev.writeRegister(reg, r[0]&^unset|set)
}
