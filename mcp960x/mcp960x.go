// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp960x

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// DefaultAddress is the address with the ADDR pin left floating or pulled
// up. Other straps select 0x60-0x66.
const DefaultAddress uint16 = 0x67

// Dev represents a MCP9600 or MCP9601.
type Dev struct {
	t    Transport
	addr uint16
	name string
	id   DeviceID

	mu       sync.Mutex
	opts     Opts
	shutdown chan struct{}
	halted   bool
}

// NewI2C returns a new device on the specified bus and address. If opts is
// nil, DefaultOpts is used.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	return New(&TxTransport{Bus: b}, addr, opts)
}

// New returns a new device using the transport t. The options are validated
// before any bus traffic. The device ID is then checked and the options
// written to the device.
func New(t Transport, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	var errs []error
	if addr > 0x7f {
		errs = append(errs, &InvalidConfigurationError{Field: "address", Value: fmt.Sprintf("0x%x", addr), Reason: "not a 7 bit address"})
	}
	errs = append(errs, opts.Validate())
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%T", t)
	if s, ok := t.(fmt.Stringer); ok {
		name = s.String()
	}
	dev := &Dev{t: t, addr: addr, name: fmt.Sprintf("%s(0x%02x)", name, addr)}

	id, err := dev.readDeviceID()
	if err != nil {
		return nil, err
	}
	if id.Variant() == VariantUnknown {
		return nil, &UnsupportedEncodingError{Register: regDeviceID, Value: id.ID, Reason: "not a MCP9600 or MCP9601"}
	}
	dev.id = id

	if err := dev.writeRegister(regSensorConfig, encodeSensorConfig(opts.Thermocouple, opts.Filter)); err != nil {
		return nil, err
	}
	if err := dev.writeRegister(regDeviceConfig, encodeDeviceConfig(opts)); err != nil {
		return nil, err
	}
	dev.opts = *opts
	return dev, nil
}

func (dev *Dev) readRegister(reg byte, n int) ([]byte, error) {
	r := make([]byte, n)
	if err := dev.t.ReadRegister(dev.addr, reg, r); err != nil {
		return nil, &TransportError{Op: "read", Register: reg, Err: err}
	}
	return r, nil
}

func (dev *Dev) writeRegister(reg byte, w ...byte) error {
	if err := dev.t.WriteRegister(dev.addr, reg, w); err != nil {
		return &TransportError{Op: "write", Register: reg, Err: err}
	}
	return nil
}

func (dev *Dev) readDeviceID() (DeviceID, error) {
	r, err := dev.readRegister(regDeviceID, 2)
	if err != nil {
		return DeviceID{}, err
	}
	return decodeDeviceID(r), nil
}

// wake restores the configured mode after Halt.
func (dev *Dev) wake() error {
	if !dev.halted {
		return nil
	}
	if err := dev.writeRegister(regDeviceConfig, encodeDeviceConfig(&dev.opts)); err != nil {
		return err
	}
	dev.halted = false
	return nil
}

// Configure validates opts and writes them to the device. The options
// returned by Opts only change once both configuration registers were
// written. If the second write fails, the previous sensor configuration is
// written back before the error is returned.
func (dev *Dev) Configure(opts *Opts) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()

	prev := encodeSensorConfig(dev.opts.Thermocouple, dev.opts.Filter)
	if err := dev.writeRegister(regSensorConfig, encodeSensorConfig(opts.Thermocouple, opts.Filter)); err != nil {
		return err
	}
	if err := dev.writeRegister(regDeviceConfig, encodeDeviceConfig(opts)); err != nil {
		_ = dev.writeRegister(regSensorConfig, prev)
		return err
	}
	dev.opts = *opts
	dev.halted = false
	return nil
}

// Opts returns the configuration last written to the device.
func (dev *Dev) Opts() Opts {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.opts
}

// ReadConfiguration reads both configuration registers back from the device.
func (dev *Dev) ReadConfiguration() (Opts, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	var o Opts
	r, err := dev.readRegister(regSensorConfig, 2)
	if err != nil {
		return o, err
	}
	if o.Thermocouple, o.Filter, err = decodeSensorConfig(r[0]); err != nil {
		return o, err
	}
	err = decodeDeviceConfig(r[1], &o)
	return o, err
}

// ReadTemperatures reads the hot junction, delta and cold junction
// registers in one transaction, so the three values come from the same
// conversion. If the read fails, the error is returned with an empty Reading.
func (dev *Dev) ReadTemperatures() (Reading, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.readTemperatures()
}

func (dev *Dev) readTemperatures() (Reading, error) {
	if err := dev.wake(); err != nil {
		return Reading{}, err
	}
	// The register pointer auto-increments from 0x00 through 0x02.
	r, err := dev.readRegister(regHotJunction, 6)
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Hot:   physic.ZeroCelsius + decodeHotJunction(r[0:2], dev.opts.ADC),
		Delta: decodeHotJunction(r[2:4], dev.opts.ADC),
		Cold:  physic.ZeroCelsius + decodeColdJunction(r[4:6], dev.opts.ColdJunction),
	}, nil
}

// ReadADC returns the raw thermocouple EMF.
func (dev *Dev) ReadADC() (physic.ElectricPotential, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.wake(); err != nil {
		return 0, err
	}
	r, err := dev.readRegister(regRawADC, 3)
	if err != nil {
		return 0, err
	}
	return physic.ElectricPotential(decodeADC(r)) * adcLSB[dev.opts.ADC], nil
}

// DeviceID reads the device ID and silicon revision.
func (dev *Dev) DeviceID() (DeviceID, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.readDeviceID()
}

// Variant returns the part detected when the device was opened.
func (dev *Dev) Variant() Variant {
	return dev.id.Variant()
}

// ReadStatus returns the STATUS register. StatusShortCircuit is always
// cleared for a MCP9600, where the bit is not implemented.
func (dev *Dev) ReadStatus() (Status, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.readStatus()
}

func (dev *Dev) readStatus() (Status, error) {
	r, err := dev.readRegister(regStatus, 1)
	if err != nil {
		return 0, err
	}
	s := Status(r[0])
	if dev.id.Variant() != VariantMCP9601 {
		s &^= StatusShortCircuit
	}
	return s, nil
}

// ClearStatus clears the StatusBurstComplete and StatusUpdated flags set in
// flags. Other flags reflect the device state and can't be cleared.
func (dev *Dev) ClearStatus(flags Status) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	r, err := dev.readRegister(regStatus, 1)
	if err != nil {
		return err
	}
	return dev.writeRegister(regStatus, r[0]&^byte(flags&statusClearable))
}

// Halt stops SenseContinuous and puts the device in shutdown mode. The next
// read restores the configured mode. Implements conn.Resource.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.shutdown != nil {
		close(dev.shutdown)
		dev.shutdown = nil
	}
	if dev.halted {
		return nil
	}
	o := dev.opts
	o.Mode = ModeShutdown
	if err := dev.writeRegister(regDeviceConfig, encodeDeviceConfig(&o)); err != nil {
		return err
	}
	dev.halted = true
	return nil
}

// Sense reads the hot junction temperature into env. Implements
// physic.SenseEnv.
func (dev *Dev) Sense(env *physic.Env) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.sense(env)
}

func (dev *Dev) sense(env *physic.Env) error {
	env.Temperature = 0
	env.Pressure = 0
	env.Humidity = 0
	r, err := dev.readTemperatures()
	if err != nil {
		return err
	}
	env.Temperature = r.Hot
	return nil
}

// SenseContinuous reads the hot junction temperature every interval and
// writes it to the returned channel. Implements physic.SenseEnv. To
// terminate the continuous read, call Halt().
//
// The interval can't be shorter than the conversion time of the configured
// ADC resolution.
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.shutdown != nil {
		return nil, errors.New("mcp960x: SenseContinuous already running")
	}
	if conv := dev.opts.ADC.ConversionTime(); interval < conv {
		return nil, fmt.Errorf("mcp960x: interval %s is shorter than the conversion time %s", interval, conv)
	}
	dev.shutdown = make(chan struct{})
	ch := make(chan physic.Env, 16)
	go dev.senseLoop(interval, ch, dev.shutdown)
	return ch, nil
}

func (dev *Dev) senseLoop(interval time.Duration, ch chan<- physic.Env, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(ch)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			env := physic.Env{}
			dev.mu.Lock()
			select {
			case <-stop:
				dev.mu.Unlock()
				return
			default:
			}
			err := dev.sense(&env)
			dev.mu.Unlock()
			if err == nil {
				select {
				case ch <- env:
				default:
				}
			}
		}
	}
}

// Precision returns the effective hot junction resolution at the configured
// ADC resolution.
func (dev *Dev) Precision(env *physic.Env) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	env.Temperature = dev.opts.ADC.Step()
	env.Pressure = 0
	env.Humidity = 0
}

func (dev *Dev) String() string {
	return fmt.Sprintf("mcp960x: %s", dev.name)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
