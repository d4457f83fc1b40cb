// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp960x

import (
	"math"

	"golang.org/x/exp/constraints"
	"periph.io/x/conn/v3/physic"
)

const (
	// LSB of the hot junction, delta, cold junction and alert limit
	// registers.
	hotJunctionStep physic.Temperature = 62_500 * physic.MicroKelvin
	// Alert limits ignore the two low order bits.
	alertLimitStep physic.Temperature = 250 * physic.MilliKelvin
	// Alert hysteresis is a whole number of degrees.
	hysteresisStep physic.Temperature = physic.Kelvin
)

func inRange[T constraints.Integer](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// decodeTemperature converts a big-endian register value into a temperature
// difference from 0°C. The dropBits low order bits are discarded first, which
// moves the sign bit down to bit 15-dropBits.
func decodeTemperature(b []byte, step physic.Temperature, dropBits uint) physic.Temperature {
	raw := uint16(b[0])<<8 | uint16(b[1])
	bits := 16 - dropBits
	count := int32(raw >> dropBits)
	if count >= 1<<(bits-1) {
		count -= 1 << bits
	}
	return physic.Temperature(count) * (step << dropBits)
}

// decodeHotJunction decodes the hot junction and delta registers.
func decodeHotJunction(b []byte, res ADCResolution) physic.Temperature {
	return decodeTemperature(b, hotJunctionStep, adcDropBits[res])
}

// decodeColdJunction decodes the cold junction register, scaled by the
// configured cold junction resolution.
func decodeColdJunction(b []byte, res ColdJunctionResolution) physic.Temperature {
	return decodeTemperature(b, res.Step(), 0)
}

// divRound divides rounding half away from zero.
func divRound(a, b int64) int64 {
	if a < 0 {
		return (a - b/2) / b
	}
	return (a + b/2) / b
}

func toCelsius(t physic.Temperature) float64 {
	return float64(t) / float64(physic.Celsius)
}

// encodeTemperature is the inverse of decodeTemperature for a register with
// the hot junction layout. t is rounded to the nearest multiple of step,
// which must itself be a multiple of the register LSB.
func encodeTemperature(field string, t, step physic.Temperature) ([]byte, error) {
	ratio := int64(step / hotJunctionStep)
	lo := math.MinInt16 / ratio
	hi := math.MaxInt16 / ratio
	q := divRound(int64(t), int64(step))
	if !inRange(q, lo, hi) {
		return nil, &ValueEncodingError{
			Field: field,
			Value: toCelsius(t),
			Min:   toCelsius(physic.Temperature(lo) * step),
			Max:   toCelsius(physic.Temperature(hi) * step),
		}
	}
	v := uint16(int16(q * ratio))
	return []byte{byte(v >> 8), byte(v)}, nil
}

func encodeLimit(limit physic.Temperature) ([]byte, error) {
	return encodeTemperature("limit", limit-physic.ZeroCelsius, alertLimitStep)
}

func decodeLimit(b []byte) physic.Temperature {
	return physic.ZeroCelsius + decodeTemperature(b, hotJunctionStep, 2)
}

func encodeHysteresis(h physic.Temperature) (byte, error) {
	q := divRound(int64(h), int64(hysteresisStep))
	if !inRange(q, 0, math.MaxUint8) {
		return 0, &ValueEncodingError{Field: "hysteresis", Value: toCelsius(h), Min: 0, Max: math.MaxUint8}
	}
	return byte(q), nil
}

func decodeHysteresis(b byte) physic.Temperature {
	return physic.Temperature(b) * hysteresisStep
}

// encodeSensorConfig packs the thermocouple type and filter level. Both must
// be valid.
func encodeSensorConfig(t ThermocoupleType, f FilterLevel) byte {
	return byte(t)<<sensorTypeShift | byte(f)&sensorFilterMask
}

func decodeSensorConfig(b byte) (ThermocoupleType, FilterLevel, error) {
	if b&sensorReservedMask != 0 {
		return 0, 0, &UnsupportedEncodingError{Register: regSensorConfig, Value: b, Reason: "reserved bits set"}
	}
	return ThermocoupleType((b & sensorTypeMask) >> sensorTypeShift), FilterLevel(b & sensorFilterMask), nil
}

func encodeDeviceConfig(o *Opts) byte {
	return byte(o.ColdJunction)<<devColdJunctionShift |
		byte(o.ADC)<<devADCShift |
		byte(o.BurstSamples)<<devBurstShift |
		byte(o.Mode)&devModeMask
}

// decodeDeviceConfig fills the device configuration fields of o.
func decodeDeviceConfig(b byte, o *Opts) error {
	mode := Mode(b & devModeMask)
	if mode > ModeBurst {
		return &UnsupportedEncodingError{Register: regDeviceConfig, Value: b, Reason: "unimplemented shutdown mode"}
	}
	o.ColdJunction = ColdJunctionResolution(b >> devColdJunctionShift)
	o.ADC = ADCResolution((b & devADCMask) >> devADCShift)
	o.BurstSamples = BurstSamples((b & devBurstMask) >> devBurstShift)
	o.Mode = mode
	return nil
}

func encodeAlertConfig(a *Alert, clearInterrupt bool) byte {
	var b byte
	if clearInterrupt {
		b |= alertIntClear
	}
	if a.Source == ColdJunction {
		b |= alertMonitorCold
	}
	if a.Direction == Rising {
		b |= alertRising
	}
	if a.ActiveHigh {
		b |= alertActiveHigh
	}
	if a.Interrupt {
		b |= alertInterrupt
	}
	if a.Enabled {
		b |= alertEnable
	}
	return b
}

// decodeAlertConfig fills the configuration fields of a from register reg.
func decodeAlertConfig(reg, b byte, a *Alert) error {
	if b&alertReservedMask != 0 {
		return &UnsupportedEncodingError{Register: reg, Value: b, Reason: "reserved bits set"}
	}
	a.Source = HotJunction
	if b&alertMonitorCold != 0 {
		a.Source = ColdJunction
	}
	a.Direction = Falling
	if b&alertRising != 0 {
		a.Direction = Rising
	}
	a.ActiveHigh = b&alertActiveHigh != 0
	a.Interrupt = b&alertInterrupt != 0
	a.Enabled = b&alertEnable != 0
	return nil
}

// decodeADC sign extends the 24 bit raw ADC register.
func decodeADC(b []byte) int32 {
	v := int32(b[0])<<16 | int32(b[1])<<8 | int32(b[2])
	if v&0x800000 != 0 {
		v -= 1 << 24
	}
	return v
}

func decodeDeviceID(b []byte) DeviceID {
	return DeviceID{ID: b[0], Revision: b[1]}
}
