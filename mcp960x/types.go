// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp960x

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/physic"
)

// ThermocoupleType is the thermocouple wired to the device. The value is the
// register encoding.
type ThermocoupleType uint8

const (
	TypeK ThermocoupleType = iota
	TypeJ
	TypeT
	TypeN
	TypeS
	TypeE
	TypeB
	TypeR
)

const thermocoupleLetters = "KJTNSEBR"

func (t ThermocoupleType) String() string {
	if int(t) < len(thermocoupleLetters) {
		return thermocoupleLetters[t : t+1]
	}
	return fmt.Sprintf("ThermocoupleType(%d)", uint8(t))
}

// ParseThermocoupleType returns the type for a letter such as "K" or "j".
func ParseThermocoupleType(s string) (ThermocoupleType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 1 {
		if ix := strings.IndexByte(thermocoupleLetters, s[0]); ix >= 0 {
			return ThermocoupleType(ix), nil
		}
	}
	return 0, &InvalidConfigurationError{Field: "thermocouple", Value: s, Reason: "must be one of K, J, T, N, S, E, B, R"}
}

// FilterLevel is the IIR filter coefficient. FilterOff disables the filter,
// higher levels smooth more at the cost of step response.
type FilterLevel uint8

const (
	FilterOff FilterLevel = 0
	FilterMax FilterLevel = 7
)

// ADCResolution selects the thermocouple ADC resolution. Lower resolutions
// convert faster but the hot junction reading loses fractional bits. The
// value is the register encoding.
type ADCResolution uint8

const (
	ADC18Bit ADCResolution = iota
	ADC16Bit
	ADC14Bit
	ADC12Bit
)

var (
	// Low order bits of the hot junction register that are not meaningful at
	// each resolution.
	adcDropBits = [...]uint{0, 0, 2, 4}
	// Typical conversion time, table 1-1.
	adcConversionTimes = [...]time.Duration{320 * time.Millisecond, 80 * time.Millisecond, 20 * time.Millisecond, 5 * time.Millisecond}
	adcLSB             = [...]physic.ElectricPotential{2 * physic.MicroVolt, 8 * physic.MicroVolt, 32 * physic.MicroVolt, 128 * physic.MicroVolt}
)

// Bits returns the resolution in bits.
func (r ADCResolution) Bits() int {
	return 18 - 2*int(r)
}

// ConversionTime returns the typical time the device takes per conversion,
// or 0 for an unknown resolution.
func (r ADCResolution) ConversionTime() time.Duration {
	if r > ADC12Bit {
		return 0
	}
	return adcConversionTimes[r]
}

// Step returns the effective resolution of the hot junction temperature, or 0
// for an unknown resolution.
func (r ADCResolution) Step() physic.Temperature {
	if r > ADC12Bit {
		return 0
	}
	return hotJunctionStep << adcDropBits[r]
}

func (r ADCResolution) String() string {
	if r > ADC12Bit {
		return fmt.Sprintf("ADCResolution(%d)", uint8(r))
	}
	return fmt.Sprintf("%d bit", r.Bits())
}

// ParseADCResolution returns the resolution for a bit count of 12, 14, 16
// or 18.
func ParseADCResolution(bits int) (ADCResolution, error) {
	switch bits {
	case 18:
		return ADC18Bit, nil
	case 16:
		return ADC16Bit, nil
	case 14:
		return ADC14Bit, nil
	case 12:
		return ADC12Bit, nil
	}
	return 0, &InvalidConfigurationError{Field: "adc resolution", Value: bits, Reason: "must be 12, 14, 16 or 18 bits"}
}

// ColdJunctionResolution selects the resolution of the cold junction sensor.
// The value is the register encoding.
type ColdJunctionResolution uint8

const (
	// ColdJunctionFine is 0.0625°C per LSB.
	ColdJunctionFine ColdJunctionResolution = iota
	// ColdJunctionCoarse is 0.25°C per LSB.
	ColdJunctionCoarse
)

var coldJunctionSteps = [...]physic.Temperature{62_500 * physic.MicroKelvin, 250 * physic.MilliKelvin}

// Step returns the temperature represented by one LSB, or 0 for an unknown
// resolution.
func (r ColdJunctionResolution) Step() physic.Temperature {
	if r > ColdJunctionCoarse {
		return 0
	}
	return coldJunctionSteps[r]
}

func (r ColdJunctionResolution) String() string {
	switch r {
	case ColdJunctionFine:
		return "0.0625°C"
	case ColdJunctionCoarse:
		return "0.25°C"
	}
	return fmt.Sprintf("ColdJunctionResolution(%d)", uint8(r))
}

// ParseColdJunctionResolution accepts 0.0625 or 0.25 (°C per LSB).
func ParseColdJunctionResolution(celsius float64) (ColdJunctionResolution, error) {
	switch celsius {
	case 0.0625:
		return ColdJunctionFine, nil
	case 0.25:
		return ColdJunctionCoarse, nil
	}
	return 0, &InvalidConfigurationError{Field: "cold junction resolution", Value: celsius, Reason: "must be 0.0625 or 0.25"}
}

// Mode is the device power mode.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeShutdown
	// ModeBurst takes BurstSamples conversions and then shuts down. Completion
	// is reported by StatusBurstComplete.
	ModeBurst
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeShutdown:
		return "shutdown"
	case ModeBurst:
		return "burst"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// BurstSamples is the number of conversions made in burst mode.
type BurstSamples uint8

const (
	Burst1 BurstSamples = iota
	Burst2
	Burst4
	Burst8
	Burst16
	Burst32
	Burst64
	Burst128
)

// Count returns the number of samples.
func (b BurstSamples) Count() int {
	return 1 << b
}

// Opts holds the device configuration.
type Opts struct {
	Thermocouple ThermocoupleType
	Filter       FilterLevel
	ColdJunction ColdJunctionResolution
	ADC          ADCResolution
	Mode         Mode
	BurstSamples BurstSamples
}

// DefaultOpts is used when NewI2C or New are called with nil options.
var DefaultOpts = Opts{
	Thermocouple: TypeK,
	Filter:       4,
	ColdJunction: ColdJunctionFine,
	ADC:          ADC18Bit,
	Mode:         ModeNormal,
	BurstSamples: Burst1,
}

// Validate checks every field and returns all violations, in field order,
// joined into one error. Each violation is an *InvalidConfigurationError.
func (o *Opts) Validate() error {
	var errs []error
	if !inRange(o.Thermocouple, TypeK, TypeR) {
		errs = append(errs, &InvalidConfigurationError{Field: "thermocouple", Value: uint8(o.Thermocouple), Reason: "unknown thermocouple type"})
	}
	if !inRange(o.Filter, FilterOff, FilterMax) {
		errs = append(errs, &InvalidConfigurationError{Field: "filter", Value: uint8(o.Filter), Reason: "must be in [0, 7]"})
	}
	if !inRange(o.ColdJunction, ColdJunctionFine, ColdJunctionCoarse) {
		errs = append(errs, &InvalidConfigurationError{Field: "cold junction resolution", Value: uint8(o.ColdJunction), Reason: "unknown resolution"})
	}
	if !inRange(o.ADC, ADC18Bit, ADC12Bit) {
		errs = append(errs, &InvalidConfigurationError{Field: "adc resolution", Value: uint8(o.ADC), Reason: "unknown resolution"})
	}
	if !inRange(o.Mode, ModeNormal, ModeBurst) {
		errs = append(errs, &InvalidConfigurationError{Field: "mode", Value: uint8(o.Mode), Reason: "unknown mode"})
	}
	if !inRange(o.BurstSamples, Burst1, Burst128) {
		errs = append(errs, &InvalidConfigurationError{Field: "burst samples", Value: uint8(o.BurstSamples), Reason: "unknown sample count"})
	}
	return errors.Join(errs...)
}

// Reading is one set of measurements.
type Reading struct {
	// Hot is the compensated thermocouple temperature.
	Hot physic.Temperature
	// Cold is the device (cold junction) temperature.
	Cold physic.Temperature
	// Delta is the difference Hot-Cold as computed by the device. It is a
	// difference, so it is not offset by physic.ZeroCelsius.
	Delta physic.Temperature
}

func (r Reading) String() string {
	return fmt.Sprintf("{Hot: %s, Cold: %s, Delta: %s}", r.Hot, r.Cold, r.Delta+physic.ZeroCelsius)
}

// Variant identifies the part.
type Variant uint8

const (
	VariantUnknown Variant = iota
	VariantMCP9600
	// VariantMCP9601 adds open and short circuit detection.
	VariantMCP9601
)

func (v Variant) String() string {
	switch v {
	case VariantMCP9600:
		return "MCP9600"
	case VariantMCP9601:
		return "MCP9601"
	}
	return "unknown"
}

// DeviceID is the content of the device ID register.
type DeviceID struct {
	ID       byte
	Revision byte
}

// Variant returns the part the ID belongs to.
func (d DeviceID) Variant() Variant {
	switch d.ID {
	case idMCP9600:
		return VariantMCP9600
	case idMCP9601:
		return VariantMCP9601
	}
	return VariantUnknown
}

// Major returns the major silicon revision.
func (d DeviceID) Major() int {
	return int(d.Revision >> 4)
}

// Minor returns the minor silicon revision.
func (d DeviceID) Minor() int {
	return int(d.Revision & 0x0f)
}

func (d DeviceID) String() string {
	return fmt.Sprintf("%s rev %d.%d", d.Variant(), d.Major(), d.Minor())
}

// Status is the content of the STATUS register.
type Status byte

const (
	// Set when a burst mode conversion set finished. Cleared by ClearStatus.
	StatusBurstComplete Status = 1 << 7
	// Set when a new hot junction value is available. Cleared by ClearStatus.
	StatusUpdated Status = 1 << 6
	// Thermocouple shorted to ground or supply. MCP9601 only.
	StatusShortCircuit Status = 1 << 5
	// The EMF is out of the device range. On the MCP9601 this is also set
	// on an open thermocouple.
	StatusInputRange Status = 1 << 4
	StatusAlert4     Status = 1 << 3
	StatusAlert3     Status = 1 << 2
	StatusAlert2     Status = 1 << 1
	StatusAlert1     Status = 1 << 0

	statusClearable = StatusBurstComplete | StatusUpdated
)

// AlertActive reports the state of alert slot (1-4).
func (s Status) AlertActive(slot int) bool {
	if !inRange(slot, 1, NumAlerts) {
		return false
	}
	return s&(StatusAlert1<<(slot-1)) != 0
}
