// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp960x

// Register pointers. The device auto-increments the pointer while reading a
// multi-byte register.
const (
	regHotJunction     byte = 0x00
	regDelta           byte = 0x01
	regColdJunction    byte = 0x02
	regRawADC          byte = 0x03
	regStatus          byte = 0x04
	regSensorConfig    byte = 0x05
	regDeviceConfig    byte = 0x06
	regAlertConfig     byte = 0x08 // 0x08-0x0b
	regAlertHysteresis byte = 0x0c // 0x0c-0x0f
	regAlertLimit      byte = 0x10 // 0x10-0x13, 16 bits each
	regDeviceID        byte = 0x20
)

// Thermocouple sensor configuration register.
const (
	sensorTypeShift    = 4
	sensorTypeMask     = 0x70
	sensorFilterMask   = 0x07
	sensorReservedMask = 0x88
)

// Device configuration register.
const (
	devColdJunctionShift = 7
	devADCShift          = 5
	devADCMask           = 0x60
	devBurstShift        = 2
	devBurstMask         = 0x1c
	devModeMask          = 0x03
)

// Alert configuration registers.
const (
	alertIntClear     byte = 1 << 7
	alertReservedMask byte = 0x60
	alertMonitorCold  byte = 1 << 4
	alertRising       byte = 1 << 3
	alertActiveHigh   byte = 1 << 2
	alertInterrupt    byte = 1 << 1
	alertEnable       byte = 1 << 0
)

const (
	idMCP9600 byte = 0x40
	idMCP9601 byte = 0x41
)
