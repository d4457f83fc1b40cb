// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp960x

import "fmt"

// InvalidConfigurationError is returned when an option or argument is
// outside of its domain. Values are never clamped.
type InvalidConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("mcp960x: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// TransportError wraps a failure of the underlying bus. Use errors.Is or
// errors.As to inspect the bus error.
type TransportError struct {
	// Op is "read" or "write".
	Op       string
	Register byte
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mcp960x: %s register 0x%02x: %v", e.Op, e.Register, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValueEncodingError is returned when a temperature cannot be represented in
// a register. It is detected before anything is written to the device.
type ValueEncodingError struct {
	Field string
	// Value, Min and Max are in °C.
	Value    float64
	Min, Max float64
}

func (e *ValueEncodingError) Error() string {
	return fmt.Sprintf("mcp960x: cannot encode %s %.4f°C, representable range is [%.4f, %.4f]°C", e.Field, e.Value, e.Min, e.Max)
}

// UnsupportedEncodingError is returned when register content does not match
// any known encoding. This usually means a different device answers at the
// address or the read was corrupted.
type UnsupportedEncodingError struct {
	Register byte
	Value    byte
	Reason   string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("mcp960x: register 0x%02x value 0x%02x: %s", e.Register, e.Value, e.Reason)
}
