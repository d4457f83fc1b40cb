// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// mcp960x provides a package for interfacing the Microchip MCP9600 and
// MCP9601 I²C thermocouple EMF to temperature converters.
//
// The device measures the hot junction (the thermocouple tip) and the cold
// junction (the die temperature used for compensation), and reports the
// difference between them. Types K, J, T, N, S, E, B and R are supported.
//
// Resolution: 0.0625°C (hot junction at 16/18 bit ADC resolution)
//
// Accuracy: +/- 1.5°C (hot junction, typical)
//
// The driver is synchronous. Every read performs fresh bus transactions and
// nothing is retried. Alert settings are always read back from the device.
//
// Besides periph's i2c.Bus, the driver runs on any [Transport]. The
// smbusbus and tinygobus sub packages provide Linux SMBus and TinyGo
// adapters.
//
// For detailed information, refer to the [datasheet].
//
// A command line example is available in cmd/mcp960x.
//
// [datasheet]: https://ww1.microchip.com/downloads/en/DeviceDoc/MCP960X-L0X-RL0X-Data-Sheet-20005426F.pdf
package mcp960x
