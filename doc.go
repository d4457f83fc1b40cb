// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermocouple is a container for the MCP9600/MCP9601 thermocouple
// amplifier driver in mcp960x, its bus adapters and the cmd/mcp960x tool.
package thermocouple
