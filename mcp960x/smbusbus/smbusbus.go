// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

// Package smbusbus implements mcp960x.Transport on a Linux SMBus character
// device through github.com/go-daq/smbus, for hosts where periph's host
// drivers are not wanted.
package smbusbus

import (
	"fmt"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"github.com/go-daq/smbus"
)

// Conn is the subset of *smbus.Conn used by Bus.
type Conn interface {
	SetAddr(addr uint8) error
	WriteReg(addr, reg, v uint8) error
	WriteWord(addr, reg uint8, v uint16) error
	ReadBlockData(addr, reg uint8, buf []byte) error
	Close() error
}

// Bus is a mcp960x.Transport on top of a SMBus connection.
type Bus struct {
	conn Conn
	name string
}

// Open opens /dev/i2c-<bus> and selects addr.
func Open(bus int, addr uint8) (*Bus, error) {
	c, err := smbus.Open(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("smbusbus: %w", err)
	}
	return &Bus{conn: c, name: fmt.Sprintf("smbus(%d)", bus)}, nil
}

// New wraps an already opened connection.
func New(c Conn, name string) *Bus {
	return &Bus{conn: c, name: name}
}

// ReadRegister implements mcp960x.Transport with an I²C block read.
func (b *Bus) ReadRegister(addr uint16, reg byte, r []byte) error {
	a, err := b.selectAddr(addr)
	if err != nil {
		return err
	}
	return b.conn.ReadBlockData(a, reg, r)
}

// WriteRegister implements mcp960x.Transport. The device registers written
// are one or two bytes wide; SMBus words are sent low byte first so the
// bytes are swapped to keep the device order.
func (b *Bus) WriteRegister(addr uint16, reg byte, w []byte) error {
	a, err := b.selectAddr(addr)
	if err != nil {
		return err
	}
	switch len(w) {
	case 1:
		return b.conn.WriteReg(a, reg, w[0])
	case 2:
		return b.conn.WriteWord(a, reg, uint16(w[0])|uint16(w[1])<<8)
	}
	return fmt.Errorf("smbusbus: can't write %d bytes to register 0x%02x", len(w), reg)
}

func (b *Bus) selectAddr(addr uint16) (uint8, error) {
	if addr > 0x7f {
		return 0, fmt.Errorf("smbusbus: invalid address 0x%x", addr)
	}
	a := uint8(addr)
	if err := b.conn.SetAddr(a); err != nil {
		return 0, err
	}
	return a, nil
}

// Close closes the underlying connection.
func (b *Bus) Close() error {
	return b.conn.Close()
}

func (b *Bus) String() string {
	return b.name
}

var _ mcp960x.Transport = &Bus{}
