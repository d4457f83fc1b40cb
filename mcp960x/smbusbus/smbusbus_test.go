// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package smbusbus

import (
	"bytes"
	"errors"
	"testing"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"periph.io/x/conn/v3/physic"
)

// fakeConn is a register file answering like a MCP9600 at 0x67.
type fakeConn struct {
	addr   uint8
	regs   map[uint8][]byte
	writes [][]byte
	closed bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{regs: map[uint8][]byte{
		0x00: {0x01, 0x78},
		0x01: {0x00, 0x18},
		0x02: {0x01, 0x60},
		0x20: {0x40, 0x12},
	}}
}

func (f *fakeConn) SetAddr(addr uint8) error {
	f.addr = addr
	return nil
}

func (f *fakeConn) WriteReg(addr, reg, v uint8) error {
	f.writes = append(f.writes, []byte{reg, v})
	return nil
}

func (f *fakeConn) WriteWord(addr, reg uint8, v uint16) error {
	f.writes = append(f.writes, []byte{reg, byte(v), byte(v >> 8)})
	return nil
}

// ReadBlockData auto-increments the register pointer like the device.
func (f *fakeConn) ReadBlockData(addr, reg uint8, buf []byte) error {
	for n := 0; n < len(buf); reg++ {
		v, ok := f.regs[reg]
		if !ok {
			return errors.New("no such register")
		}
		n += copy(buf[n:], v)
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestBus(t *testing.T) {
	c := newFakeConn()
	b := New(c, "smbus(1)")
	dev, err := mcp960x.New(b, mcp960x.DefaultAddress, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.addr != 0x67 {
		t.Errorf("address 0x%x was selected", c.addr)
	}
	r, err := dev.ReadTemperatures()
	if err != nil {
		t.Fatal(err)
	}
	if r.Hot != physic.ZeroCelsius+23_500*physic.MilliKelvin || r.Delta != 1_500*physic.MilliKelvin || r.Cold != physic.ZeroCelsius+22*physic.Kelvin {
		t.Errorf("unexpected reading %s", r)
	}
	limit := physic.ZeroCelsius + 150*physic.Kelvin
	if err := dev.SetAlert(1, mcp960x.Alert{Limit: limit, Enabled: true}); err != nil {
		t.Fatal(err)
	}
	expected := [][]byte{{0x05, 0x04}, {0x06, 0x00}, {0x10, 0x09, 0x60}, {0x0c, 0x00}, {0x08, 0x01}}
	if len(c.writes) != len(expected) {
		t.Fatalf("writes %#v, expected %#v", c.writes, expected)
	}
	for ix := range expected {
		if !bytes.Equal(c.writes[ix], expected[ix]) {
			t.Errorf("write %d: %#v, expected %#v", ix, c.writes[ix], expected[ix])
		}
	}
	if s := dev.String(); s != "mcp960x: smbus(1)(0x67)" {
		t.Errorf("unexpected %q", s)
	}
	if err := b.Close(); err != nil || !c.closed {
		t.Errorf("Close() = %v", err)
	}
}

func TestBusInvalid(t *testing.T) {
	b := New(newFakeConn(), "smbus(1)")
	if err := b.WriteRegister(0x67, 0x10, []byte{1, 2, 3}); err == nil {
		t.Error("expected an error for a 3 byte write")
	}
	if err := b.ReadRegister(0x80, 0x00, make([]byte, 2)); err == nil {
		t.Error("expected an error for a 10 bit address")
	}
}
