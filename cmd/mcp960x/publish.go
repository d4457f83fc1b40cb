// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"math"
	"time"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"github.com/goburrow/modbus"
	"periph.io/x/conn/v3/physic"
)

// numRegisters is the number of holding registers written per reading: hot,
// cold and delta in tenths of °C.
const numRegisters = 3

// registerWriter is the part of modbus.Client used by publisher.
type registerWriter interface {
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// publisher writes readings to consecutive holding registers of a Modbus TCP
// server.
type publisher struct {
	client  registerWriter
	addr    uint16
	closeFn func() error
}

func dialPublisher(cfg *ModbusConfig) (*publisher, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus: endpoint required")
	}
	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	if h.Timeout == 0 {
		h.Timeout = time.Second
	}
	h.SlaveId = cfg.UnitID
	if err := h.Connect(); err != nil {
		return nil, err
	}
	return &publisher{client: modbus.NewClient(h), addr: cfg.Address, closeFn: h.Close}, nil
}

func (p *publisher) Publish(r mcp960x.Reading) error {
	regs := []uint16{
		uint16(deciCelsius(r.Hot - physic.ZeroCelsius)),
		uint16(deciCelsius(r.Cold - physic.ZeroCelsius)),
		uint16(deciCelsius(r.Delta)),
	}
	_, err := p.client.WriteMultipleRegisters(p.addr, numRegisters, packRegisters(regs))
	return err
}

func (p *publisher) Close() error {
	if p.closeFn == nil {
		return nil
	}
	return p.closeFn()
}

// deciCelsius rounds to the nearest tenth of °C, saturating at the int16
// range.
func deciCelsius(t physic.Temperature) int16 {
	d := math.Round(float64(t) / float64(100*physic.MilliKelvin))
	switch {
	case d > math.MaxInt16:
		return math.MaxInt16
	case d < math.MinInt16:
		return math.MinInt16
	}
	return int16(d)
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
