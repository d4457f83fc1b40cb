// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp960x

import "fmt"

// Transport is the register level bus access used by Dev. Calls block until
// the transfer completed or failed. Dev never retries a failed call.
type Transport interface {
	// ReadRegister reads len(r) bytes starting at register reg.
	ReadRegister(addr uint16, reg byte, r []byte) error
	// WriteRegister writes w starting at register reg.
	WriteRegister(addr uint16, reg byte, w []byte) error
}

// Txer is a bus performing combined write/read transactions. It is
// implemented by periph's i2c.Bus and TinyGo's drivers.I2C.
type Txer interface {
	Tx(addr uint16, w, r []byte) error
}

// TxTransport implements Transport on top of a Txer.
type TxTransport struct {
	Bus Txer
}

func (t *TxTransport) ReadRegister(addr uint16, reg byte, r []byte) error {
	return t.Bus.Tx(addr, []byte{reg}, r)
}

func (t *TxTransport) WriteRegister(addr uint16, reg byte, w []byte) error {
	buf := make([]byte, 1+len(w))
	buf[0] = reg
	copy(buf[1:], w)
	return t.Bus.Tx(addr, buf, nil)
}

func (t *TxTransport) String() string {
	if s, ok := t.Bus.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", t.Bus)
}

var _ Transport = &TxTransport{}
