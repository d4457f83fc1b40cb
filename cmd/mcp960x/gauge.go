// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/physic"
)

var gaugeOff = color.NRGBA{0x20, 0x20, 0x20, 255}

// gauge draws the hot junction temperature as a colored bar on an ANSI
// terminal, from blue at lo to red at hi.
type gauge struct {
	w       io.Writer
	palette *ansi256.Palette
	width   int
	lo, hi  physic.Temperature

	buf bytes.Buffer
}

func newGauge(w io.Writer, width int, lo, hi physic.Temperature) *gauge {
	return &gauge{w: w, palette: ansi256.Default, width: width, lo: lo, hi: hi}
}

// lit returns the number of cells lit for t.
func (g *gauge) lit(t physic.Temperature) int {
	switch {
	case t <= g.lo:
		return 0
	case t >= g.hi:
		return g.width
	}
	return int(int64(g.width) * int64(t-g.lo) / int64(g.hi-g.lo))
}

// cellColor interpolates the color of cell i. width is at least 2.
func (g *gauge) cellColor(i int) color.NRGBA {
	v := byte(255 * i / (g.width - 1))
	return color.NRGBA{v, 0x40, 255 - v, 255}
}

func (g *gauge) Draw(r mcp960x.Reading) error {
	g.buf.Reset()
	_, _ = g.buf.WriteString("\r\033[0m")
	n := g.lit(r.Hot)
	for i := 0; i < g.width; i++ {
		c := gaugeOff
		if i < n {
			c = g.cellColor(i)
		}
		_, _ = io.WriteString(&g.buf, g.palette.Block(c))
	}
	_, _ = g.buf.WriteString("\033[0m ")
	_, _ = g.buf.WriteString(r.String())
	_, err := g.buf.WriteTo(g.w)
	return err
}

// Halt resets the terminal colors.
func (g *gauge) Halt() error {
	_, err := g.w.Write([]byte("\n\033[0m"))
	return err
}
