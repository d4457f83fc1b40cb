// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"periph.io/x/conn/v3/physic"
)

func TestGaugeLit(t *testing.T) {
	g := newGauge(&bytes.Buffer{}, 10, physic.ZeroCelsius, physic.ZeroCelsius+100*physic.Kelvin)
	data := []struct {
		c        physic.Temperature
		expected int
	}{
		{-10 * physic.Kelvin, 0},
		{0, 0},
		{9 * physic.Kelvin, 0},
		{10 * physic.Kelvin, 1},
		{55 * physic.Kelvin, 5},
		{100 * physic.Kelvin, 10},
		{1000 * physic.Kelvin, 10},
	}
	for _, d := range data {
		if got := g.lit(physic.ZeroCelsius + d.c); got != d.expected {
			t.Errorf("lit(%s) = %d, expected %d", physic.ZeroCelsius+d.c, got, d.expected)
		}
	}
}

func TestGaugeDraw(t *testing.T) {
	buf := &bytes.Buffer{}
	g := newGauge(buf, 4, physic.ZeroCelsius, physic.ZeroCelsius+100*physic.Kelvin)
	r := mcp960x.Reading{Hot: physic.ZeroCelsius + 50*physic.Kelvin, Cold: physic.ZeroCelsius + 22*physic.Kelvin}
	if err := g.Draw(r); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "\r\033[0m") {
		t.Errorf("missing reset: %q", s)
	}
	if !strings.HasSuffix(s, "\033[0m "+r.String()) {
		t.Errorf("missing reading: %q", s)
	}
	expected := g.palette.Block(g.cellColor(0)) + g.palette.Block(g.cellColor(1)) + g.palette.Block(gaugeOff) + g.palette.Block(gaugeOff)
	if !strings.Contains(s, expected) {
		t.Errorf("unexpected bar %q", s)
	}
	buf.Reset()
	if err := g.Halt(); err != nil || buf.String() != "\n\033[0m" {
		t.Errorf("Halt() = %v, %q", err, buf.String())
	}
}
