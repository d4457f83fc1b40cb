// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// mcp960x reads a MCP9600 or MCP9601 thermocouple amplifier.
//
// The optional YAML configuration selects the device options, programs alert
// slots and exports each reading to Modbus holding registers:
//
//	device:
//	  bus: "1"
//	  thermocouple: J
//	  adc_bits: 16
//	alerts:
//	  - slot: 1
//	    limit_c: 250
//	    hysteresis_c: 5
//	modbus:
//	  endpoint: 192.168.1.10:502
//	  unit_id: 1
//	  address: 100
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/thermocouple/mcp960x"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func main() {
	busName := flag.String("bus", "", "I²C bus to use")
	addr := flag.Uint("addr", 0, "I²C address, 0 for the configuration or 0x67")
	cfgPath := flag.String("config", "", "YAML configuration file")
	interval := flag.Duration("interval", 0, "sampling interval, 0 for the configuration or 1s")
	n := flag.Int("n", 0, "number of samples, 0 to run until interrupted")
	showAlerts := flag.Bool("alerts", false, "print the alert slots and exit")
	useColor := flag.Bool("color", false, "draw a colored gauge of the hot junction")
	gaugeMax := flag.Float64("gauge-max", 300, "hot junction temperature in °C filling the gauge")
	flag.Parse()

	cfg := &Config{}
	if *cfgPath != "" {
		var err error
		if cfg, err = Load(*cfgPath); err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	if err := Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	opts, err := cfg.Device.Opts()
	if err != nil {
		log.Fatal(err)
	}
	if *busName == "" {
		*busName = cfg.Device.Bus
	}
	a, err := cfg.Device.ResolveAddress(*addr)
	if err != nil {
		log.Fatal(err)
	}
	if *interval == 0 {
		*interval = cfg.Device.Interval()
	}
	if *interval == 0 {
		*interval = time.Second
	}

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	dev, err := mcp960x.NewI2C(bus, a, &opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()
	if id, err := dev.DeviceID(); err == nil {
		log.Printf("%s: %s", dev, id)
	}

	for _, ac := range cfg.Alerts {
		al, err := ac.Alert()
		if err != nil {
			log.Fatalf("alert %d: %v", ac.Slot, err)
		}
		if err := dev.SetAlert(ac.Slot, al); err != nil {
			log.Fatalf("alert %d: %v", ac.Slot, err)
		}
	}
	if *showAlerts {
		alerts, err := dev.Alerts()
		if err != nil {
			log.Fatal(err)
		}
		for i := range alerts {
			fmt.Printf("alert %d: %s\n", i+1, &alerts[i])
		}
		return
	}

	var pub *publisher
	if cfg.Modbus != nil {
		if pub, err = dialPublisher(cfg.Modbus); err != nil {
			log.Fatalf("modbus: %v", err)
		}
		defer pub.Close()
	}
	var g *gauge
	if *useColor {
		g = newGauge(colorable.NewColorableStdout(), 40, physic.ZeroCelsius, physic.ZeroCelsius+celsius(*gaugeMax))
		defer g.Halt()
	}

	if err := run(dev, *interval, *n, g, pub); err != nil {
		log.Print(err)
	}
}

func run(dev *mcp960x.Dev, interval time.Duration, n int, g *gauge, pub *publisher) error {
	if conv := dev.Opts().ADC.ConversionTime(); interval < conv {
		return fmt.Errorf("interval %s is shorter than the conversion time %s", interval, conv)
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; n == 0 || i < n; i++ {
		r, err := dev.ReadTemperatures()
		if err != nil {
			log.Print(err)
		} else {
			if g != nil {
				if err := g.Draw(r); err != nil {
					return err
				}
			} else {
				log.Printf("Hot: %s  Cold: %s  Delta: %s", r.Hot, r.Cold, r.Delta+physic.ZeroCelsius)
			}
			if pub != nil {
				if err := pub.Publish(r); err != nil {
					log.Printf("modbus: %v", err)
				}
			}
		}
		if n != 0 && i == n-1 {
			break
		}
		select {
		case <-ticker.C:
		case <-sig:
			return nil
		}
	}
	return nil
}
