// go-midea
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-midea.
//
// go-midea is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-midea is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-midea; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package gpio provides a Transmitter that drives an IR LED from a local GPIO pin.
//
// Pulses enable hardware PWM at the carrier frequency; spaces hold the pin
// low. Timing comes from the host scheduler, so this backend suits boards
// with a real-time or lightly loaded kernel. Prefer the serial bridge when
// receivers reject the frames.
package gpio

import (
	"context"
	"fmt"
	"sync"
	"time"

	midea "github.com/ZaparooProject/go-midea"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Option configures a Transmitter
type Option func(*Transmitter)

// WithCarrier overrides the carrier frequency, duty cycle and tick resolution
func WithCarrier(carrier midea.CarrierConfig) Option {
	return func(t *Transmitter) {
		t.carrier = carrier
	}
}

// withSleep replaces the timing source; tests use it to avoid real delays
func withSleep(sleep func(time.Duration)) Option {
	return func(t *Transmitter) {
		t.sleep = sleep
	}
}

// Transmitter implements midea.Transmitter on a PWM capable GPIO pin
type Transmitter struct {
	pin     gpio.PinOut
	sleep   func(time.Duration)
	carrier midea.CarrierConfig
	duty    gpio.Duty
	freq    physic.Frequency
	mu      sync.Mutex
	closed  bool
}

// New initializes the periph host drivers and opens the named pin (e.g. "GPIO18")
func New(pinName string, opts ...Option) (*Transmitter, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	p := gpioreg.ByName(pinName)
	if p == nil {
		return nil, fmt.Errorf("%w: no GPIO pin named %q", midea.ErrInvalidArgument, pinName)
	}

	return NewWithPin(p, opts...)
}

// NewWithPin wraps an already resolved pin and drives it low
func NewWithPin(p gpio.PinOut, opts ...Option) (*Transmitter, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil pin", midea.ErrInvalidArgument)
	}

	t := &Transmitter{
		pin:     p,
		carrier: midea.DefaultCarrierConfig(),
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.carrier.Validate(); err != nil {
		return nil, fmt.Errorf("invalid carrier config: %w", err)
	}
	t.duty = gpio.Duty(float64(gpio.DutyMax) * t.carrier.DutyCycle)
	t.freq = physic.Frequency(t.carrier.FrequencyHz) * physic.Hertz

	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("failed to drive %s low: %w", p.Name(), err)
	}

	midea.Debugf("gpio transmitter on %s: %s carrier, duty %s", p.Name(), t.freq, t.duty)
	return t, nil
}

// Transmit plays the symbols on the pin
func (t *Transmitter) Transmit(symbols []midea.Symbol, config midea.TransmitConfig) error {
	return t.TransmitContext(context.Background(), symbols, config)
}

// TransmitContext plays the symbols, checking ctx between repeated frames.
// A frame that has started always finishes.
func (t *Transmitter) TransmitContext(
	ctx context.Context, symbols []midea.Symbol, config midea.TransmitConfig,
) error {
	if config.LoopCount < 0 {
		return fmt.Errorf("%w: loop count %d", midea.ErrInvalidArgument, config.LoopCount)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return midea.NewTransmitterError("transmit", t.pin.Name(), midea.ErrTransmitterClosed, midea.ErrorTypePermanent)
	}

	for loop := 0; loop <= config.LoopCount; loop++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled before transmit: %w", ctx.Err())
		default:
		}

		if loop > 0 {
			t.sleep(midea.RepeatSpace.Duration(t.carrier.ResolutionHz))
		}
		if err := t.playFrame(symbols); err != nil {
			_ = t.pin.Out(gpio.Low)
			return midea.NewTransmitterError("transmit", t.pin.Name(), err, midea.ErrorTypePermanent)
		}
	}

	if err := t.pin.Out(gpio.Low); err != nil {
		return midea.NewTransmitterError("transmit", t.pin.Name(), err, midea.ErrorTypePermanent)
	}
	return nil
}

func (t *Transmitter) playFrame(symbols []midea.Symbol) error {
	for _, s := range symbols {
		if err := t.half(s.Level0, s.Duration0); err != nil {
			return err
		}
		if err := t.half(s.Level1, s.Duration1); err != nil {
			return err
		}
	}
	return nil
}

// half holds one level for the given ticks
func (t *Transmitter) half(level midea.Level, d midea.Ticks) error {
	if d == 0 {
		return nil
	}
	if level == midea.High {
		if err := t.pin.PWM(t.duty, t.freq); err != nil {
			return fmt.Errorf("pwm on: %w", err)
		}
	} else {
		if err := t.pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("pwm off: %w", err)
		}
	}
	t.sleep(d.Duration(t.carrier.ResolutionHz))
	return nil
}

// Close drives the pin low and halts it
func (t *Transmitter) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	_ = t.pin.Out(gpio.Low)
	if err := t.pin.Halt(); err != nil {
		return fmt.Errorf("failed to halt %s: %w", t.pin.Name(), err)
	}
	return nil
}

// IsConnected returns true until Close is called
func (t *Transmitter) IsConnected() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed
}

// Type returns the transmitter type
func (*Transmitter) Type() midea.TransmitterType {
	return midea.TransmitterGPIO
}
