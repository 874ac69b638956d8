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

// Package lirc provides a Transmitter for Linux LIRC character devices (/dev/lircN).
//
// The kernel driver generates the carrier; the transmitter sets carrier
// frequency and duty cycle once at open and then writes each command as a
// pulse train in microseconds.
package lirc

import (
	"encoding/binary"
	"fmt"
	"sync"

	midea "github.com/ZaparooProject/go-midea"
)

// DefaultDevice is the first LIRC device node
const DefaultDevice = "/dev/lirc0"

// Transmitter implements midea.Transmitter on a LIRC device
type Transmitter struct {
	dev     device
	path    string
	carrier midea.CarrierConfig
	mu      sync.Mutex
}

// device is the open file; lirc_linux.go provides the real one
type device interface {
	setCarrier(hz uint32) error
	setDutyCycle(percent uint32) error
	write(p []byte) (int, error)
	close() error
}

// Option configures a Transmitter
type Option func(*Transmitter)

// WithCarrier overrides the carrier configuration applied at open
func WithCarrier(carrier midea.CarrierConfig) Option {
	return func(t *Transmitter) {
		t.carrier = carrier
	}
}

// New opens the LIRC device at path and programs its carrier
func New(path string, opts ...Option) (*Transmitter, error) {
	t := &Transmitter{
		path:    path,
		carrier: midea.DefaultCarrierConfig(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.carrier.Validate(); err != nil {
		return nil, fmt.Errorf("invalid carrier config: %w", err)
	}

	dev, err := openDevice(path)
	if err != nil {
		return nil, err
	}
	if err := t.setup(dev); err != nil {
		_ = dev.close()
		return nil, err
	}
	return t, nil
}

func (t *Transmitter) setup(dev device) error {
	if err := dev.setCarrier(t.carrier.FrequencyHz); err != nil {
		return fmt.Errorf("failed to set carrier on %s: %w", t.path, err)
	}
	if err := dev.setDutyCycle(uint32(t.carrier.DutyPercent())); err != nil {
		return fmt.Errorf("failed to set duty cycle on %s: %w", t.path, err)
	}
	t.dev = dev
	midea.Debugf("lirc device %s: %d Hz carrier, %d%% duty", t.path, t.carrier.FrequencyHz, t.carrier.DutyPercent())
	return nil
}

// PulseTrain converts symbols to the alternating pulse/space microsecond
// values LIRC expects. LIRC requires the train to end on a pulse, so the
// final space is dropped; the line idles low afterwards anyway. Repeats are
// joined with RepeatSpace added to the preceding space.
func PulseTrain(symbols []midea.Symbol, resolutionHz uint32, loopCount int) []uint32 {
	if len(symbols) == 0 {
		return nil
	}

	us := func(t midea.Ticks) uint32 {
		return uint32(t.Duration(resolutionHz).Microseconds())
	}

	train := make([]uint32, 0, (loopCount+1)*len(symbols)*2)
	for loop := 0; loop <= loopCount; loop++ {
		if loop > 0 {
			train[len(train)-1] += us(midea.RepeatSpace)
		}
		for _, s := range symbols {
			train = append(train, us(s.Duration0), us(s.Duration1))
		}
	}
	return train[:len(train)-1]
}

// Transmit writes the pulse train and returns once the driver has sent it
func (t *Transmitter) Transmit(symbols []midea.Symbol, config midea.TransmitConfig) error {
	if config.LoopCount < 0 {
		return fmt.Errorf("%w: loop count %d", midea.ErrInvalidArgument, config.LoopCount)
	}

	train := PulseTrain(symbols, t.carrier.ResolutionHz, config.LoopCount)
	if len(train) == 0 {
		return fmt.Errorf("%w: no symbols", midea.ErrInvalidArgument)
	}

	buf := make([]byte, 0, len(train)*4)
	for _, v := range train {
		buf = binary.NativeEndian.AppendUint32(buf, v)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev == nil {
		return midea.NewTransmitterError("transmit", t.path, midea.ErrTransmitterClosed, midea.ErrorTypePermanent)
	}

	n, err := t.dev.write(buf)
	if err != nil {
		return midea.NewTransmitterError("transmit", t.path, err, classify(err))
	}
	if n != len(buf) {
		return midea.NewTransmitterError("transmit", t.path,
			fmt.Errorf("%w: short write %d of %d bytes", midea.ErrTransmitFailed, n, len(buf)), midea.ErrorTypeTransient)
	}
	return nil
}

// Close closes the device
func (t *Transmitter) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev == nil {
		return nil
	}
	err := t.dev.close()
	t.dev = nil
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", t.path, err)
	}
	return nil
}

// IsConnected returns true while the device is open
func (t *Transmitter) IsConnected() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dev != nil
}

// Type returns the transmitter type
func (*Transmitter) Type() midea.TransmitterType {
	return midea.TransmitterLIRC
}

// Path returns the device node
func (t *Transmitter) Path() string {
	return t.path
}
