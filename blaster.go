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

package midea

import (
	"context"
	"fmt"
	"time"
)

// Config contains configuration options for the Blaster
type Config struct {
	// Carrier is the modulation setup the transmitter was opened with. The
	// Blaster only reports it; backends apply it in their constructors.
	Carrier CarrierConfig
	// MaxSymbols bounds the symbol buffer for one command, leader included.
	// Zero disables the check.
	MaxSymbols int
	// Timeout is the default deadline for the Context variants when the
	// caller's context has none. Zero means no deadline.
	Timeout time.Duration
}

// DefaultConfig returns default blaster configuration
func DefaultConfig() *Config {
	return &Config{
		Carrier:    DefaultCarrierConfig(),
		MaxSymbols: DefaultMaxSymbols,
		Timeout:    0,
	}
}

// Blaster encodes Midea commands and sends them through its transmitter.
//
// Thread Safety: Blaster is NOT thread-safe. Two goroutines sending at once
// build independent buffers, but the order in which their frames reach the
// shared peripheral is undefined. Serialize calls in the application if
// ordering matters.
type Blaster struct {
	transmitter Transmitter
	config      *Config
}

// New creates a Blaster that sends through the given transmitter.
// The transmitter is not validated here; sends report ErrNotInitialized
// if it is nil or not connected.
func New(transmitter Transmitter, opts ...Option) (*Blaster, error) {
	blaster := &Blaster{
		transmitter: transmitter,
		config:      DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(blaster); err != nil {
			return nil, err
		}
	}

	return blaster, nil
}

// Transmitter returns the underlying transmitter
func (b *Blaster) Transmitter() Transmitter {
	return b.transmitter
}

// Config returns a copy of the current configuration
func (b *Blaster) Config() Config {
	return *b.config
}

// SendBytes encodes the payload and transmits it once, leader first.
func (b *Blaster) SendBytes(payload []byte) error {
	return b.SendBytesContext(context.Background(), payload)
}

// SendBytesContext is SendBytes with cancellation checked before the
// transmitter is invoked
func (b *Blaster) SendBytesContext(ctx context.Context, payload []byte) error {
	if err := b.checkReady(); err != nil {
		return err
	}

	durations, err := encodeBytes(payload, b.config.MaxSymbols)
	if err != nil {
		return err
	}
	debugf("encoded %d byte payload into %d durations", len(payload), len(durations))

	return b.SendCommandContext(ctx, durations)
}

// SendCommand packs a raw duration sequence behind the leader and
// transmits it once. Transmitter errors are returned unchanged.
func (b *Blaster) SendCommand(durations []Ticks) error {
	return b.SendCommandContext(context.Background(), durations)
}

// SendCommandContext is SendCommand with cancellation checked before the
// transmitter is invoked
func (b *Blaster) SendCommandContext(ctx context.Context, durations []Ticks) error {
	if err := b.checkReady(); err != nil {
		return err
	}

	symbols, err := packSymbols(durations, b.config.MaxSymbols)
	if err != nil {
		return err
	}
	if len(durations)%2 != 0 {
		debugf("odd duration count %d, trailing value %d not sent", len(durations), durations[len(durations)-1])
	}
	debugf("transmitting %d symbols (%d ticks) on %s", len(symbols), TotalTicks(symbols), b.transmitter.Type())

	if b.config.Timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.config.Timeout)
			defer cancel()
		}
	}

	return AsContextTransmitter(b.transmitter).TransmitContext(ctx, symbols, TransmitConfig{LoopCount: 0})
}

// checkReady rejects sends before the transmitter exists or after it went away.
// A typed nil transmitter is caught by its own IsConnected; every backend in
// this module reports false for a nil receiver.
func (b *Blaster) checkReady() error {
	if b == nil || b.transmitter == nil || !b.transmitter.IsConnected() {
		return ErrNotInitialized
	}
	return nil
}

// Close closes the transmitter
func (b *Blaster) Close() error {
	if b != nil && b.transmitter != nil {
		debugln("closing", b.transmitter.Type(), "transmitter")
		if err := b.transmitter.Close(); err != nil {
			return fmt.Errorf("failed to close transmitter: %w", err)
		}
	}
	return nil
}
