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

// Transmitter is the capability the encoding core hands symbols to.
// Implementations own the peripheral: carrier setup and channel enable
// happen in their constructors, before the first Transmit call.
type Transmitter interface {
	// Transmit plays the symbols once (plus LoopCount repeats) and returns when
	// the peripheral has accepted or finished them
	Transmit(symbols []Symbol, config TransmitConfig) error

	// Close releases the peripheral
	Close() error

	// IsConnected returns true if the peripheral is set up and usable
	IsConnected() bool

	// Type returns the transmitter type
	Type() TransmitterType
}

// TransmitterType represents the kind of transmitter backend
type TransmitterType string

const (
	// TransmitterSerial is a microcontroller bridge reached over UART/USB serial.
	TransmitterSerial TransmitterType = "serial"
	// TransmitterGPIO drives an IR LED from a local GPIO pin with PWM carrier.
	TransmitterGPIO TransmitterType = "gpio"
	// TransmitterLIRC writes pulse trains to a Linux LIRC device.
	TransmitterLIRC TransmitterType = "lirc"
	// TransmitterMock represents a mock transmitter for testing
	TransmitterMock TransmitterType = "mock"
)

// TransmitConfig holds per-call transmit options
type TransmitConfig struct {
	// LoopCount is the number of extra repeats after the first frame. The
	// Blaster always sends zero (no repeat).
	LoopCount int
}

// CarrierConfig describes the modulation carrier a backend configures at setup
type CarrierConfig struct {
	FrequencyHz  uint32
	DutyCycle    float64
	ResolutionHz uint32
}

// DefaultCarrierConfig returns the 38 kHz, 33% duty, 1 MHz resolution setup
// Midea receivers expect
func DefaultCarrierConfig() CarrierConfig {
	return CarrierConfig{
		FrequencyHz:  CarrierFrequencyHz,
		DutyCycle:    CarrierDutyCycle,
		ResolutionHz: ResolutionHz,
	}
}

// Validate checks the carrier parameters are usable
func (c CarrierConfig) Validate() error {
	if c.FrequencyHz == 0 {
		return ErrInvalidArgument
	}
	if c.DutyCycle <= 0 || c.DutyCycle >= 1 {
		return ErrInvalidArgument
	}
	if c.ResolutionHz == 0 {
		return ErrInvalidArgument
	}
	return nil
}

// DutyPercent returns the duty cycle rounded to whole percent
func (c CarrierConfig) DutyPercent() uint8 {
	return uint8(c.DutyCycle*100 + 0.5)
}
