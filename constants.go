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

import "time"

// Ticks is the length of one pulse or space in transmitter clock ticks.
// At the default ResolutionHz one tick is one microsecond.
type Ticks uint32

// Duration converts the tick count to wall time for the given resolution.
// A zero resolution falls back to ResolutionHz.
func (t Ticks) Duration(resolutionHz uint32) time.Duration {
	if resolutionHz == 0 {
		resolutionHz = ResolutionHz
	}
	return time.Duration(uint64(t) * uint64(time.Second) / uint64(resolutionHz))
}

// Midea protocol timing, in ticks at ResolutionHz.
const (
	LeaderPulse Ticks = 4424
	LeaderSpace Ticks = 4424
	ShortPulse  Ticks = 560
	ShortSpace  Ticks = 560  // space following a '0' bit
	LongSpace   Ticks = 1600 // space following a '1' bit
	RepeatSpace Ticks = 5000 // gap before a repeated frame
)

// Carrier and clock defaults for the transmit peripheral.
const (
	CarrierFrequencyHz = 38000
	CarrierDutyCycle   = 0.33
	ResolutionHz       = 1000000

	// DefaultGPIO is the pin the IR LED is wired to on the reference board.
	DefaultGPIO = "GPIO18"
)

// Buffer limits.
const (
	// MaxTicks is the largest duration a single symbol half can hold (15 bits).
	MaxTicks Ticks = 0x7FFF

	// DefaultMaxSymbols bounds the symbol buffer built for one command,
	// leader included. A 6 byte Midea frame needs 49.
	DefaultMaxSymbols = 1024

	bitsPerByte     = 8
	ticksPerBit     = 2
	leaderSymbols   = 1
	durationsPerSym = 2
)
