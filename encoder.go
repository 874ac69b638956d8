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

import "fmt"

// EncodeBytes converts a payload to its pulse/space duration sequence.
//
// Each bit becomes a (ShortPulse, space) pair where the space is LongSpace
// for a 1 and ShortSpace for a 0. Bits are taken MSB first and bytes in
// order. The leader is not included; PackSymbols adds it.
func EncodeBytes(payload []byte) ([]Ticks, error) {
	return encodeBytes(payload, DefaultMaxSymbols)
}

func encodeBytes(payload []byte, maxSymbols int) ([]Ticks, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	bits := len(payload) * bitsPerByte
	if maxSymbols > 0 && bits+leaderSymbols > maxSymbols {
		return nil, fmt.Errorf("%w: %d byte payload needs %d symbols, limit is %d",
			ErrNoMemory, len(payload), bits+leaderSymbols, maxSymbols)
	}

	durations := make([]Ticks, 0, bits*ticksPerBit)
	for _, b := range payload {
		for bit := 7; bit >= 0; bit-- {
			durations = append(durations, ShortPulse)
			if b&(1<<bit) != 0 {
				durations = append(durations, LongSpace)
			} else {
				durations = append(durations, ShortSpace)
			}
		}
	}

	return durations, nil
}
