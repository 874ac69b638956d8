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
	"fmt"
	"strings"
)

// Level is the emitter state during one half of a symbol
type Level uint8

const (
	// Low leaves the emitter idle (space).
	Low Level = 0
	// High drives the modulated carrier (pulse).
	High Level = 1
)

// Symbol is one hardware transmit unit: a pulse followed by a space
type Symbol struct {
	Duration0 Ticks
	Duration1 Ticks
	Level0    Level
	Level1    Level
}

// NewSymbol returns a high/low symbol with the given pulse and space
func NewSymbol(pulse, space Ticks) Symbol {
	return Symbol{
		Level0:    High,
		Duration0: pulse,
		Level1:    Low,
		Duration1: space,
	}
}

// LeaderSymbol is the symbol that opens every Midea frame
func LeaderSymbol() Symbol {
	return NewSymbol(LeaderPulse, LeaderSpace)
}

// Word packs the symbol into the 32-bit RMT layout:
// duration0[0:15] level0[15] duration1[16:31] level1[31].
func (s Symbol) Word() uint32 {
	return uint32(s.Duration0&MaxTicks) |
		uint32(s.Level0&1)<<15 |
		uint32(s.Duration1&MaxTicks)<<16 |
		uint32(s.Level1&1)<<31
}

// SymbolFromWord is the inverse of Symbol.Word
func SymbolFromWord(w uint32) Symbol {
	return Symbol{
		Duration0: Ticks(w & uint32(MaxTicks)),
		Level0:    Level((w >> 15) & 1),
		Duration1: Ticks((w >> 16) & uint32(MaxTicks)),
		Level1:    Level((w >> 31) & 1),
	}
}

// String renders the symbol as "H4424/L4424"
func (s Symbol) String() string {
	return fmt.Sprintf("%s%d/%s%d", levelName(s.Level0), s.Duration0, levelName(s.Level1), s.Duration1)
}

func levelName(l Level) string {
	if l == High {
		return "H"
	}
	return "L"
}

// PackSymbols converts a duration sequence into transmit symbols.
//
// Symbol 0 is always the leader. Each following symbol takes one adjacent
// (pulse, space) pair, so the result holds len(durations)/2 + 1 symbols.
// When the sequence has odd length the trailing unpaired value is dropped.
func PackSymbols(durations []Ticks) ([]Symbol, error) {
	return packSymbols(durations, DefaultMaxSymbols)
}

func packSymbols(durations []Ticks, maxSymbols int) ([]Symbol, error) {
	if len(durations) == 0 {
		return nil, ErrEmptyDurations
	}

	count := len(durations)/durationsPerSym + leaderSymbols
	if maxSymbols > 0 && count > maxSymbols {
		return nil, fmt.Errorf("%w: %d symbols requested, limit is %d", ErrNoMemory, count, maxSymbols)
	}

	symbols := make([]Symbol, count)
	symbols[0] = LeaderSymbol()

	for i := 0; i < len(durations)-1; i += 2 {
		pulse, space := durations[i], durations[i+1]
		if err := checkTicks(i, pulse); err != nil {
			return nil, err
		}
		if err := checkTicks(i+1, space); err != nil {
			return nil, err
		}
		symbols[i/2+1] = NewSymbol(pulse, space)
	}

	return symbols, nil
}

func checkTicks(index int, t Ticks) error {
	if t == 0 || t > MaxTicks {
		return fmt.Errorf("%w: value %d at offset %d, want 1..%d", ErrDurationOutOfRange, t, index, MaxTicks)
	}
	return nil
}

// Flatten expands symbols back into the alternating pulse/space sequence,
// leader included.
func Flatten(symbols []Symbol) []Ticks {
	out := make([]Ticks, 0, len(symbols)*durationsPerSym)
	for _, s := range symbols {
		out = append(out, s.Duration0, s.Duration1)
	}
	return out
}

// TotalTicks returns the on-air length of the symbols in ticks
func TotalTicks(symbols []Symbol) uint64 {
	var total uint64
	for _, s := range symbols {
		total += uint64(s.Duration0) + uint64(s.Duration1)
	}
	return total
}

// FormatSymbols renders one symbol per line with its index
func FormatSymbols(symbols []Symbol) string {
	var sb strings.Builder
	for i, s := range symbols {
		_, _ = fmt.Fprintf(&sb, "%3d  %s\n", i, s)
	}
	return sb.String()
}
