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
	"encoding/hex"
	"fmt"
	"strings"
)

// CommandLength is the size of a Midea AC state frame, checksum included
const CommandLength = 6

// CommandHeader is the identifier byte most captured frames start with
const CommandHeader = 0xA1

// Mode is the AC operating mode held in bits 5-7 of byte 1
type Mode uint8

// Operating modes
const (
	ModeAuto Mode = 0x00
	ModeCool Mode = 0x01
	ModeDry  Mode = 0x02
	ModeFan  Mode = 0x03
	ModeHeat Mode = 0x04
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "Auto"
	case ModeCool:
		return "Cool"
	case ModeDry:
		return "Dry"
	case ModeFan:
		return "Fan"
	case ModeHeat:
		return "Heat"
	default:
		return fmt.Sprintf("Unknown mode (%d)", uint8(m))
	}
}

// FanSpeed is held in bits 0-2 of byte 3
type FanSpeed uint8

// Fan speeds
const (
	FanAuto   FanSpeed = 0x00
	FanLow    FanSpeed = 0x01
	FanMedium FanSpeed = 0x02
	FanHigh   FanSpeed = 0x03
	FanSilent FanSpeed = 0x07
)

func (f FanSpeed) String() string {
	switch f {
	case FanAuto:
		return "Auto"
	case FanLow:
		return "Low"
	case FanMedium:
		return "Medium"
	case FanHigh:
		return "High"
	case FanSilent:
		return "Silent"
	default:
		return fmt.Sprintf("Unknown speed (%d)", uint8(f))
	}
}

// Temperature range reported by byte 2
const (
	temperatureOffset = 17
	MinTemperature    = 16
	MaxTemperature    = 30
)

// Analysis is the decoded content of a captured Midea command frame
type Analysis struct {
	Raw              []byte
	Command          byte
	Mode             Mode
	Fan              FanSpeed
	Temperature      int
	Checksum         byte
	ExpectedChecksum byte
	Power            bool
	TemperatureValid bool
	SwingVertical    bool
	SwingHorizontal  bool
	ChecksumValid    bool
}

// Analyze decodes the settings carried by a captured command frame.
// Bytes beyond the sixth are kept in Raw but not interpreted.
func Analyze(payload []byte) (*Analysis, error) {
	if len(payload) < CommandLength {
		return nil, fmt.Errorf("%w: need %d bytes to analyze, got %d", ErrInvalidArgument, CommandLength, len(payload))
	}

	a := &Analysis{
		Raw:      append([]byte(nil), payload...),
		Command:  payload[0],
		Power:    payload[1]&0x80 != 0,
		Mode:     Mode((payload[1] >> 5) & 0x07),
		Fan:      FanSpeed(payload[3] & 0x07),
		Checksum: payload[len(payload)-1],

		SwingVertical:   (payload[3]>>4)&0x01 != 0,
		SwingHorizontal: (payload[3]>>5)&0x01 != 0,
	}

	a.Temperature = int(payload[2]&0x0F) + temperatureOffset
	a.TemperatureValid = a.Temperature >= MinTemperature && a.Temperature <= MaxTemperature

	a.ExpectedChecksum = Checksum(payload[:len(payload)-1])
	a.ChecksumValid = a.ExpectedChecksum == a.Checksum

	return a, nil
}

// Swing renders the swing flags the way the capture tooling did
func (a *Analysis) Swing() string {
	var parts []string
	if a.SwingVertical {
		parts = append(parts, "Vertical")
	}
	if a.SwingHorizontal {
		parts = append(parts, "Horizontal")
	}
	if len(parts) == 0 {
		return "Off"
	}
	return strings.Join(parts, " + ")
}

// String returns a multi-line human readable report
func (a *Analysis) String() string {
	var sb strings.Builder

	power := "Off"
	if a.Power {
		power = "On"
	}
	temp := fmt.Sprintf("%d°C", a.Temperature)
	if !a.TemperatureValid {
		temp = fmt.Sprintf("Unknown (%d)", a.Temperature-temperatureOffset)
	}
	check := "invalid"
	if a.ChecksumValid {
		check = "valid"
	}

	_, _ = fmt.Fprintf(&sb, "Raw bytes:   %s\n", FormatHex(a.Raw))
	_, _ = fmt.Fprintf(&sb, "Command:     0x%02X\n", a.Command)
	_, _ = fmt.Fprintf(&sb, "Power:       %s\n", power)
	_, _ = fmt.Fprintf(&sb, "Mode:        %s\n", a.Mode)
	_, _ = fmt.Fprintf(&sb, "Temperature: %s\n", temp)
	_, _ = fmt.Fprintf(&sb, "Fan:         %s\n", a.Fan)
	_, _ = fmt.Fprintf(&sb, "Swing:       %s\n", a.Swing())
	_, _ = fmt.Fprintf(&sb, "Checksum:    0x%02X (%s, calculated 0x%02X)\n", a.Checksum, check, a.ExpectedChecksum)
	return sb.String()
}

// Checksum returns the XOR of all bytes
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}

// AppendChecksum returns a copy of payload with its XOR checksum appended
func AppendChecksum(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+1)
	out = append(out, payload...)
	return append(out, Checksum(payload))
}

// ParseHex parses "A1 82 42", "0xA1,0x82" or "a18242" into bytes
func ParseHex(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == ':' || r == '\t' || r == '\n'
	})

	var sb strings.Builder
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		if len(f) == 1 {
			f = "0" + f
		}
		sb.WriteString(f)
	}

	if sb.Len() == 0 {
		return nil, ErrEmptyPayload
	}

	data, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("%w: bad hex %q: %w", ErrInvalidArgument, s, err)
	}
	return data, nil
}

// FormatHex renders bytes as "A1 82 42"
func FormatHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}
