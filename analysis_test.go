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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	a, err := Analyze([]byte{0xA1, 0x82, 0x42, 0xFF, 0xFF, 0x5F})
	require.NoError(t, err)

	assert.Equal(t, byte(0xA1), a.Command)
	assert.True(t, a.Power)
	assert.Equal(t, ModeHeat, a.Mode)
	assert.Equal(t, 19, a.Temperature)
	assert.True(t, a.TemperatureValid)
	assert.Equal(t, FanSilent, a.Fan)
	assert.Equal(t, "Vertical + Horizontal", a.Swing())
	assert.Equal(t, byte(0x5F), a.Checksum)
	assert.Equal(t, byte(0x61), a.ExpectedChecksum)
	assert.False(t, a.ChecksumValid)
}

func TestAnalyze_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   []byte
		wantMode  Mode
		wantFan   FanSpeed
		wantSwing string
		wantTemp  int
		wantPower bool
		tempValid bool
	}{
		{
			name:      "cool low vertical",
			payload:   AppendChecksum([]byte{0xA1, 0x20, 0x05, 0x11, 0x00}),
			wantPower: false,
			wantMode:  ModeCool,
			wantTemp:  22,
			tempValid: true,
			wantFan:   FanLow,
			wantSwing: "Vertical",
		},
		{
			name:      "auto off no swing",
			payload:   AppendChecksum([]byte{0xA1, 0x00, 0x00, 0x00, 0x00}),
			wantMode:  ModeAuto,
			wantTemp:  17,
			tempValid: true,
			wantFan:   FanAuto,
			wantSwing: "Off",
		},
		{
			name:      "temperature out of range",
			payload:   AppendChecksum([]byte{0xA1, 0x60, 0x0F, 0x23, 0x00}),
			wantMode:  ModeFan,
			wantTemp:  32,
			tempValid: false,
			wantFan:   FanHigh,
			wantSwing: "Horizontal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := Analyze(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPower, a.Power)
			assert.Equal(t, tt.wantMode, a.Mode)
			assert.Equal(t, tt.wantTemp, a.Temperature)
			assert.Equal(t, tt.tempValid, a.TemperatureValid)
			assert.Equal(t, tt.wantFan, a.Fan)
			assert.Equal(t, tt.wantSwing, a.Swing())
			assert.True(t, a.ChecksumValid)
		})
	}
}

func TestAnalyze_TooShort(t *testing.T) {
	t.Parallel()

	_, err := Analyze([]byte{0xA1, 0x82})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAnalysis_String(t *testing.T) {
	t.Parallel()

	a, err := Analyze(AppendChecksum([]byte{0xA1, 0x82, 0x42, 0xFF, 0xFF}))
	require.NoError(t, err)

	out := a.String()
	assert.Contains(t, out, "Raw bytes:   A1 82 42 FF FF 61")
	assert.Contains(t, out, "Power:       On")
	assert.Contains(t, out, "Mode:        Heat")
	assert.Contains(t, out, "Temperature: 19°C")
	assert.Contains(t, out, "(valid, calculated 0x61)")
}

func TestModeAndFanStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Dry", ModeDry.String())
	assert.Equal(t, "Unknown mode (6)", Mode(6).String())
	assert.Equal(t, "Medium", FanMedium.String())
	assert.Equal(t, "Unknown speed (5)", FanSpeed(5).String())
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(0), Checksum(nil))
	assert.Equal(t, byte(0x42), Checksum([]byte{0x42}))
	assert.Equal(t, byte(0x61), Checksum([]byte{0xA1, 0x82, 0x42, 0xFF, 0xFF}))

	in := []byte{0x01, 0x02}
	out := AppendChecksum(in)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, out)
	assert.Equal(t, []byte{0x01, 0x02}, in, "input must not be modified")
}

func TestParseHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "spaced", input: "A1 82 42", want: []byte{0xA1, 0x82, 0x42}},
		{name: "prefixed commas", input: "0xA1,0x82, 0x42", want: []byte{0xA1, 0x82, 0x42}},
		{name: "packed lowercase", input: "a18242", want: []byte{0xA1, 0x82, 0x42}},
		{name: "single nibble", input: "1 F", want: []byte{0x01, 0x0F}},
		{name: "colons", input: "de:ad", want: []byte{0xDE, 0xAD}},
		{name: "empty", input: "  ", wantErr: true},
		{name: "odd packed", input: "A18", wantErr: true},
		{name: "not hex", input: "ZZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseHex(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatHex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A1 02 FF", FormatHex([]byte{0xA1, 0x02, 0xFF}))
	assert.Equal(t, "", FormatHex(nil))
}
