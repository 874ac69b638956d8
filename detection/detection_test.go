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


package detection

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	midea "github.com/ZaparooProject/go-midea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func TestIsPathIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		devicePath  string
		ignorePaths []string
		expected    bool
	}{
		{name: "empty ignore list", devicePath: "/dev/ttyUSB0", ignorePaths: []string{}},
		{name: "empty device path", devicePath: "", ignorePaths: []string{"/dev/ttyUSB0"}},
		{name: "exact match unix path", devicePath: "/dev/ttyACM0", ignorePaths: []string{"/dev/ttyACM0"}, expected: true},
		{name: "exact match windows path", devicePath: "COM2", ignorePaths: []string{"COM2"}, expected: true},
		{name: "case insensitive match", devicePath: "com2", ignorePaths: []string{"COM2"}, expected: true},
		{name: "no match", devicePath: "/dev/ttyUSB1", ignorePaths: []string{"/dev/ttyUSB0"}},
		{name: "lirc node", devicePath: "/dev/lirc0", ignorePaths: []string{"/dev/lirc0"}, expected: true},
		{name: "relative components", devicePath: "/dev/../dev/ttyUSB0", ignorePaths: []string{"/dev/ttyUSB0"}, expected: true},
		{name: "empty strings in ignore list", devicePath: "/dev/ttyUSB0", ignorePaths: []string{"", "/dev/ttyUSB0"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsPathIgnored(tt.devicePath, tt.ignorePaths))
		})
	}
}

func TestParseVIDPID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		descriptor string
		want       string
	}{
		{"VID:303a PID:1001", "303A:1001"},
		{"vendor=10c4 product=ea60", "10C4:EA60"},
		{"USB VID=1A86 PID=7523 SER=1234", "1A86:7523"},
		{"0403:6001", "0403:6001"},
		{"not a descriptor", ""},
		{"/dev/ttyUSB0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseVIDPID(tt.descriptor))
		})
	}
}

func TestIsBlocked(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBlocked("2341:0043", DefaultBlocklist()))
	assert.True(t, IsBlocked(" abcd:ef01 ", []string{"ABCD:EF01"}))
	assert.False(t, IsBlocked("303A:1001", DefaultBlocklist()))
	assert.False(t, IsBlocked("303A:1001", nil))
	assert.False(t, IsBlocked("", []string{""}))

	// descriptor style entries, as passed on the command line
	assert.True(t, IsBlocked("10C4:EA60", []string{"VID:10c4 PID:ea60"}))
	assert.True(t, IsBlocked("1A86:7523", []string{"vendor=1a86 product=7523"}))
	assert.True(t, IsBlocked("USB VID=0403 PID=6001", []string{"0403:6001"}))
	assert.False(t, IsBlocked("1A86:55D4", []string{"vendor=1a86 product=7523"}))
}

func TestFilterPortsDescriptorBlocklist(t *testing.T) {
	t.Parallel()

	ports := []*enumerator.PortDetails{
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "10c4", PID: "ea60"},
		{Name: "/dev/ttyUSB1", IsUSB: true, VID: "1a86", PID: "7523"},
	}
	opts := DefaultOptions()
	opts.Blocklist = append(opts.Blocklist, "VID:10C4 PID:EA60")

	got := filterPorts(ports, opts)
	require.Len(t, got, 1)
	assert.Equal(t, "/dev/ttyUSB1", got[0].Path)
}

func TestFilterPorts(t *testing.T) {
	t.Parallel()

	ports := []*enumerator.PortDetails{
		{Name: "/dev/ttyUSB1", IsUSB: true, VID: "1a86", PID: "7523"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "303a", PID: "1001", Product: "IR bridge", SerialNumber: "abc"},
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyACM1", IsUSB: true, VID: "2341", PID: "0043"},
		{Name: "/dev/ttyUSB9", IsUSB: true, VID: "dead", PID: "beef"},
		nil,
	}

	t.Run("Known bridges only", func(t *testing.T) {
		t.Parallel()
		got := filterPorts(ports, DefaultOptions())
		require.Len(t, got, 2)
		assert.Equal(t, DeviceInfo{
			Path:   "/dev/ttyACM0",
			Name:   "IR bridge",
			VIDPID: "303A:1001",
			Serial: "abc",
			Type:   midea.TransmitterSerial,
		}, got[0])
		assert.Equal(t, "/dev/ttyUSB1", got[1].Path)
		assert.Equal(t, "CH340 UART bridge", got[1].Name)
	})

	t.Run("Include unknown sorts last", func(t *testing.T) {
		t.Parallel()
		opts := DefaultOptions()
		opts.IncludeUnknown = true
		got := filterPorts(ports, opts)
		require.Len(t, got, 3)
		assert.Equal(t, "/dev/ttyUSB9", got[2].Path)
		assert.True(t, got[2].Unknown)
	})

	t.Run("Ignore paths", func(t *testing.T) {
		t.Parallel()
		opts := DefaultOptions()
		opts.IgnorePaths = []string{"/dev/ttyACM0"}
		got := filterPorts(ports, opts)
		require.Len(t, got, 1)
		assert.Equal(t, "/dev/ttyUSB1", got[0].Path)
	})
}

func TestFindLIRC(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"lirc1", "lirc0", "lircd"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	got, err := findLIRC(filepath.Join(dir, "lirc[0-9]*"), Options{
		IgnorePaths: []string{filepath.Join(dir, "lirc1")},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "lirc0"), got[0].Path)
	assert.Equal(t, midea.TransmitterLIRC, got[0].Type)
	assert.Equal(t, "lirc:"+got[0].Path+" (LIRC device)", got[0].String())
}

func TestDetectCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Detect(ctx, DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
}
