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


// Package detection finds IR transmitters attached to the host: USB serial
// bridges by VID:PID and Linux LIRC device nodes.
package detection

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	midea "github.com/ZaparooProject/go-midea"
	"go.bug.st/serial/enumerator"
)

// KnownBridges maps the VID:PID of USB serial chips used by IR bridge
// boards to a display name.
var KnownBridges = map[string]string{
	"303A:1001": "ESP32-S3 USB JTAG/serial",
	"10C4:EA60": "CP210x UART bridge",
	"1A86:7523": "CH340 UART bridge",
	"1A86:55D4": "CH9102 UART bridge",
	"0403:6001": "FTDI FT232R",
}

// DeviceInfo describes a detected transmitter
type DeviceInfo struct {
	Path    string
	Name    string
	VIDPID  string
	Serial  string
	Type    midea.TransmitterType
	Unknown bool
}

// String returns "type:path (name)"
func (d DeviceInfo) String() string {
	if d.Name == "" {
		return fmt.Sprintf("%s:%s", d.Type, d.Path)
	}
	return fmt.Sprintf("%s:%s (%s)", d.Type, d.Path, d.Name)
}

// Options controls which devices Detect reports
type Options struct {
	IgnorePaths []string
	Blocklist   []string
	// IncludeUnknown also reports USB serial ports whose VID:PID is not in KnownBridges
	IncludeUnknown bool
	// SkipLIRC disables the /dev/lirc* scan
	SkipLIRC bool
}

// DefaultOptions returns detection options with the default blocklist
func DefaultOptions() Options {
	return Options{
		Blocklist: DefaultBlocklist(),
	}
}

const lircPattern = "/dev/lirc[0-9]*"

// Detect lists candidate transmitters. Serial bridges come first, sorted by path.
func Detect(ctx context.Context, opts Options) ([]DeviceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}
	devices := filterPorts(ports, opts)

	if !opts.SkipLIRC {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lirc, err := findLIRC(lircPattern, opts)
		if err != nil {
			return nil, err
		}
		devices = append(devices, lirc...)
	}

	midea.Debugf("detection found %d device(s)", len(devices))
	return devices, nil
}

// First returns the first detected transmitter or an error when none is found
func First(ctx context.Context, opts Options) (DeviceInfo, error) {
	devices, err := Detect(ctx, opts)
	if err != nil {
		return DeviceInfo{}, err
	}
	if len(devices) == 0 {
		return DeviceInfo{}, ErrNoDevicesFound
	}
	return devices[0], nil
}

// ErrNoDevicesFound is returned by First when nothing matches
var ErrNoDevicesFound = errors.New("no IR transmitter found")

func filterPorts(ports []*enumerator.PortDetails, opts Options) []DeviceInfo {
	devices := make([]DeviceInfo, 0, len(ports))
	for _, p := range ports {
		if p == nil || !p.IsUSB || IsPathIgnored(p.Name, opts.IgnorePaths) {
			continue
		}

		vidpid := FormatVIDPID(p.VID, p.PID)
		if IsBlocked(vidpid, opts.Blocklist) {
			midea.Debugf("skipping blocked device %s (%s)", p.Name, vidpid)
			continue
		}

		name, known := KnownBridges[vidpid]
		if !known && !opts.IncludeUnknown {
			continue
		}
		if p.Product != "" {
			name = p.Product
		}

		devices = append(devices, DeviceInfo{
			Path:    p.Name,
			Name:    name,
			VIDPID:  vidpid,
			Serial:  p.SerialNumber,
			Type:    midea.TransmitterSerial,
			Unknown: !known,
		})
	}

	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Unknown != devices[j].Unknown {
			return !devices[i].Unknown
		}
		return devices[i].Path < devices[j].Path
	})
	return devices
}

func findLIRC(pattern string, opts Options) ([]DeviceInfo, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad lirc pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	devices := make([]DeviceInfo, 0, len(matches))
	for _, m := range matches {
		if IsPathIgnored(m, opts.IgnorePaths) {
			continue
		}
		devices = append(devices, DeviceInfo{
			Path: m,
			Name: "LIRC device",
			Type: midea.TransmitterLIRC,
		})
	}
	return devices, nil
}
