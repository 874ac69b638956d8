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


package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	midea "github.com/ZaparooProject/go-midea"
	"github.com/ZaparooProject/go-midea/detection"
	"github.com/ZaparooProject/go-midea/transmitter/gpio"
	"github.com/ZaparooProject/go-midea/transmitter/lirc"
	"github.com/ZaparooProject/go-midea/transmitter/serial"
)

// deviceRef is a parsed --device value
type deviceRef struct {
	kind   midea.TransmitterType
	target string
}

func parseDevice(s string) (deviceRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return deviceRef{}, errors.New("empty device")
	}

	prefix, rest, found := strings.Cut(s, ":")
	switch {
	case found && strings.EqualFold(prefix, string(midea.TransmitterLIRC)):
		if rest == "" {
			rest = lirc.DefaultDevice
		}
		return deviceRef{kind: midea.TransmitterLIRC, target: rest}, nil
	case found && strings.EqualFold(prefix, string(midea.TransmitterGPIO)):
		if rest == "" {
			rest = midea.DefaultGPIO
		}
		return deviceRef{kind: midea.TransmitterGPIO, target: rest}, nil
	case found && strings.EqualFold(prefix, string(midea.TransmitterSerial)):
		if rest == "" {
			return deviceRef{}, errors.New("serial device needs a port path")
		}
		return deviceRef{kind: midea.TransmitterSerial, target: rest}, nil
	default:
		// Plain paths (including COM3) are serial ports
		return deviceRef{kind: midea.TransmitterSerial, target: s}, nil
	}
}

func openTransmitter(ref deviceRef) (midea.Transmitter, error) {
	switch ref.kind {
	case midea.TransmitterLIRC:
		tx, err := lirc.New(ref.target)
		if err != nil {
			return nil, fmt.Errorf("failed to open LIRC transmitter: %w", err)
		}
		return tx, nil
	case midea.TransmitterGPIO:
		tx, err := gpio.New(ref.target)
		if err != nil {
			return nil, fmt.Errorf("failed to open GPIO transmitter: %w", err)
		}
		return tx, nil
	case midea.TransmitterSerial:
		tx, err := serial.New(ref.target)
		if err != nil {
			return nil, fmt.Errorf("failed to open serial transmitter: %w", err)
		}
		return tx, nil
	default:
		return nil, fmt.Errorf("unsupported transmitter type: %s", ref.kind)
	}
}

// resolveDevice parses --device or falls back to the first detected transmitter
func resolveDevice(ctx context.Context, device string) (deviceRef, error) {
	if device != "" {
		return parseDevice(device)
	}

	found, err := detection.First(ctx, detection.DefaultOptions())
	if err != nil {
		return deviceRef{}, fmt.Errorf("auto-detection failed: %w", err)
	}
	midea.Debugf("auto-detected %s", found)
	return deviceRef{kind: found.Type, target: found.Path}, nil
}

func openBlaster(ctx context.Context, flags *globalFlags) (*midea.Blaster, error) {
	ref, err := resolveDevice(ctx, flags.device)
	if err != nil {
		return nil, err
	}

	tx, err := openTransmitter(ref)
	if err != nil {
		return nil, err
	}

	blaster, err := midea.New(tx, midea.WithTimeout(flags.timeout))
	if err != nil {
		_ = tx.Close()
		return nil, fmt.Errorf("failed to create blaster: %w", err)
	}
	return blaster, nil
}
