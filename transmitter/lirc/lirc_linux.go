//go:build linux

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

package lirc

import (
	"errors"
	"fmt"

	midea "github.com/ZaparooProject/go-midea"
	"golang.org/x/sys/unix"
)

// ioctl requests from linux/lirc.h
const (
	lircGetFeatures      = 0x80046900 // _IOR('i', 0x00, __u32)
	lircSetSendCarrier   = 0x40046913 // _IOW('i', 0x13, __u32)
	lircSetSendDutyCycle = 0x40046915 // _IOW('i', 0x15, __u32)

	lircCanSendPulse  = 0x00000002
	lircCanSetCarrier = 0x00000100 // LIRC_CAN_SET_SEND_CARRIER
	lircCanSetDuty    = 0x00000200 // LIRC_CAN_SET_SEND_DUTY_CYCLE
)

type fileDevice struct {
	// setValue issues an _IOW request; the kernel reads the value through a pointer
	setValue func(fd int, req uint, value int) error
	fd       int
	features uint32
}

func newFileDevice(fd int, features uint32) *fileDevice {
	return &fileDevice{fd: fd, features: features, setValue: unix.IoctlSetPointerInt}
}

func openDevice(path string) (device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	features, err := unix.IoctlGetUint32(fd, lircGetFeatures)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("failed to query features of %s: %w", path, err)
	}
	if features&lircCanSendPulse == 0 {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %s cannot send pulses", midea.ErrInvalidArgument, path)
	}

	return newFileDevice(fd, features), nil
}

func (d *fileDevice) setCarrier(hz uint32) error {
	if d.features&lircCanSetCarrier == 0 {
		midea.Debugf("lirc device has a fixed carrier, ignoring %d Hz", hz)
		return nil
	}
	return d.setValue(d.fd, lircSetSendCarrier, int(hz))
}

func (d *fileDevice) setDutyCycle(percent uint32) error {
	if d.features&lircCanSetDuty == 0 {
		return nil
	}
	return d.setValue(d.fd, lircSetSendDutyCycle, int(percent))
}

func (d *fileDevice) write(p []byte) (int, error) {
	return unix.Write(d.fd, p)
}

func (d *fileDevice) close() error {
	return unix.Close(d.fd)
}

func classify(err error) midea.ErrorType {
	switch {
	case errors.Is(err, unix.EBUSY), errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return midea.ErrorTypeTransient
	default:
		return midea.ErrorTypePermanent
	}
}
