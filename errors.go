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
	"errors"
	"fmt"
)

// Argument errors. All of them match ErrInvalidArgument with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotInitialized     = fmt.Errorf("%w: transmitter not initialized", ErrInvalidArgument)
	ErrEmptyPayload       = fmt.Errorf("%w: empty payload", ErrInvalidArgument)
	ErrEmptyDurations     = fmt.Errorf("%w: empty duration sequence", ErrInvalidArgument)
	ErrDurationOutOfRange = fmt.Errorf("%w: duration out of range", ErrInvalidArgument)
)

// ErrNoMemory is returned when a requested buffer exceeds the configured limit.
var ErrNoMemory = errors.New("out of memory")

// Transmitter errors
var (
	ErrTransmitFailed      = errors.New("transmit failed")
	ErrTransmitterBusy     = errors.New("transmitter busy")
	ErrTransmitterTimeout  = errors.New("transmitter timeout")
	ErrTransmitterClosed   = errors.New("transmitter closed")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// ErrorType classifies errors for callers deciding how to react
type ErrorType int

const (
	// ErrorTypeUnknown is any error not produced by this package.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeInvalidArgument covers empty input, bad durations and a missing transmitter.
	ErrorTypeInvalidArgument
	// ErrorTypeNoMemory means the command did not fit the buffer limit.
	ErrorTypeNoMemory
	// ErrorTypeTransient is a transmit failure that may succeed later (busy, timeout).
	ErrorTypeTransient
	// ErrorTypePermanent is a transmit failure that will not go away on its own.
	ErrorTypePermanent
)

// String returns a readable name for the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeInvalidArgument:
		return "invalid-argument"
	case ErrorTypeNoMemory:
		return "no-memory"
	case ErrorTypeTransient:
		return "transient"
	case ErrorTypePermanent:
		return "permanent"
	case ErrorTypeUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// TransmitterError describes a failure reported by a transmitter backend
type TransmitterError struct {
	Err  error
	Op   string
	Port string
	Type ErrorType
}

// Error implements the error interface
func (e *TransmitterError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s on %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransmitterError) Unwrap() error {
	return e.Err
}

// NewTransmitterError creates a transmitter error of the given type
func NewTransmitterError(op, port string, err error, errType ErrorType) *TransmitterError {
	return &TransmitterError{
		Op:   op,
		Port: port,
		Err:  err,
		Type: errType,
	}
}

// NewTimeoutError creates a transient error for an operation that did not complete in time
func NewTimeoutError(op, port string) *TransmitterError {
	return NewTransmitterError(op, port, ErrTransmitterTimeout, ErrorTypeTransient)
}

// NewBusyError creates a transient error for a transmitter that rejected the request while busy
func NewBusyError(op, port string) *TransmitterError {
	return NewTransmitterError(op, port, ErrTransmitterBusy, ErrorTypeTransient)
}

// GetErrorType returns the classification of err
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var te *TransmitterError
	if errors.As(err, &te) {
		return te.Type
	}

	switch {
	case errors.Is(err, ErrInvalidArgument):
		return ErrorTypeInvalidArgument
	case errors.Is(err, ErrNoMemory):
		return ErrorTypeNoMemory
	case errors.Is(err, ErrTransmitterBusy), errors.Is(err, ErrTransmitterTimeout):
		return ErrorTypeTransient
	case errors.Is(err, ErrTransmitFailed), errors.Is(err, ErrTransmitterClosed):
		return ErrorTypePermanent
	default:
		return ErrorTypeUnknown
	}
}

// IsTransient reports whether err may clear up if the caller tries again later.
// The library itself never retries.
func IsTransient(err error) bool {
	return GetErrorType(err) == ErrorTypeTransient
}
