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
	"sync"
)

// TransmitCall records one call made to a MockTransmitter
type TransmitCall struct {
	Symbols []Symbol
	Config  TransmitConfig
}

// MockTransmitter is an in-memory Transmitter that records every call.
// It is safe for concurrent use.
type MockTransmitter struct {
	err         error
	calls       []TransmitCall
	mu          sync.Mutex
	closed      bool
	disconnects bool
}

// NewMockTransmitter creates a connected mock transmitter
func NewMockTransmitter() *MockTransmitter {
	return &MockTransmitter{}
}

// Transmit records the symbols and returns the configured error
func (m *MockTransmitter) Transmit(symbols []Symbol, config TransmitConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, TransmitCall{
		Symbols: append([]Symbol(nil), symbols...),
		Config:  config,
	})
	return m.err
}

// SetError makes every following Transmit call fail with err
func (m *MockTransmitter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetDisconnected makes IsConnected report false
func (m *MockTransmitter) SetDisconnected(disconnected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnects = disconnected
}

// Calls returns a copy of the recorded calls
func (m *MockTransmitter) Calls() []TransmitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TransmitCall(nil), m.calls...)
}

// CallCount returns how many times Transmit was called
func (m *MockTransmitter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastSymbols returns the symbols of the most recent call, or nil
func (m *MockTransmitter) LastSymbols() []Symbol {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1].Symbols
}

// Reset forgets recorded calls and the configured error
func (m *MockTransmitter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.err = nil
}

// Close marks the mock as closed
func (m *MockTransmitter) Close() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// IsConnected returns false once closed or disconnected
func (m *MockTransmitter) IsConnected() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed && !m.disconnects
}

// Type returns TransmitterMock
func (*MockTransmitter) Type() TransmitterType {
	return TransmitterMock
}
