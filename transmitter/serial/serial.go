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

// Package serial provides a Transmitter for IR bridges reached over a serial port.
//
// The bridge is a microcontroller whose RMT peripheral drives the IR LED.
// The host sends it the carrier setup once, then one transmit frame per
// command carrying the packed symbol words, and waits for a one byte status
// reply. The frame layout lives in internal/frame.
package serial

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	midea "github.com/ZaparooProject/go-midea"
	"github.com/ZaparooProject/go-midea/internal/frame"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the bridge firmware UART setting
	DefaultBaudRate = 115200

	// DefaultTimeout bounds the wait for a reply beyond the on-air time
	DefaultTimeout = 500 * time.Millisecond
)

var errReadTimeout = errors.New("serial read timeout")

// Port is the subset of serial.Port the transmitter needs
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
}

// Option configures a Transmitter
type Option func(*Transmitter)

// WithBaudRate sets the UART baud rate used by New
func WithBaudRate(baud int) Option {
	return func(t *Transmitter) {
		t.baudRate = baud
	}
}

// WithTimeout sets how long to wait for the bridge reply after the frame has
// had time to play
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transmitter) {
		t.timeout = timeout
	}
}

// WithCarrier overrides the carrier configuration sent to the bridge
func WithCarrier(carrier midea.CarrierConfig) Option {
	return func(t *Transmitter) {
		t.carrier = carrier
	}
}

// Transmitter implements midea.Transmitter for a serial IR bridge
type Transmitter struct {
	port     Port
	portName string
	carrier  midea.CarrierConfig
	timeout  time.Duration
	baudRate int
	mu       sync.Mutex
}

// New opens the serial port at path and configures the bridge carrier
func New(path string, opts ...Option) (*Transmitter, error) {
	t := newTransmitter(path, opts)

	mode := &serial.Mode{
		BaudRate: t.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}
	t.port = port

	if err := t.configure(); err != nil {
		_ = port.Close()
		return nil, err
	}

	return t, nil
}

// NewWithPort wraps an already open port and configures the bridge carrier
func NewWithPort(port Port, name string, opts ...Option) (*Transmitter, error) {
	if port == nil {
		return nil, fmt.Errorf("%w: nil port", midea.ErrInvalidArgument)
	}

	t := newTransmitter(name, opts)
	t.port = port

	if err := t.configure(); err != nil {
		return nil, err
	}
	return t, nil
}

func newTransmitter(name string, opts []Option) *Transmitter {
	t := &Transmitter{
		portName: name,
		carrier:  midea.DefaultCarrierConfig(),
		timeout:  DefaultTimeout,
		baudRate: DefaultBaudRate,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// configure sends the carrier setup; the bridge enables its channel on success
func (t *Transmitter) configure() error {
	if err := t.carrier.Validate(); err != nil {
		return fmt.Errorf("invalid carrier config: %w", err)
	}

	payload := frame.ConfigurePayload(t.carrier.FrequencyHz, t.carrier.DutyPercent(), t.carrier.ResolutionHz)

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.exchange("configure", frame.CmdConfigure, payload, t.timeout); err != nil {
		return err
	}
	midea.Debugf("serial bridge %s configured: %d Hz, %d%% duty, %d Hz resolution",
		t.portName, t.carrier.FrequencyHz, t.carrier.DutyPercent(), t.carrier.ResolutionHz)
	return nil
}

// Transmit sends the symbols to the bridge and waits for its status
func (t *Transmitter) Transmit(symbols []midea.Symbol, config midea.TransmitConfig) error {
	return t.TransmitContext(context.Background(), symbols, config)
}

// TransmitContext sends the symbols, shortening the reply wait to the context deadline
func (t *Transmitter) TransmitContext(
	ctx context.Context, symbols []midea.Symbol, config midea.TransmitConfig,
) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled before transmit: %w", ctx.Err())
	default:
	}

	if config.LoopCount < 0 || config.LoopCount > 0xFFFF {
		return fmt.Errorf("%w: loop count %d", midea.ErrInvalidArgument, config.LoopCount)
	}

	words := make([]uint32, len(symbols))
	var onAir time.Duration
	for i, s := range symbols {
		words[i] = s.Word()
		onAir += s.Duration0.Duration(t.carrier.ResolutionHz) + s.Duration1.Duration(t.carrier.ResolutionHz)
	}
	onAir *= time.Duration(config.LoopCount + 1)

	payload, err := frame.TransmitPayload(uint16(config.LoopCount), words)
	if err != nil {
		return midea.NewTransmitterError("transmit", t.portName, err, midea.ErrorTypePermanent)
	}

	wait := onAir + t.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
	}
	if wait <= 0 {
		return midea.NewTimeoutError("transmit", t.portName)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.exchange("transmit", frame.CmdTransmit, payload, wait)
}

// exchange writes one frame and reads the status reply. Caller holds mu.
func (t *Transmitter) exchange(op string, cmd byte, payload []byte, wait time.Duration) error {
	if t.port == nil {
		return midea.NewTransmitterError(op, t.portName, midea.ErrTransmitterClosed, midea.ErrorTypePermanent)
	}

	frm, err := frame.Build(cmd, payload)
	if err != nil {
		return midea.NewTransmitterError(op, t.portName, err, midea.ErrorTypePermanent)
	}

	// drop stale bytes from an earlier timed out exchange
	_ = t.port.ResetInputBuffer()

	if _, err := t.port.Write(frm); err != nil {
		return midea.NewTransmitterError(op, t.portName, fmt.Errorf("write failed: %w", err), midea.ErrorTypeTransient)
	}

	if err := t.port.SetReadTimeout(wait); err != nil {
		return midea.NewTransmitterError(op, t.portName, fmt.Errorf("set read timeout: %w", err), midea.ErrorTypePermanent)
	}

	reply, err := frame.Read(&deadlineReader{port: t.port, deadline: time.Now().Add(wait)})
	if err != nil {
		if errors.Is(err, errReadTimeout) {
			return midea.NewTimeoutError(op, t.portName)
		}
		return midea.NewTransmitterError(op, t.portName, err, midea.ErrorTypeTransient)
	}

	status, err := frame.ReplyStatus(reply, cmd)
	if err != nil {
		return midea.NewTransmitterError(op, t.portName, err, midea.ErrorTypeTransient)
	}
	return statusError(op, t.portName, status)
}

func statusError(op, port string, status byte) error {
	switch status {
	case frame.StatusOK:
		return nil
	case frame.StatusBusy:
		return midea.NewBusyError(op, port)
	case frame.StatusFault:
		return midea.NewTransmitterError(op, port,
			fmt.Errorf("%w: bridge reported hardware fault", midea.ErrTransmitFailed), midea.ErrorTypePermanent)
	case frame.StatusBadFrame:
		return midea.NewTransmitterError(op, port,
			fmt.Errorf("%w: bridge rejected frame", midea.ErrTransmitFailed), midea.ErrorTypeTransient)
	default:
		return midea.NewTransmitterError(op, port,
			fmt.Errorf("%w: unknown status %02X", midea.ErrTransmitFailed, status), midea.ErrorTypePermanent)
	}
}

// deadlineReader turns the (0, nil) reads a serial port returns on timeout
// into errReadTimeout so io.ReadFull does not spin
type deadlineReader struct {
	deadline time.Time
	port     io.Reader
}

func (r *deadlineReader) Read(p []byte) (int, error) {
	n, err := r.port.Read(p)
	if n == 0 && err == nil {
		return 0, errReadTimeout
	}
	if n == 0 && time.Now().After(r.deadline) {
		return 0, errReadTimeout
	}
	return n, err
}

// Close closes the serial port
func (t *Transmitter) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", t.portName, err)
	}
	return nil
}

// IsConnected returns true while the port is open
func (t *Transmitter) IsConnected() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port != nil
}

// Type returns the transmitter type
func (*Transmitter) Type() midea.TransmitterType {
	return midea.TransmitterSerial
}

// PortName returns the path the transmitter was opened with
func (t *Transmitter) PortName() string {
	return t.portName
}
