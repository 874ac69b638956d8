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

package gpio

import (
	"context"
	"errors"
	"testing"
	"time"

	midea "github.com/ZaparooProject/go-midea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

type event struct {
	kind string // "pwm", "low", "sleep"
	d    time.Duration
}

// recordingPin logs every level change and the sleeps between them
type recordingPin struct {
	gpiotest.Pin
	pwmErr error
	events []event
}

func (p *recordingPin) Out(l gpio.Level) error {
	p.events = append(p.events, event{kind: "low"})
	return p.Pin.Out(l)
}

func (p *recordingPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	if p.pwmErr != nil {
		return p.pwmErr
	}
	p.events = append(p.events, event{kind: "pwm"})
	p.Pin.D = duty
	p.Pin.F = f
	return nil
}

func (p *recordingPin) sleep(d time.Duration) {
	p.events = append(p.events, event{kind: "sleep", d: d})
}

func newTestTransmitter(t *testing.T) (*Transmitter, *recordingPin) {
	t.Helper()
	pin := &recordingPin{Pin: gpiotest.Pin{N: "GPIO18", Num: 18}}
	tx, err := NewWithPin(pin, withSleep(pin.sleep))
	require.NoError(t, err)
	pin.events = nil
	return tx, pin
}

func TestNewWithPin(t *testing.T) {
	t.Parallel()

	tx, pin := newTestTransmitter(t)
	assert.Equal(t, midea.TransmitterGPIO, tx.Type())
	assert.True(t, tx.IsConnected())
	assert.Equal(t, gpio.Low, pin.L)
	assert.Equal(t, 38*physic.KiloHertz, tx.freq)
	assert.InDelta(t, float64(gpio.DutyMax)*0.33, float64(tx.duty), 1)

	_, err := NewWithPin(nil)
	require.ErrorIs(t, err, midea.ErrInvalidArgument)

	_, err = NewWithPin(&recordingPin{}, WithCarrier(midea.CarrierConfig{}))
	require.ErrorIs(t, err, midea.ErrInvalidArgument)
}

func TestTransmit_Sequence(t *testing.T) {
	t.Parallel()

	tx, pin := newTestTransmitter(t)
	symbols := []midea.Symbol{midea.LeaderSymbol(), midea.NewSymbol(midea.ShortPulse, midea.LongSpace)}
	require.NoError(t, tx.Transmit(symbols, midea.TransmitConfig{}))

	want := []event{
		{kind: "pwm"}, {kind: "sleep", d: 4424 * time.Microsecond},
		{kind: "low"}, {kind: "sleep", d: 4424 * time.Microsecond},
		{kind: "pwm"}, {kind: "sleep", d: 560 * time.Microsecond},
		{kind: "low"}, {kind: "sleep", d: 1600 * time.Microsecond},
		{kind: "low"},
	}
	assert.Equal(t, want, pin.events)
	assert.Equal(t, 38*physic.KiloHertz, pin.F)
}

func TestTransmit_LoopCountAddsRepeatGap(t *testing.T) {
	t.Parallel()

	tx, pin := newTestTransmitter(t)
	require.NoError(t, tx.Transmit([]midea.Symbol{midea.LeaderSymbol()}, midea.TransmitConfig{LoopCount: 1}))

	var gaps int
	for _, e := range pin.events {
		if e.kind == "sleep" && e.d == 5*time.Millisecond {
			gaps++
		}
	}
	assert.Equal(t, 1, gaps)
}

func TestTransmit_Errors(t *testing.T) {
	t.Parallel()

	tx, pin := newTestTransmitter(t)
	pin.pwmErr = errors.New("pwm not supported on this pin")

	err := tx.Transmit([]midea.Symbol{midea.LeaderSymbol()}, midea.TransmitConfig{})
	require.Error(t, err)
	assert.Equal(t, midea.ErrorTypePermanent, midea.GetErrorType(err))
	assert.Contains(t, err.Error(), "pwm not supported")

	require.ErrorIs(t, tx.Transmit(nil, midea.TransmitConfig{LoopCount: -1}), midea.ErrInvalidArgument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, tx.TransmitContext(ctx, nil, midea.TransmitConfig{}), context.Canceled)
}

func TestClose(t *testing.T) {
	t.Parallel()

	tx, _ := newTestTransmitter(t)
	require.NoError(t, tx.Close())
	assert.False(t, tx.IsConnected())
	require.NoError(t, tx.Close())

	err := tx.Transmit([]midea.Symbol{midea.LeaderSymbol()}, midea.TransmitConfig{})
	require.ErrorIs(t, err, midea.ErrTransmitterClosed)
}

func TestNilTransmitter(t *testing.T) {
	t.Parallel()

	var tx *Transmitter
	assert.False(t, tx.IsConnected())
	require.NoError(t, tx.Close())

	b, err := midea.New(tx)
	require.NoError(t, err)
	require.ErrorIs(t, b.SendBytes([]byte{0xA1}), midea.ErrNotInitialized)
}
