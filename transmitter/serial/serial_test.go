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

package serial

import (
	"bytes"
	"context"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	midea "github.com/ZaparooProject/go-midea"
	"github.com/ZaparooProject/go-midea/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBridge answers every frame written to it with a scripted status
type fakeBridge struct {
	status   map[byte]byte
	silent   map[byte]bool
	rx       bytes.Buffer
	frames   []*frame.Frame
	timeouts []time.Duration
	mu       sync.Mutex
	closed   bool
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{status: map[byte]byte{}, silent: map[byte]bool{}}
}

func (b *fakeBridge) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := frame.Parse(p)
	if err != nil {
		reply, _ := frame.Build(0xFF, []byte{frame.StatusBadFrame})
		b.rx.Write(reply)
		return len(p), nil
	}
	b.frames = append(b.frames, f)
	if b.silent[f.Cmd] {
		return len(p), nil
	}

	reply, _ := frame.Build(f.Cmd|frame.ReplyFlag, []byte{b.status[f.Cmd]})
	b.rx.Write([]byte{0x00, 0x11}) // line noise before the reply
	b.rx.Write(reply)
	return len(p), nil
}

func (b *fakeBridge) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rx.Len() == 0 {
		return 0, nil // what go.bug.st/serial does on read timeout
	}
	return b.rx.Read(p)
}

func (b *fakeBridge) SetReadTimeout(t time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timeouts = append(b.timeouts, t)
	return nil
}

func (*fakeBridge) ResetInputBuffer() error { return nil }

func (b *fakeBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *fakeBridge) received() []*frame.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*frame.Frame(nil), b.frames...)
}

func TestNewWithPort_Configures(t *testing.T) {
	t.Parallel()

	bridge := newFakeBridge()
	tx, err := NewWithPort(bridge, "/dev/ttyACM0")
	require.NoError(t, err)

	assert.True(t, tx.IsConnected())
	assert.Equal(t, midea.TransmitterSerial, tx.Type())
	assert.Equal(t, "/dev/ttyACM0", tx.PortName())

	frames := bridge.received()
	require.Len(t, frames, 1)
	assert.Equal(t, byte(frame.CmdConfigure), frames[0].Cmd)
	assert.Equal(t, frame.ConfigurePayload(38000, 33, 1000000), frames[0].Payload)
}

func TestNewWithPort_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewWithPort(nil, "none")
	require.ErrorIs(t, err, midea.ErrInvalidArgument)

	bridge := newFakeBridge()
	bridge.status[frame.CmdConfigure] = frame.StatusFault
	_, err = NewWithPort(bridge, "/dev/ttyACM0")
	require.ErrorIs(t, err, midea.ErrTransmitFailed)

	_, err = NewWithPort(newFakeBridge(), "x", WithCarrier(midea.CarrierConfig{}))
	require.ErrorIs(t, err, midea.ErrInvalidArgument)
}

func TestTransmit_SendsSymbolWords(t *testing.T) {
	t.Parallel()

	bridge := newFakeBridge()
	tx, err := NewWithPort(bridge, "/dev/ttyACM0", WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	symbols := []midea.Symbol{midea.LeaderSymbol(), midea.NewSymbol(midea.ShortPulse, midea.LongSpace)}
	require.NoError(t, tx.Transmit(symbols, midea.TransmitConfig{}))

	frames := bridge.received()
	require.Len(t, frames, 2)
	f := frames[1]
	assert.Equal(t, byte(frame.CmdTransmit), f.Cmd)
	require.Len(t, f.Payload, 2+4*len(symbols))
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(f.Payload[0:2]))
	for i, s := range symbols {
		got := binary.LittleEndian.Uint32(f.Payload[2+4*i:])
		assert.Equal(t, s.Word(), got, "symbol %d", i)
	}

	// reply wait covers on-air time plus the timeout
	last := bridge.timeouts[len(bridge.timeouts)-1]
	assert.GreaterOrEqual(t, last, 50*time.Millisecond+11*time.Millisecond)
}

func TestTransmit_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr  error
		name     string
		status   byte
		wantType midea.ErrorType
	}{
		{name: "ok", status: frame.StatusOK},
		{name: "busy", status: frame.StatusBusy, wantErr: midea.ErrTransmitterBusy, wantType: midea.ErrorTypeTransient},
		{name: "fault", status: frame.StatusFault, wantErr: midea.ErrTransmitFailed, wantType: midea.ErrorTypePermanent},
		{name: "bad frame", status: frame.StatusBadFrame, wantErr: midea.ErrTransmitFailed, wantType: midea.ErrorTypeTransient},
		{name: "unknown", status: 0x7E, wantErr: midea.ErrTransmitFailed, wantType: midea.ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bridge := newFakeBridge()
			tx, err := NewWithPort(bridge, "/dev/ttyACM0")
			require.NoError(t, err)
			bridge.status[frame.CmdTransmit] = tt.status

			err = tx.Transmit([]midea.Symbol{midea.LeaderSymbol()}, midea.TransmitConfig{})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantType, midea.GetErrorType(err))
		})
	}
}

func TestTransmit_Timeout(t *testing.T) {
	t.Parallel()

	bridge := newFakeBridge()
	tx, err := NewWithPort(bridge, "/dev/ttyACM0", WithTimeout(time.Millisecond))
	require.NoError(t, err)
	bridge.silent[frame.CmdTransmit] = true

	err = tx.Transmit([]midea.Symbol{midea.LeaderSymbol()}, midea.TransmitConfig{})
	require.ErrorIs(t, err, midea.ErrTransmitterTimeout)
	assert.True(t, midea.IsTransient(err))
}

func TestTransmitContext(t *testing.T) {
	t.Parallel()

	bridge := newFakeBridge()
	tx, err := NewWithPort(bridge, "/dev/ttyACM0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = tx.TransmitContext(ctx, []midea.Symbol{midea.LeaderSymbol()}, midea.TransmitConfig{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, bridge.received(), 1, "only the configure frame")

	err = tx.Transmit([]midea.Symbol{midea.LeaderSymbol()}, midea.TransmitConfig{LoopCount: -1})
	require.ErrorIs(t, err, midea.ErrInvalidArgument)
}

func TestTransmit_TooManySymbols(t *testing.T) {
	t.Parallel()

	tx, err := NewWithPort(newFakeBridge(), "/dev/ttyACM0")
	require.NoError(t, err)

	symbols := make([]midea.Symbol, frame.MaxSymbols+1)
	err = tx.Transmit(symbols, midea.TransmitConfig{})
	require.ErrorIs(t, err, frame.ErrPayloadTooLarge)
}

func TestClose(t *testing.T) {
	t.Parallel()

	bridge := newFakeBridge()
	tx, err := NewWithPort(bridge, "/dev/ttyACM0")
	require.NoError(t, err)

	require.NoError(t, tx.Close())
	assert.True(t, bridge.closed)
	assert.False(t, tx.IsConnected())
	require.NoError(t, tx.Close(), "second close is a no-op")

	err = tx.Transmit([]midea.Symbol{midea.LeaderSymbol()}, midea.TransmitConfig{})
	require.ErrorIs(t, err, midea.ErrTransmitterClosed)
}

func TestBlasterOverSerial(t *testing.T) {
	t.Parallel()

	bridge := newFakeBridge()
	tx, err := NewWithPort(bridge, "/dev/ttyACM0")
	require.NoError(t, err)

	blaster, err := midea.New(tx)
	require.NoError(t, err)
	require.NoError(t, blaster.SendBytes([]byte{0x01}))

	frames := bridge.received()
	require.Len(t, frames, 2)
	payload := frames[1].Payload
	require.Len(t, payload, 2+4*9)

	first := midea.SymbolFromWord(binary.LittleEndian.Uint32(payload[2:]))
	last := midea.SymbolFromWord(binary.LittleEndian.Uint32(payload[2+4*8:]))
	assert.Equal(t, midea.LeaderSymbol(), first)
	assert.Equal(t, midea.LongSpace, last.Duration1)
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

func TestBlasterLimitFitsBridgeFrame(t *testing.T) {
	t.Parallel()

	require.GreaterOrEqual(t, frame.MaxSymbols, midea.DefaultMaxSymbols)

	bridge := newFakeBridge()
	tx, err := NewWithPort(bridge, "/dev/ttyACM0")
	require.NoError(t, err)
	b, err := midea.New(tx)
	require.NoError(t, err)

	// 2046 durations pack into 1023 pairs plus the leader
	durations := make([]midea.Ticks, 2*(midea.DefaultMaxSymbols-1))
	for i := range durations {
		durations[i] = midea.ShortPulse
	}
	require.NoError(t, b.SendCommand(durations))

	frames := bridge.received()
	require.Len(t, frames, 2)
	assert.Len(t, frames[1].Payload, frame.LoopCountLength+midea.DefaultMaxSymbols*frame.SymbolWordLength)
}
