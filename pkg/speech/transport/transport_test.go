package transport

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/tts.go/pkg/speech/protocol"
)

type txRecord struct {
	addr uint16
	w    []byte
	r    int
}

type fakeBus struct {
	txs     []txRecord
	replies []byte
	readErr error
	err     error
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.txs = append(b.txs, txRecord{addr: addr, w: append([]byte(nil), w...), r: len(r)})
	if b.err != nil {
		return b.err
	}
	if len(r) > 0 {
		if b.readErr != nil || len(b.replies) == 0 {
			return b.readErr
		}
		r[0], b.replies = b.replies[0], b.replies[1:]
	}
	return nil
}

func TestI2CWriteChunks(t *testing.T) {
	for _, size := range []int{1, 4, 31, 32, 33, 64, 65, 100, 1000} {
		bus := &fakeBus{}
		tr := NewI2C(bus, DefaultI2CAddr)
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i)
		}
		require.NoError(t, tr.Write(data))
		require.Len(t, bus.txs, (size+MaxI2CChunk-1)/MaxI2CChunk, "size %d", size)
		var joined []byte
		for _, tx := range bus.txs {
			require.Equal(t, DefaultI2CAddr, tx.addr)
			require.True(t, len(tx.w) <= MaxI2CChunk)
			require.Zero(t, tx.r)
			joined = append(joined, tx.w...)
		}
		require.Equal(t, data, joined)
	}
}

func TestI2CWriteEmpty(t *testing.T) {
	bus := &fakeBus{}
	require.NoError(t, NewI2C(bus, 0x41).Write(nil))
	require.Empty(t, bus.txs)
}

func TestI2CWriteError(t *testing.T) {
	bus := &fakeBus{err: errors.New("nack")}
	err := NewI2C(bus, 0x40).Write(make([]byte, 40))
	require.Error(t, err)
	require.True(t, errors.Is(err, bus.err))
	require.Len(t, bus.txs, 1)
}

func TestI2CReadAck(t *testing.T) {
	bus := &fakeBus{replies: []byte{0x41, 0x4f, 0x00}}
	tr := NewI2C(bus, 0x40)
	require.Equal(t, protocol.AckStarted, tr.ReadAck())
	require.Equal(t, protocol.AckIdle, tr.ReadAck())
	require.Equal(t, protocol.Ack(0), tr.ReadAck())
	for _, tx := range bus.txs {
		require.Empty(t, tx.w)
		require.Equal(t, 1, tx.r)
	}

	bus.readErr = errors.New("io error")
	require.Equal(t, protocol.AckNone, tr.ReadAck())
}

type fakePort struct {
	in      *bytes.Reader
	out     bytes.Buffer
	readErr error
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.readErr != nil {
		return 0, p.readErr
	}
	n, err := p.in.Read(b)
	if err == io.EOF {
		// read timeout of a serial port
		return 0, nil
	}
	return n, err
}

func (p *fakePort) Write(b []byte) (int, error) {
	return p.out.Write(b)
}

func TestUARTAcks(t *testing.T) {
	port := &fakePort{in: bytes.NewReader([]byte("AOx"))}
	tr := NewUART(port)
	require.Equal(t, protocol.Ack(0x41), tr.ReadAck())
	require.Equal(t, protocol.Ack(0x4f), tr.ReadAck())
	require.Equal(t, protocol.Ack('x'), tr.ReadAck())
	require.Equal(t, protocol.AckNone, tr.ReadAck())

	port.readErr = errors.New("closed")
	require.Equal(t, protocol.AckNone, tr.ReadAck())
}

func TestUARTAcksMatchI2C(t *testing.T) {
	uart := NewUART(&fakePort{in: bytes.NewReader([]byte{'A', 'O'})})
	i2c := NewI2C(&fakeBus{replies: []byte{0x41, 0x4f}}, 0x40)
	for i := 0; i < 2; i++ {
		require.Equal(t, i2c.ReadAck(), uart.ReadAck())
	}
}

func TestUARTWrite(t *testing.T) {
	port := &fakePort{in: bytes.NewReader(nil)}
	tr := NewUART(port)
	var sleeps []time.Duration
	tr.Sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	data := bytes.Repeat([]byte{0x5a}, 100)
	require.NoError(t, tr.Write(data))
	require.Equal(t, data, port.out.Bytes())
	require.Equal(t, []time.Duration{DefaultUARTSettle}, sleeps)
}
