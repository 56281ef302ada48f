package transport

import (
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"

	"github.com/robotalks/tts.go/pkg/speech/protocol"
)

// UART defaults.
const (
	DefaultUARTPort        = "/dev/ttyAMA0"
	DefaultUARTBaud        = 115200
	DefaultUARTReadTimeout = 500 * time.Millisecond
	DefaultUARTSettle      = 100 * time.Millisecond
)

// UART implements protocol.Transport over a serial port.
type UART struct {
	// Port must return from Read with n == 0 when its read timeout expires.
	Port io.ReadWriter
	// Settle is the pause after every write.
	Settle time.Duration
	Sleep  func(time.Duration)

	rbuf [1]byte
}

// NewUART wraps an opened serial port.
func NewUART(port io.ReadWriter) *UART {
	return &UART{Port: port, Settle: DefaultUARTSettle, Sleep: time.Sleep}
}

// OpenUART opens the serial port in 8N1 mode with the read timeout.
// The returned closer closes the port.
func OpenUART(name string, baud int, readTimeout time.Duration) (*UART, io.Closer, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	if err = port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}
	glog.Infof("opened %s at %d baud", name, baud)
	return NewUART(port), port, nil
}

// Write implements protocol.Transport.
func (t *UART) Write(p []byte) error {
	if _, err := t.Port.Write(p); err != nil {
		return fmt.Errorf("uart write: %w", err)
	}
	if t.Settle > 0 {
		if t.Sleep != nil {
			t.Sleep(t.Settle)
		} else {
			time.Sleep(t.Settle)
		}
	}
	return nil
}

// ReadAck implements protocol.Transport. Nothing read within the port's
// timeout is AckNone.
func (t *UART) ReadAck() protocol.Ack {
	n, err := t.Port.Read(t.rbuf[:])
	if err != nil {
		glog.V(3).Infof("uart read: %v", err)
		return protocol.AckNone
	}
	if n == 0 {
		return protocol.AckNone
	}
	return protocol.AckFromByte(t.rbuf[0])
}
