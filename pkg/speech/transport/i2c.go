package transport

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/robotalks/tts.go/pkg/speech/protocol"
)

// DefaultI2CAddr is the factory address of the module.
const DefaultI2CAddr uint16 = 0x40

// MaxI2CChunk is the max number of bytes in one bus write.
const MaxI2CChunk = 32

// Bus is the part of an I2C bus used by the transport.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

var _ Bus = i2c.Bus(nil)

// I2C implements protocol.Transport over an I2C bus.
type I2C struct {
	Bus  Bus
	Addr uint16

	rbuf [1]byte
}

// NewI2C creates the transport for the device at addr.
func NewI2C(bus Bus, addr uint16) *I2C {
	return &I2C{Bus: bus, Addr: addr}
}

// OpenI2C initializes host drivers and opens the named bus ("" for the
// first one, "1" or "/dev/i2c-1" otherwise). The returned closer releases
// the bus.
func OpenI2C(name string, addr uint16) (*I2C, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	glog.Infof("opened %s, device 0x%02x", bus, addr)
	return NewI2C(bus, addr), bus, nil
}

// Write implements protocol.Transport. Data is split into transactions
// of at most MaxI2CChunk bytes.
func (t *I2C) Write(p []byte) error {
	for len(p) > 0 {
		n := len(p)
		if n > MaxI2CChunk {
			n = MaxI2CChunk
		}
		if err := t.Bus.Tx(t.Addr, p[:n], nil); err != nil {
			return fmt.Errorf("i2c write 0x%02x: %w", t.Addr, err)
		}
		p = p[n:]
	}
	return nil
}

// ReadAck implements protocol.Transport.
func (t *I2C) ReadAck() protocol.Ack {
	if err := t.Bus.Tx(t.Addr, nil, t.rbuf[:]); err != nil {
		glog.V(3).Infof("i2c read 0x%02x: %v", t.Addr, err)
		return protocol.AckNone
	}
	return protocol.Ack(t.rbuf[0])
}
