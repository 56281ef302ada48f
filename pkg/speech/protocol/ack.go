package protocol

import "fmt"

// Ack is a status byte read from the module, or AckNone.
type Ack int

// Known acks.
const (
	// AckNone is reported by a Transport when nothing could be read.
	AckNone Ack = -1
	// AckStarted means the module accepted the frame and starts playback.
	AckStarted Ack = 0x41
	// AckIdle means the module is idle.
	AckIdle Ack = 0x4F
)

// AckFromByte maps a received byte to Ack. Serial links deliver the acks
// as the characters 'A' and 'O'.
func AckFromByte(b byte) Ack {
	switch b {
	case 'A':
		return AckStarted
	case 'O':
		return AckIdle
	}
	return Ack(b)
}

func (a Ack) String() string {
	switch a {
	case AckNone:
		return "none"
	case AckStarted:
		return "started"
	case AckIdle:
		return "idle"
	}
	return fmt.Sprintf("0x%02x", int(a))
}

// Transport is a link to the module.
type Transport interface {
	// Write sends bytes to the module.
	Write([]byte) error
	// ReadAck reads a single status byte. Read failures are reported as
	// AckNone instead of an error.
	ReadAck() Ack
}
