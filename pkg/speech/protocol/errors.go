package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrBadPreamble indicates the frame doesn't start with Preamble.
	ErrBadPreamble = errors.New("bad preamble")
	// ErrShortFrame indicates the frame is shorter than its header.
	ErrShortFrame = errors.New("short frame")
	// ErrLengthMismatch indicates the length field doesn't match the frame.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrFrameTooLarge indicates the data doesn't fit the 16-bit length field.
	ErrFrameTooLarge = errors.New("frame too large")
	// ErrTimeout indicates the module didn't reply in Poller.Timeout.
	ErrTimeout = errors.New("ack timeout")
)

// TimeoutError is returned by Poller when Timeout is set and expires.
type TimeoutError struct {
	Expected Ack
	Last     Ack
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%v waiting for %v, last %v", ErrTimeout, e.Expected, e.Last)
}

// Unwrap makes errors.Is(err, ErrTimeout) work.
func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// UnsupportedEncodingError indicates an unknown Encoding value.
type UnsupportedEncodingError struct {
	Encoding Encoding
}

// Error implements error.
func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported encoding 0x%02x", byte(e.Encoding))
}
