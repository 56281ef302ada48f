package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Preamble starts every frame.
const Preamble byte = 0xFD

// Commands.
const (
	CmdSynthesize byte = 0x01
	CmdStop       byte = 0x02
	CmdPause      byte = 0x03
	CmdResume     byte = 0x04
	CmdInquiry    byte = 0x21
	CmdPowerSave  byte = 0x88
	CmdWakeUp     byte = 0xFF
)

// WakeByte is written unframed during the I2C handshake.
const WakeByte byte = 0xAA

const (
	headerLen = 3

	// MaxDataLen is the max length of Frame.Data.
	MaxDataLen = 0xffff - 1
	// MaxTextLen is the max length of encoded text in a speech frame.
	MaxTextLen = MaxDataLen - 1
)

// Frame is a command frame.
type Frame struct {
	Command byte
	Data    []byte
}

// Len is the value of the length field: command byte plus data.
func (f *Frame) Len() int {
	return 1 + len(f.Data)
}

// AppendTo appends encoded bytes to b.
func (f *Frame) AppendTo(b []byte) []byte {
	n := f.Len()
	b = append(b, Preamble, byte(n>>8), byte(n), f.Command)
	return append(b, f.Data...)
}

// Bytes returns encoded bytes for sending.
func (f *Frame) Bytes() []byte {
	return f.AppendTo(make([]byte, 0, headerLen+f.Len()))
}

// WriteTo writes encoded bytes.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// String implements fmt.Stringer.
func (f *Frame) String() string {
	return fmt.Sprintf("% x", f.Bytes())
}

// ParseFrame decodes a complete frame.
func ParseFrame(b []byte) (*Frame, error) {
	if len(b) < headerLen+1 {
		return nil, ErrShortFrame
	}
	if b[0] != Preamble {
		return nil, ErrBadPreamble
	}
	if n := int(binary.BigEndian.Uint16(b[1:headerLen])); n == 0 || headerLen+n != len(b) {
		return nil, ErrLengthMismatch
	}
	return &Frame{Command: b[headerLen], Data: append([]byte(nil), b[headerLen+1:]...)}, nil
}

// CommandFrame builds a frame with any command.
func CommandFrame(cmd byte, data ...byte) *Frame {
	return &Frame{Command: cmd, Data: data}
}

// InquiryFrame builds the status inquiry frame: FD 00 01 21.
func InquiryFrame() *Frame {
	return &Frame{Command: CmdInquiry}
}

// SpeechFrame builds a start synthesis frame for already encoded text.
// The length field is len(text)+2.
func SpeechFrame(enc Encoding, text []byte) *Frame {
	data := make([]byte, 1+len(text))
	data[0] = byte(enc)
	copy(data[1:], text)
	return &Frame{Command: CmdSynthesize, Data: data}
}

// Text splits a speech frame into the encoding and the text.
func (f *Frame) Text() (Encoding, []byte, bool) {
	if f.Command != CmdSynthesize || len(f.Data) == 0 {
		return 0, nil, false
	}
	return Encoding(f.Data[0]), f.Data[1:], true
}

// SettingFrame builds the fixed size frame carrying "[<key><value>]".
// It returns false if value is not a single digit.
func SettingFrame(key byte, value int) (*Frame, bool) {
	if value < 0 || value > 9 {
		return nil, false
	}
	return SpeechFrame(EncodingGB2312, []byte{'[', key, byte('0' + value), ']'}), true
}
