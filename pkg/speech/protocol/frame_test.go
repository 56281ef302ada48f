package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrame(t *testing.T) {
	testCases := []struct {
		name   string
		frame  *Frame
		expect []byte
	}{
		{"inquiry", InquiryFrame(), []byte{0xfd, 0x00, 0x01, 0x21}},
		{"stop", CommandFrame(CmdStop), []byte{0xfd, 0x00, 0x01, 0x02}},
		{"power save", CommandFrame(CmdPowerSave), []byte{0xfd, 0x00, 0x01, 0x88}},
		{"speech", SpeechFrame(EncodingGB2312, []byte("hi")), []byte{0xfd, 0x00, 0x04, 0x01, 0x00, 'h', 'i'}},
		{"speech unicode", SpeechFrame(EncodingUnicode, []byte{0x60, 0x4f}), []byte{0xfd, 0x00, 0x04, 0x01, 0x03, 0x60, 0x4f}},
		{"empty speech", SpeechFrame(EncodingGB2312, nil), []byte{0xfd, 0x00, 0x02, 0x01, 0x00}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.frame.Bytes())
			var buf bytes.Buffer
			n, err := tc.frame.WriteTo(&buf)
			require.NoError(t, err)
			require.Equal(t, tc.expect, buf.Bytes())
			require.EqualValues(t, len(tc.expect), n)
			require.Equal(t, append([]byte{0x55}, tc.expect...), tc.frame.AppendTo([]byte{0x55}))
		})
	}
}

func TestSpeechFrameLength(t *testing.T) {
	for _, size := range []int{0, 1, 31, 32, 255, 256, 300, 1000} {
		text := bytes.Repeat([]byte{'a'}, size)
		b := SpeechFrame(EncodingGB2312, text).Bytes()
		require.Equal(t, size+2, int(b[1])<<8|int(b[2]), "size %d", size)
		require.Len(t, b, size+5)
	}
}

func TestSettingFrame(t *testing.T) {
	for v := 0; v <= 9; v++ {
		f, ok := SettingFrame('v', v)
		require.True(t, ok)
		b := f.Bytes()
		require.Equal(t, []byte{0xfd, 0x00, 0x06, 0x01, 0x00, '[', 'v', byte(48 + v), ']'}, b)
	}
	for _, v := range []int{-10, -1, 10, 99} {
		f, ok := SettingFrame('s', v)
		require.False(t, ok)
		require.Nil(t, f)
	}
}

func TestParseFrame(t *testing.T) {
	f, err := ParseFrame([]byte{0xfd, 0x00, 0x01, 0x21})
	require.NoError(t, err)
	require.Equal(t, InquiryFrame(), f)

	orig := SpeechFrame(EncodingUTF8, []byte("hello"))
	f, err = ParseFrame(orig.Bytes())
	require.NoError(t, err)
	require.Equal(t, orig, f)
	enc, text, ok := f.Text()
	require.True(t, ok)
	require.Equal(t, EncodingUTF8, enc)
	require.Equal(t, "hello", string(text))

	_, _, ok = InquiryFrame().Text()
	require.False(t, ok)

	testCases := []struct {
		name string
		in   []byte
		err  error
	}{
		{"empty", nil, ErrShortFrame},
		{"header only", []byte{0xfd, 0x00, 0x01}, ErrShortFrame},
		{"preamble", []byte{0xfe, 0x00, 0x01, 0x21}, ErrBadPreamble},
		{"zero length", []byte{0xfd, 0x00, 0x00, 0x21}, ErrLengthMismatch},
		{"too long", []byte{0xfd, 0x00, 0x02, 0x21}, ErrLengthMismatch},
		{"too short", []byte{0xfd, 0x00, 0x01, 0x21, 0x00}, ErrLengthMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFrame(tc.in)
			require.Equal(t, tc.err, err)
		})
	}
}

func TestFrameString(t *testing.T) {
	require.Equal(t, "fd 00 01 21", InquiryFrame().String())
	require.True(t, strings.HasPrefix(SpeechFrame(EncodingGB2312, []byte("a")).String(), "fd 00 03 01 00"))
}
