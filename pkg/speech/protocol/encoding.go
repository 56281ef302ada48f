package protocol

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the text encoding byte of a speech frame.
type Encoding byte

// Encodings understood by the module.
const (
	EncodingGB2312  Encoding = 0x00
	EncodingGBK     Encoding = 0x01
	EncodingBig5    Encoding = 0x02
	EncodingUnicode Encoding = 0x03 // UTF-16LE
	EncodingUTF8    Encoding = 0x04
)

var encodingNames = [...]string{
	"gb2312",
	"gbk",
	"big5",
	"unicode",
	"utf8",
}

func (e Encoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return fmt.Sprintf("Encoding(0x%02x)", byte(e))
}

// ParseEncoding parses an encoding name.
func ParseEncoding(name string) (Encoding, error) {
	name = strings.ToLower(strings.Replace(name, "-", "", -1))
	for n, s := range encodingNames {
		if s == name {
			return Encoding(n), nil
		}
	}
	switch name {
	case "utf16", "utf16le":
		return EncodingUnicode, nil
	case "":
		return EncodingGB2312, nil
	}
	return 0, fmt.Errorf("unknown encoding %q", name)
}

// Encode converts text to the byte form of enc. It fails on characters
// enc can't represent, but never looks at what the text says.
// GB2312 is encoded with the GBK table which is a superset of it.
func Encode(enc Encoding, text string) ([]byte, error) {
	switch enc {
	case EncodingGB2312, EncodingGBK:
		return simplifiedchinese.GBK.NewEncoder().Bytes([]byte(text))
	case EncodingBig5:
		return traditionalchinese.Big5.NewEncoder().Bytes([]byte(text))
	case EncodingUnicode:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(text))
	case EncodingUTF8:
		return []byte(text), nil
	}
	return nil, &UnsupportedEncodingError{Encoding: enc}
}
