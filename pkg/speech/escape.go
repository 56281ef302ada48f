package speech

import (
	"fmt"
	"strconv"
	"strings"
)

// Setting keys.
const (
	KeyVolume   byte = 'v'
	KeySpeed    byte = 's'
	KeyTone     byte = 't'
	KeySound    byte = 'm'
	KeyEnglish  byte = 'h'
	KeyRhythm   byte = 'z'
	KeyPinyin   byte = 'i'
	KeyDigits   byte = 'n'
	KeyStyle    byte = 'f'
	KeyLanguage byte = 'g'
	KeyZero     byte = 'o'
	KeyOne      byte = 'y'
	KeyName     byte = 'r'
	KeyDefaults byte = 'd'
)

// Setting is an inline escape sequence like "[v5]". The module takes it
// from the text it speaks.
type Setting struct {
	Key   byte
	Value string
}

func (s Setting) String() string {
	return "[" + string(s.Key) + s.Value + "]"
}

// Level returns the value of a single digit setting.
func (s Setting) Level() (int, bool) {
	if len(s.Value) != 1 || s.Value[0] < '0' || s.Value[0] > '9' {
		return 0, false
	}
	return int(s.Value[0] - '0'), true
}

// Meaning describes a known setting, e.g. "english: word".
func (s Setting) Meaning() (string, bool) {
	switch s.Key {
	case KeyVolume:
		return "volume: " + s.Value, s.isLevel()
	case KeySpeed:
		return "speed: " + s.Value, s.isLevel()
	case KeyTone:
		return "tone: " + s.Value, s.isLevel()
	case KeyDefaults:
		return "reset", s.Value == ""
	}
	m, ok := meanings[s]
	return m, ok
}

func (s Setting) isLevel() bool {
	_, ok := s.Level()
	return ok
}

// SyntaxError is returned by ParseSetting.
type SyntaxError struct {
	Text string
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid setting %q", e.Text)
}

// ParseSetting parses "[<key><digits>]".
func ParseSetting(text string) (Setting, error) {
	if len(text) < 3 || text[0] != '[' || text[len(text)-1] != ']' {
		return Setting{}, &SyntaxError{Text: text}
	}
	key, value := text[1], text[2:len(text)-1]
	if key < 'a' || key > 'z' {
		return Setting{}, &SyntaxError{Text: text}
	}
	if value != "" {
		if _, err := strconv.ParseUint(value, 10, 8); err != nil {
			return Setting{}, &SyntaxError{Text: text}
		}
	}
	return Setting{Key: key, Value: value}, nil
}

// SplitSettings extracts the settings embedded in text. It returns them in
// order together with the remaining text. Brackets which don't form a valid
// setting are kept in the text.
func SplitSettings(text string) ([]Setting, string) {
	var (
		settings []Setting
		rest     strings.Builder
	)
	for {
		start := strings.IndexByte(text, '[')
		if start < 0 {
			break
		}
		end := strings.IndexByte(text[start:], ']')
		if end < 0 {
			break
		}
		end += start + 1
		s, err := ParseSetting(text[start:end])
		if err != nil {
			rest.WriteString(text[:start+1])
			text = text[start+1:]
			continue
		}
		settings = append(settings, s)
		rest.WriteString(text[:start])
		text = text[end:]
	}
	rest.WriteString(text)
	return settings, rest.String()
}
