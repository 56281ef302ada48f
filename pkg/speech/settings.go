package speech

import "strconv"

// SoundType selects the speaker voice.
type SoundType int

// Sound types.
const (
	Female SoundType = iota + 1
	Male
	Male2
	Female2
	DonaldDuck
	Female3
)

// EnglishPron selects how English words are read.
type EnglishPron int

// English pronunciation modes.
const (
	Alphabet EnglishPron = iota + 1 // letter by letter
	Word
)

// DigitalPron selects how long numbers are read.
type DigitalPron int

// Digit pronunciation modes.
const (
	Number     DigitalPron = iota + 1 // as a phone number
	Numeric                           // as a value
	AutoDigits                        // module decides
)

// SpeechStyle selects how Chinese is paced.
type SpeechStyle int

// Speech styles.
const (
	Caton  SpeechStyle = iota + 1 // word by word
	Smooth                        // fluently
)

// Language selects the language of numbers, units and symbols.
type Language int

// Languages.
const (
	Chinese Language = iota + 1
	English
	AutoLanguage
)

// ZeroPron selects how "0" is read in phone numbers.
type ZeroPron int

// Zero pronunciations.
const (
	Zero ZeroPron = iota + 1 // "ling"
	Ou
)

// OnePron selects how "1" is read in phone numbers.
type OnePron int

// One pronunciations.
const (
	Yao OnePron = iota + 1
	Yi
)

// NamePron selects whether surname pronunciation is forced.
type NamePron int

// Name pronunciations.
const (
	Surname  NamePron = iota + 1 // always read the first character as a surname
	AutoName                     // module decides
)

type option[T ~int] struct {
	value   T
	name    string
	setting Setting
}

type options[T ~int] []option[T]

func (o options[T]) setting(v T) (Setting, bool) {
	for _, opt := range o {
		if opt.value == v {
			return opt.setting, true
		}
	}
	return Setting{}, false
}

func (o options[T]) name(v T) string {
	for _, opt := range o {
		if opt.value == v {
			return opt.name
		}
	}
	return strconv.Itoa(int(v))
}

func (o options[T]) parse(name string) (T, bool) {
	for _, opt := range o {
		if opt.name == name {
			return opt.value, true
		}
	}
	return 0, false
}

func (o options[T]) names() []string {
	names := make([]string, len(o))
	for n, opt := range o {
		names[n] = opt.name
	}
	return names
}

func (o options[T]) describe(what string) {
	for _, opt := range o {
		meanings[opt.setting] = what + ": " + opt.name
	}
}

var (
	soundTypes = options[SoundType]{
		{Female, "female", Setting{KeySound, "3"}},
		{Male, "male", Setting{KeySound, "51"}},
		{Male2, "male2", Setting{KeySound, "52"}},
		{Female2, "female2", Setting{KeySound, "53"}},
		{DonaldDuck, "donaldduck", Setting{KeySound, "54"}},
		{Female3, "female3", Setting{KeySound, "55"}},
	}
	englishProns = options[EnglishPron]{
		{Alphabet, "alphabet", Setting{KeyEnglish, "1"}},
		{Word, "word", Setting{KeyEnglish, "2"}},
	}
	digitalProns = options[DigitalPron]{
		{Number, "number", Setting{KeyDigits, "1"}},
		{Numeric, "numeric", Setting{KeyDigits, "2"}},
		{AutoDigits, "auto", Setting{KeyDigits, "0"}},
	}
	speechStyles = options[SpeechStyle]{
		{Caton, "caton", Setting{KeyStyle, "0"}},
		{Smooth, "smooth", Setting{KeyStyle, "1"}},
	}
	languages = options[Language]{
		{Chinese, "chinese", Setting{KeyLanguage, "1"}},
		{English, "english", Setting{KeyLanguage, "2"}},
		{AutoLanguage, "auto", Setting{KeyLanguage, "0"}},
	}
	zeroProns = options[ZeroPron]{
		{Zero, "zero", Setting{KeyZero, "0"}},
		{Ou, "ou", Setting{KeyZero, "1"}},
	}
	oneProns = options[OnePron]{
		{Yao, "yao", Setting{KeyOne, "0"}},
		{Yi, "yi", Setting{KeyOne, "1"}},
	}
	nameProns = options[NamePron]{
		{Surname, "surname", Setting{KeyName, "1"}},
		{AutoName, "auto", Setting{KeyName, "0"}},
	}

	meanings = map[Setting]string{
		RhythmSetting(true):  "rhythm: on",
		RhythmSetting(false): "rhythm: off",
		PinyinSetting(true):  "pinyin: on",
		PinyinSetting(false): "pinyin: off",
	}
)

func init() {
	soundTypes.describe("sound")
	englishProns.describe("english")
	digitalProns.describe("digits")
	speechStyles.describe("style")
	languages.describe("language")
	zeroProns.describe("zero")
	oneProns.describe("one")
	nameProns.describe("name")
}

// Setting returns the escape of the sound type.
func (t SoundType) Setting() (Setting, bool) { return soundTypes.setting(t) }

func (t SoundType) String() string { return soundTypes.name(t) }

// Setting returns the escape of the mode.
func (p EnglishPron) Setting() (Setting, bool) { return englishProns.setting(p) }

func (p EnglishPron) String() string { return englishProns.name(p) }

// Setting returns the escape of the mode.
func (p DigitalPron) Setting() (Setting, bool) { return digitalProns.setting(p) }

func (p DigitalPron) String() string { return digitalProns.name(p) }

// Setting returns the escape of the style.
func (s SpeechStyle) Setting() (Setting, bool) { return speechStyles.setting(s) }

func (s SpeechStyle) String() string { return speechStyles.name(s) }

// Setting returns the escape of the language.
func (l Language) Setting() (Setting, bool) { return languages.setting(l) }

func (l Language) String() string { return languages.name(l) }

// Setting returns the escape of the pronunciation.
func (p ZeroPron) Setting() (Setting, bool) { return zeroProns.setting(p) }

func (p ZeroPron) String() string { return zeroProns.name(p) }

// Setting returns the escape of the pronunciation.
func (p OnePron) Setting() (Setting, bool) { return oneProns.setting(p) }

func (p OnePron) String() string { return oneProns.name(p) }

// Setting returns the escape of the pronunciation.
func (p NamePron) Setting() (Setting, bool) { return nameProns.setting(p) }

func (p NamePron) String() string { return nameProns.name(p) }

// RhythmSetting is "[z1]" or "[z0]".
func RhythmSetting(enable bool) Setting {
	return boolSetting(KeyRhythm, enable)
}

// PinyinSetting is "[i1]" or "[i0]".
func PinyinSetting(enable bool) Setting {
	return boolSetting(KeyPinyin, enable)
}

// ResetSetting is "[d]".
func ResetSetting() Setting {
	return Setting{Key: KeyDefaults}
}

func boolSetting(key byte, enable bool) Setting {
	if enable {
		return Setting{Key: key, Value: "1"}
	}
	return Setting{Key: key, Value: "0"}
}
