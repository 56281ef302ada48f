package speech

import (
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/tts.go/pkg/speech/protocol"
	"github.com/robotalks/tts.go/pkg/speech/transport"
)

// Defaults of Config.
const (
	DefaultVolume       = 1
	DefaultWakeAttempts = 40
)

// staleAcks is the number of acks dropped before every spoken text.
// Leftover status bytes from the previous cycle would otherwise be taken
// as the reply to the new frame.
const staleAcks = 2

// Config configures a Device.
type Config struct {
	// Encoding is used for text passed to Speak.
	Encoding protocol.Encoding
	// Volume is set right after the device is created.
	Volume int
	// WakeAttempts bounds the I2C handshake.
	WakeAttempts int
	// Timeout bounds every wait for the module. Zero waits forever.
	Timeout time.Duration
	// Sleep replaces time.Sleep for all pauses.
	Sleep func(time.Duration)
}

// DefaultConfig returns the default Config.
func DefaultConfig() Config {
	return Config{
		Encoding:     protocol.EncodingGB2312,
		Volume:       DefaultVolume,
		WakeAttempts: DefaultWakeAttempts,
	}
}

// Device drives a speech synthesis module. Every method blocks until the
// module finished. A Device must not be used by multiple goroutines at
// the same time, use a Worker for that.
type Device struct {
	Encoding protocol.Encoding

	tx     protocol.Transport
	poller *protocol.Poller
	buf    []byte
}

// New creates a Device on a transport without any I/O.
func New(tx protocol.Transport, conf Config) *Device {
	p := protocol.NewPoller(tx)
	p.Timeout = conf.Timeout
	if conf.Sleep != nil {
		p.Sleep = conf.Sleep
	}
	return &Device{Encoding: conf.Encoding, tx: tx, poller: p}
}

// NewI2C wakes up the module at addr and sets the default volume.
func NewI2C(bus transport.Bus, addr uint16, conf Config) (*Device, error) {
	d := New(transport.NewI2C(bus, addr), conf)
	n, ok, err := d.poller.Handshake(conf.WakeAttempts)
	if err != nil {
		return nil, fmt.Errorf("wake up: %w", err)
	}
	if ok {
		glog.Infof("module 0x%02x ready after %d attempts", addr, n)
	} else {
		glog.Warningf("module 0x%02x not idle after %d attempts", addr, n)
	}
	if err = d.SetVolume(conf.Volume); err != nil {
		return nil, err
	}
	return d, nil
}

// NewUART sets the default volume of the module on a serial port. No
// handshake happens on serial links.
func NewUART(port io.ReadWriter, conf Config) (*Device, error) {
	u := transport.NewUART(port)
	if conf.Sleep != nil {
		u.Sleep = conf.Sleep
	}
	d := New(u, conf)
	if err := d.SetVolume(conf.Volume); err != nil {
		return nil, err
	}
	return d, nil
}

// Transport returns the underlying transport.
func (d *Device) Transport() protocol.Transport {
	return d.tx
}

// Speak speaks text. Escapes like "[v5]" in text change settings.
func (d *Device) Speak(text string) error {
	data, err := protocol.Encode(d.Encoding, text)
	if err != nil {
		return fmt.Errorf("encode %q: %w", text, err)
	}
	if len(data) > protocol.MaxTextLen {
		return protocol.ErrFrameTooLarge
	}
	d.poller.Drain(staleAcks)
	return d.play(protocol.SpeechFrame(d.Encoding, data))
}

// SetVolume sets the volume, 0-9. Other values are ignored.
func (d *Device) SetVolume(volume int) error {
	return d.setLevel(KeyVolume, volume)
}

// SetSpeed sets the speed, 0-9. Other values are ignored.
func (d *Device) SetSpeed(speed int) error {
	return d.setLevel(KeySpeed, speed)
}

// SetTone sets the tone, 0-9. Other values are ignored.
func (d *Device) SetTone(tone int) error {
	return d.setLevel(KeyTone, tone)
}

// SetSoundType selects the voice.
func (d *Device) SetSoundType(t SoundType) error {
	return d.speakChoice("sound type", t)
}

// SetEnglishPron sets how English is read.
func (d *Device) SetEnglishPron(p EnglishPron) error {
	return d.speakChoice("english pronunciation", p)
}

// SetDigitalPron sets how long numbers are read.
func (d *Device) SetDigitalPron(p DigitalPron) error {
	return d.speakChoice("digit pronunciation", p)
}

// SetSpeechStyle sets the pacing of Chinese.
func (d *Device) SetSpeechStyle(s SpeechStyle) error {
	return d.speakChoice("speech style", s)
}

// SetLanguage sets the language of numbers, units and symbols.
func (d *Device) SetLanguage(l Language) error {
	return d.speakChoice("language", l)
}

// SetZeroPron sets how "0" is read in phone numbers.
func (d *Device) SetZeroPron(p ZeroPron) error {
	return d.speakChoice("zero pronunciation", p)
}

// SetOnePron sets how "1" is read in phone numbers.
func (d *Device) SetOnePron(p OnePron) error {
	return d.speakChoice("one pronunciation", p)
}

// SetNamePron sets whether surnames are forced.
func (d *Device) SetNamePron(p NamePron) error {
	return d.speakChoice("name pronunciation", p)
}

// EnableRhythm turns rhythm marks of Chinese on or off.
func (d *Device) EnableRhythm(enable bool) error {
	return d.Speak(RhythmSetting(enable).String())
}

// EnablePinyin turns pinyin input on or off.
func (d *Device) EnablePinyin(enable bool) error {
	return d.Speak(PinyinSetting(enable).String())
}

// Reset restores default settings.
func (d *Device) Reset() error {
	return d.Speak(ResetSetting().String())
}

// Apply applies a setting the same way as the typed setters do.
func (d *Device) Apply(s Setting) error {
	switch s.Key {
	case KeyVolume, KeySpeed, KeyTone:
		level, ok := s.Level()
		if !ok {
			glog.Warningf("ignore setting %v", s)
			return nil
		}
		return d.setLevel(s.Key, level)
	}
	return d.Speak(s.String())
}

// Test speaks the fixed diagnostic text.
func (d *Device) Test() error {
	return d.play(protocol.SpeechFrame(protocol.EncodingGB2312, []byte("BCDEFGHIJK")))
}

// Stop stops synthesis.
func (d *Device) Stop() error {
	return d.command(protocol.CmdStop)
}

// Pause pauses synthesis.
func (d *Device) Pause() error {
	return d.command(protocol.CmdPause)
}

// Resume resumes paused synthesis.
func (d *Device) Resume() error {
	return d.command(protocol.CmdResume)
}

// Sleep puts the module into power saving mode.
func (d *Device) Sleep() error {
	return d.command(protocol.CmdPowerSave)
}

// WakeUp brings the module back from power saving mode.
func (d *Device) WakeUp() error {
	return d.command(protocol.CmdWakeUp)
}

type choice interface {
	Setting() (Setting, bool)
	fmt.Stringer
}

func (d *Device) speakChoice(what string, c choice) error {
	s, ok := c.Setting()
	if !ok {
		glog.Warningf("unknown %s %v", what, c)
		return nil
	}
	return d.Speak(s.String())
}

func (d *Device) setLevel(key byte, value int) error {
	f, ok := protocol.SettingFrame(key, value)
	if !ok {
		glog.V(1).Infof("ignore [%c] out of range: %d", key, value)
		return nil
	}
	return d.play(f)
}

// play sends a frame which starts playback and waits until it's done.
func (d *Device) play(f *protocol.Frame) error {
	if err := d.write(f); err != nil {
		return err
	}
	return d.poller.Wait()
}

// command sends a control frame. Control frames don't start playback so
// there's nothing to wait for.
func (d *Device) command(cmd byte) error {
	return d.write(protocol.CommandFrame(cmd))
}

func (d *Device) write(f *protocol.Frame) error {
	d.buf = f.AppendTo(d.buf[:0])
	glog.V(2).Infof("SND % x", d.buf)
	return d.tx.Write(d.buf)
}
