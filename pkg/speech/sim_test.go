package speech

import (
	"encoding/binary"
	"time"

	"github.com/robotalks/tts.go/pkg/speech/protocol"
)

// simModule simulates the module on the byte stream level.
type simModule struct {
	readyAt int // wake attempt replying idle, 0 means always ready

	in      []byte
	writes  int
	frames  []*protocol.Frame
	wakes   int
	ready   bool
	playing bool
	pending []protocol.Ack
	reads   int
}

func newSimModule() *simModule {
	return &simModule{ready: true}
}

func (m *simModule) feed(p []byte) {
	m.writes++
	m.in = append(m.in, p...)
	for len(m.in) > 0 {
		if m.in[0] == protocol.WakeByte {
			m.wakes++
			m.in = m.in[1:]
			continue
		}
		if len(m.in) < 4 {
			return
		}
		size := 3 + int(binary.BigEndian.Uint16(m.in[1:3]))
		if len(m.in) < size {
			return
		}
		f, err := protocol.ParseFrame(m.in[:size])
		m.in = m.in[size:]
		if err != nil {
			panic(err)
		}
		m.handle(f)
	}
}

func (m *simModule) handle(f *protocol.Frame) {
	switch f.Command {
	case protocol.CmdInquiry:
		switch {
		case !m.ready:
			if m.wakes >= m.readyAt {
				m.ready = true
				m.pending = append(m.pending, protocol.AckIdle)
			} else {
				m.pending = append(m.pending, protocol.Ack(0x00))
			}
		case m.playing:
			// first inquiry while playing reports busy
			m.playing = false
			m.pending = append(m.pending, protocol.Ack(0x4e))
		default:
			m.pending = append(m.pending, protocol.AckIdle)
		}
	case protocol.CmdSynthesize:
		m.frames = append(m.frames, f)
		m.playing = true
		m.pending = append(m.pending, protocol.AckStarted)
	default:
		m.frames = append(m.frames, f)
	}
}

func (m *simModule) next() protocol.Ack {
	m.reads++
	if len(m.pending) == 0 {
		return protocol.AckNone
	}
	ack := m.pending[0]
	m.pending = m.pending[1:]
	return ack
}

// texts returns the text of spoken frames.
func (m *simModule) texts() []string {
	var texts []string
	for _, f := range m.frames {
		if _, text, ok := f.Text(); ok {
			texts = append(texts, string(text))
		}
	}
	return texts
}

func (m *simModule) frameBytes() [][]byte {
	var frames [][]byte
	for _, f := range m.frames {
		frames = append(frames, f.Bytes())
	}
	return frames
}

// Write implements protocol.Transport.
func (m *simModule) Write(p []byte) error {
	m.feed(p)
	return nil
}

// ReadAck implements protocol.Transport.
func (m *simModule) ReadAck() protocol.Ack {
	return m.next()
}

// simBus exposes simModule as an I2C bus.
type simBus struct {
	*simModule
	txs int
}

func (b *simBus) Tx(addr uint16, w, r []byte) error {
	b.txs++
	if len(w) > 0 {
		b.feed(w)
	}
	if len(r) > 0 {
		ack := b.next()
		if ack == protocol.AckNone {
			return errNoData
		}
		r[0] = byte(ack)
	}
	return nil
}

type simError string

func (e simError) Error() string { return string(e) }

const errNoData = simError("no data")

// simPort exposes simModule as a serial port speaking 'A' and 'O'.
type simPort struct {
	*simModule
}

func (p *simPort) Write(b []byte) (int, error) {
	p.feed(b)
	return len(b), nil
}

func (p *simPort) Read(b []byte) (int, error) {
	switch ack := p.next(); ack {
	case protocol.AckNone:
		return 0, nil
	case protocol.AckStarted:
		b[0] = 'A'
	case protocol.AckIdle:
		b[0] = 'O'
	default:
		b[0] = byte(ack)
	}
	return 1, nil
}

func noSleep(time.Duration) {}

func testConfig() Config {
	conf := DefaultConfig()
	conf.Sleep = noSleep
	return conf
}

func newTestDevice() (*Device, *simModule) {
	m := newSimModule()
	return New(m, testConfig()), m
}
