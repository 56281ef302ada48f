package protocol

import (
	"time"

	"github.com/golang/glog"
)

// Default timings.
const (
	DefaultReadInterval = 10 * time.Millisecond
	DefaultSettle       = 100 * time.Millisecond
	DefaultInterval     = 20 * time.Millisecond

	WakeDelay      = 50 * time.Millisecond
	WakeCheckDelay = 100 * time.Millisecond
)

// Poller waits for acks from the module.
type Poller struct {
	Transport Transport

	// ReadInterval is the pause between reads while waiting for an ack.
	ReadInterval time.Duration
	// Settle is the pause between playback started and the first inquiry.
	Settle time.Duration
	// Interval is the pause between an inquiry and reading its reply.
	Interval time.Duration
	// Timeout bounds Wait, WaitFor and WaitIdle. Zero waits forever.
	Timeout time.Duration

	Sleep func(time.Duration)
	Now   func() time.Time
}

// NewPoller creates a Poller with default timings.
func NewPoller(t Transport) *Poller {
	return &Poller{
		Transport:    t,
		ReadInterval: DefaultReadInterval,
		Settle:       DefaultSettle,
		Interval:     DefaultInterval,
		Sleep:        time.Sleep,
		Now:          time.Now,
	}
}

// Drain reads and drops n acks.
func (p *Poller) Drain(n int) {
	for i := 0; i < n; i++ {
		if ack := p.Transport.ReadAck(); ack != AckNone {
			glog.V(3).Infof("drop stale ack %v", ack)
		}
	}
}

// WaitFor reads acks until expected is received.
func (p *Poller) WaitFor(expected Ack) error {
	return p.waitFor(expected, p.deadline())
}

// WaitIdle sends status inquiries until the module replies idle.
func (p *Poller) WaitIdle() error {
	return p.waitIdle(p.deadline())
}

// Wait waits for a full playback cycle: started, then idle.
func (p *Poller) Wait() error {
	dl := p.deadline()
	if err := p.waitFor(AckStarted, dl); err != nil {
		return err
	}
	p.sleep(p.Settle)
	return p.waitIdle(dl)
}

// Handshake wakes the module up and checks it's idle, at most attempts
// times. It returns the number of attempts made and whether the module
// replied idle.
func (p *Poller) Handshake(attempts int) (int, bool, error) {
	inquiry := InquiryFrame().Bytes()
	for n := 1; n <= attempts; n++ {
		if err := p.Transport.Write([]byte{WakeByte}); err != nil {
			return n, false, err
		}
		p.sleep(WakeDelay)
		p.sleep(WakeCheckDelay)
		if err := p.Transport.Write(inquiry); err != nil {
			return n, false, err
		}
		if ack := p.Transport.ReadAck(); ack == AckIdle {
			return n, true, nil
		}
	}
	return attempts, false, nil
}

func (p *Poller) waitFor(expected Ack, dl time.Time) error {
	for {
		ack := p.Transport.ReadAck()
		if ack == expected {
			return nil
		}
		if err := p.check(dl, expected, ack); err != nil {
			return err
		}
		p.sleep(p.ReadInterval)
	}
}

func (p *Poller) waitIdle(dl time.Time) error {
	inquiry := InquiryFrame().Bytes()
	for {
		if err := p.Transport.Write(inquiry); err != nil {
			return err
		}
		p.sleep(p.Interval)
		ack := p.Transport.ReadAck()
		if ack == AckIdle {
			return nil
		}
		if err := p.check(dl, AckIdle, ack); err != nil {
			return err
		}
	}
}

func (p *Poller) deadline() time.Time {
	if p.Timeout <= 0 {
		return time.Time{}
	}
	return p.now().Add(p.Timeout)
}

func (p *Poller) check(dl time.Time, expected, last Ack) error {
	if dl.IsZero() || p.now().Before(dl) {
		return nil
	}
	return &TimeoutError{Expected: expected, Last: last}
}

func (p *Poller) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if p.Sleep != nil {
		p.Sleep(d)
	} else {
		time.Sleep(d)
	}
}

func (p *Poller) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
