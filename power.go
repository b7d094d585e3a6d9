package gadget

import (
	"fmt"
	"time"
)

// DefaultDeadline is how long the prop stays powered after the latest activation.
const DefaultDeadline = 15 * time.Second

// State is whether the prop is powered.
type State uint8

const (
	StateOff State = iota
	StateOn
)

func (s State) String() string {
	switch s {
	case StateOn:
		return "on"
	default:
		return "off"
	}
}

type timer interface {
	Stop() bool
}

type scheduler func(d time.Duration, fn func()) timer

func afterFunc(d time.Duration, fn func()) timer {
	return time.AfterFunc(d, fn)
}

// Power owns the on/off relay and the deadline timer.
// It is not safe for concurrent use, Gadget guards it.
type Power struct {
	hw       *Hardware
	session  *Session
	window   time.Duration
	schedule scheduler
	now      func() time.Time

	state    State
	timer    timer
	gen      uint64
	deadline time.Time
}

func newPower(hw *Hardware, session *Session, window time.Duration) *Power {
	return &Power{
		hw:       hw,
		session:  session,
		window:   window,
		schedule: afterFunc,
		now:      time.Now,
	}
}

// activate powers the prop and restarts the countdown from now.
// expire is called with the generation of the timer that fired.
func (p *Power) activate(expire func(gen uint64)) error {
	if err := p.hw.setPower(High); err != nil {
		return fmt.Errorf("could not power on: %w", err)
	}
	p.disarm()
	p.gen++
	gen := p.gen
	p.timer = p.schedule(p.window, func() { expire(gen) })
	p.deadline = p.now().Add(p.window)
	p.state = StateOn
	return nil
}

// current reports whether gen is the live timer.
// A timer that fired while being replaced must not power off the new window.
func (p *Power) current(gen uint64) bool {
	return p.state == StateOn && gen == p.gen
}

// off powers everything down and ends the speaking turn. No-op when already off.
func (p *Power) off() error {
	if p.state == StateOff {
		return nil
	}
	p.disarm()
	p.session.reset()
	p.state = StateOff
	p.deadline = time.Time{}
	if err := p.hw.setPower(Low); err != nil {
		return fmt.Errorf("could not power off: %w", err)
	}
	if err := p.hw.setGround(Low); err != nil {
		return fmt.Errorf("could not release ground: %w", err)
	}
	return nil
}

func (p *Power) disarm() {
	if p.timer == nil {
		return
	}
	p.timer.Stop()
	p.timer = nil
	p.gen++
}
