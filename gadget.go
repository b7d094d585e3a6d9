// Package gadget drives an animatronic prop from voice assistant events.
//
// Waking the assistant powers the prop for a fixed window; the first speech mark
// in that window simulates a touch on the prop's capacitive sensor so it starts
// talking along.
package gadget

import (
	"fmt"
	"sync"
	"time"
)

// Hooks are called with the gadget lock held, they must not call back into it.
type Hooks struct {
	OnPower      func(on bool)
	OnTrigger    func()
	OnSuppressed func() // speech mark during a turn that already triggered
	OnIgnored    func() // speech mark while powered off
}

// Gadget is the prop's state machine. All its methods are safe for concurrent use.
type Gadget struct {
	mu      sync.Mutex
	power   *Power
	session *Session
	trigger *Trigger
	hooks   Hooks
	fatal   chan error
}

// New returns a powered off gadget. hw must be initialized already.
func New(hw *Hardware, hooks Hooks) *Gadget {
	session := &Session{}
	return &Gadget{
		power:   newPower(hw, session, DefaultDeadline),
		session: session,
		trigger: NewTrigger(hw),
		hooks:   hooks,
		fatal:   make(chan error, 1),
	}
}

// Activate powers the prop on and restarts the shutoff countdown.
func (g *Gadget) Activate() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	wasOn := g.power.state == StateOn
	if err := g.power.activate(g.expire); err != nil {
		return err
	}
	log.Info("powered on", "until", g.power.deadline.Format(time.TimeOnly), "restarted", wasOn)
	if g.hooks.OnPower != nil {
		g.hooks.OnPower(true)
	}
	return nil
}

// WakewordCleared does nothing: the assistant usually keeps talking after the wake
// word clears, so only the deadline powers the prop off.
func (g *Gadget) WakewordCleared() {
	log.Debug("wake word cleared")
}

// SpeechMark fires the touch simulation on the first speech mark of a power window.
func (g *Gadget) SpeechMark() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.power.state != StateOn {
		log.Debug("speech while powered off, ignoring")
		if g.hooks.OnIgnored != nil {
			g.hooks.OnIgnored()
		}
		return nil
	}
	if !g.session.begin() {
		log.Debug("speech")
		if g.hooks.OnSuppressed != nil {
			g.hooks.OnSuppressed()
		}
		return nil
	}
	log.Info("talking started, triggering")
	if g.hooks.OnTrigger != nil {
		g.hooks.OnTrigger()
	}
	return g.trigger.Fire()
}

// PowerOff powers everything down right away.
func (g *Gadget) PowerOff() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.powerOff()
}

func (g *Gadget) powerOff() error {
	if g.power.state == StateOff {
		return nil
	}
	if err := g.power.off(); err != nil {
		return err
	}
	log.Info("powered off")
	if g.hooks.OnPower != nil {
		g.hooks.OnPower(false)
	}
	return nil
}

// expire runs on the timer goroutine, so nothing up the stack would see its
// errors or panics: both go to the fatal channel.
func (g *Gadget) expire(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			g.raise(fmt.Errorf("panic in deadline timer: %v", r))
		}
	}()
	if !g.power.current(gen) {
		log.Debug("stale deadline timer", "gen", gen)
		return
	}
	log.Info("deadline reached")
	if err := g.powerOff(); err != nil {
		g.raise(err)
	}
}

func (g *Gadget) raise(err error) {
	select {
	case g.fatal <- err:
	default:
		log.Error("dropping fatal error", "err", err)
	}
}

// Fatal delivers hardware errors raised outside of a caller, such as by the deadline timer.
func (g *Gadget) Fatal() <-chan error {
	return g.fatal
}

func (g *Gadget) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.power.state
}

func (g *Gadget) Talking() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Talking()
}

// Deadline is when the current power window closes, zero if off.
func (g *Gadget) Deadline() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.power.deadline
}
