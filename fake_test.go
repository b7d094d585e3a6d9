package gadget

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

var testLines = Lines{
	Power:  "power",
	Ground: "ground",
	Sensor: "sensor",
}

type fakeDriver struct {
	mu     sync.Mutex
	calls  []string
	dirs   map[string]Direction
	levels map[string]Level
	failOn string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		dirs:   map[string]Direction{},
		levels: map[string]Level{},
	}
}

func (f *fakeDriver) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn != "" && strings.HasPrefix(call, f.failOn) {
		return fmt.Errorf("fake failure: %s", call)
	}
	return nil
}

func (f *fakeDriver) Configure(pin string, d Direction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("configure %s %s", pin, d)); err != nil {
		return err
	}
	f.dirs[pin] = d
	if d == DirectionOutput {
		f.levels[pin] = Low
	}
	return nil
}

func (f *fakeDriver) Write(pin string, l Level) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("write %s %s", pin, l)); err != nil {
		return err
	}
	f.levels[pin] = l
	return nil
}

func (f *fakeDriver) PWM(pin string, hz, duty int, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record(fmt.Sprintf("pwm %s %dhz %d%% %s", pin, hz, duty, d))
}

func (f *fakeDriver) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeDriver) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeDriver) Count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeDriver) Level(pin string) Level {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.levels[pin]
}

func (f *fakeDriver) Direction(pin string) Direction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirs[pin]
}

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) schedule(d time.Duration, fn func()) timer {
	t := &fakeTimer{d: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// last fires the most recently scheduled timer.
func (c *fakeClock) last() *fakeTimer {
	return c.timers[len(c.timers)-1]
}

func newTestGadget(tb testing.TB, hooks Hooks) (*Gadget, *fakeDriver, *fakeClock) {
	tb.Helper()
	drv := newFakeDriver()
	hw := NewHardware(drv, testLines)
	if err := hw.Init(); err != nil {
		tb.Fatal(err)
	}
	drv.Reset()

	clock := &fakeClock{now: time.Date(2021, 1, 5, 20, 0, 0, 0, time.UTC)}
	g := New(hw, hooks)
	g.power.schedule = clock.schedule
	g.power.now = clock.Now
	return g, drv, clock
}
