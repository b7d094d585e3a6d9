package gadget

import (
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	logp "github.com/charmbracelet/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "gadget",
})

// SetLogLevel sets the level of the package logger.
func SetLogLevel(level logp.Level) {
	log.SetLevel(level)
}

const openTimeout = 30 * time.Second

// Periph drives pins through periph.io.
type Periph struct {
	pins map[string]gpio.PinIO
}

// OpenPeriph initializes the host drivers and resolves the given pin names.
// Right after boot the gpio device may not be ready yet, so this retries for a while.
func OpenPeriph(names ...string) (*Periph, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = time.Second * 5
	bo.MaxElapsedTime = openTimeout

	p := &Periph{pins: map[string]gpio.PinIO{}}
	if err := backoff.RetryNotify(func() error {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("could not init host: %w", err)
		}
		for _, name := range names {
			pin := gpioreg.ByName(name)
			if pin == nil {
				return backoff.Permanent(fmt.Errorf("unknown pin %q", name))
			}
			p.pins[name] = pin
		}
		return nil
	}, bo, func(err error, _ time.Duration) {
		log.Warn("could not open pins", "err", err)
	}); err != nil {
		return nil, err
	}
	log.Debug("pins opened", "pins", names)
	return p, nil
}

func (p *Periph) pin(name string) (gpio.PinIO, error) {
	pin, ok := p.pins[name]
	if !ok {
		return nil, fmt.Errorf("pin %q was not opened", name)
	}
	return pin, nil
}

func (p *Periph) Configure(name string, d Direction) error {
	pin, err := p.pin(name)
	if err != nil {
		return err
	}
	switch d {
	case DirectionOutput:
		err = pin.Out(gpio.Low)
	default:
		err = pin.In(gpio.Float, gpio.NoEdge)
	}
	if err != nil {
		return fmt.Errorf("could not set %s as %s: %w", name, d, err)
	}
	return nil
}

func (p *Periph) Write(name string, l Level) error {
	pin, err := p.pin(name)
	if err != nil {
		return err
	}
	if err := pin.Out(gpio.Level(l)); err != nil {
		return fmt.Errorf("could not set %s %s: %w", name, l, err)
	}
	return nil
}

func (p *Periph) PWM(name string, frequencyHz, dutyCyclePercent int, duration time.Duration) error {
	pin, err := p.pin(name)
	if err != nil {
		return err
	}
	duty := gpio.DutyMax * gpio.Duty(dutyCyclePercent) / 100
	freq := physic.Frequency(frequencyHz) * physic.Hertz
	if err := pin.PWM(duty, freq); err != nil {
		return fmt.Errorf("could not start pwm on %s: %w", name, err)
	}
	time.Sleep(duration)
	if err := pin.Halt(); err != nil {
		return fmt.Errorf("could not stop pwm on %s: %w", name, err)
	}
	// halting leaves the pin driving whatever level it stopped at.
	if err := pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("could not set %s low: %w", name, err)
	}
	return nil
}
