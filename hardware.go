package gadget

import (
	"errors"
	"fmt"
)

// Hardware is the process-wide hardware context: the pin driver and the three lines.
// Build it once, Init before accepting events and Shutdown on every exit path.
type Hardware struct {
	driver Driver
	lines  Lines
}

// NewHardware wraps driver, it doesn't touch any pin until Init.
func NewHardware(driver Driver, lines Lines) *Hardware {
	return &Hardware{
		driver: driver,
		lines:  lines,
	}
}

// Lines returns the pins the hardware was built with.
func (h *Hardware) Lines() Lines {
	return h.lines
}

// Init puts every line into its safe idle state.
func (h *Hardware) Init() error {
	log.Debug("init hardware", "power", h.lines.Power, "ground", h.lines.Ground, "sensor", h.lines.Sensor)
	for _, pin := range []string{h.lines.Power, h.lines.Ground} {
		if err := h.driver.Configure(pin, DirectionOutput); err != nil {
			return fmt.Errorf("could not init hardware: %w", err)
		}
		if err := h.driver.Write(pin, Low); err != nil {
			return fmt.Errorf("could not init hardware: %w", err)
		}
	}
	if err := h.driver.Configure(h.lines.Sensor, DirectionInput); err != nil {
		return fmt.Errorf("could not init hardware: %w", err)
	}
	return nil
}

// Shutdown releases all lines, trying every step even if some fail.
func (h *Hardware) Shutdown() error {
	log.Debug("releasing hardware")
	var errs []error
	for _, pin := range []string{h.lines.Power, h.lines.Ground} {
		if err := h.driver.Write(pin, Low); err != nil {
			errs = append(errs, err)
		}
	}
	for _, pin := range h.lines.All() {
		if err := h.driver.Configure(pin, DirectionInput); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("could not release hardware: %w", err)
	}
	return nil
}

func (h *Hardware) setPower(l Level) error {
	return h.driver.Write(h.lines.Power, l)
}

func (h *Hardware) setGround(l Level) error {
	return h.driver.Write(h.lines.Ground, l)
}
