package gadget

import (
	"fmt"
	"time"
)

// The sensor only reliably sees a "touch" with two bursts of this waveform.
const (
	pulseFrequencyHz = 25
	pulseDutyCycle   = 50
	pulseDuration    = 500 * time.Millisecond
	pulseCount       = 2
)

// Trigger simulates a finger touch on the capacitive sensor.
type Trigger struct {
	hw *Hardware
}

// NewTrigger returns a trigger driving hw's sensor and ground lines.
func NewTrigger(hw *Hardware) *Trigger {
	return &Trigger{hw: hw}
}

// Fire drives the touch waveform and then shorts the sensor to ground so the next
// touch reads from a clean baseline. Blocks for about a second.
func (t *Trigger) Fire() error {
	sensor := t.hw.lines.Sensor

	// the sensor can't see the pulses while it is grounded.
	if err := t.hw.setGround(Low); err != nil {
		return fmt.Errorf("could not release ground: %w", err)
	}

	if err := t.hw.driver.Configure(sensor, DirectionOutput); err != nil {
		return fmt.Errorf("could not trigger: %w", err)
	}
	for i := 0; i < pulseCount; i++ {
		log.Debug("pulse", "n", i+1, "hz", pulseFrequencyHz, "duty", pulseDutyCycle)
		if err := t.hw.driver.PWM(sensor, pulseFrequencyHz, pulseDutyCycle, pulseDuration); err != nil {
			return fmt.Errorf("could not trigger: %w", err)
		}
	}
	if err := t.hw.driver.Configure(sensor, DirectionInput); err != nil {
		return fmt.Errorf("could not float sensor: %w", err)
	}

	if err := t.hw.setGround(High); err != nil {
		return fmt.Errorf("could not ground sensor: %w", err)
	}
	return nil
}
