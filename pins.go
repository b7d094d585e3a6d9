package gadget

import "time"

// Direction is the mode of a pin.
type Direction uint8

const (
	DirectionInput Direction = iota
	DirectionOutput
)

func (d Direction) String() string {
	switch d {
	case DirectionOutput:
		return "out"
	default:
		return "in"
	}
}

// Level is the logic level written to an output pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Driver is the raw pin primitive.
// PWM blocks for the given duration and leaves the pin configured as output.
type Driver interface {
	Configure(pin string, d Direction) error
	Write(pin string, l Level) error
	PWM(pin string, frequencyHz, dutyCyclePercent int, duration time.Duration) error
}

// Lines names the three pins the gadget is wired to.
type Lines struct {
	Power  string // on/off relay, high powers the prop electronics
	Ground string // shorts the capacitive sensor to ground when high
	Sensor string // capacitive sensor drive, floating input when idle
}

// All returns the pin names in power, ground, sensor order.
func (l Lines) All() []string {
	return []string{l.Power, l.Ground, l.Sensor}
}
