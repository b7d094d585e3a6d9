package main

import (
	"fmt"

	gadget "github.com/caarlos0/yoda-gadget"
	"golang.org/x/exp/slices"
)

// Pin names are BCM based: GPIO15, GPIO14 and GPIO18 are board pins 10, 8 and 12.
type Config struct {
	PowerPin      string `env:"POWER_PIN"      envDefault:"GPIO15"`
	GroundPin     string `env:"GROUND_PIN"     envDefault:"GPIO14"`
	SensorPin     string `env:"SENSOR_PIN"     envDefault:"GPIO18"`
	Address       string `env:"LISTEN"         envDefault:":9010"`
	HomekitPin    string `env:"HOMEKIT_PIN"    envDefault:"00102003"`
	DBPath        string `env:"DB_PATH"        envDefault:"./db"`
	AssistantHost string `env:"ASSISTANT_HOST"`
	QueueSize     int    `env:"QUEUE_SIZE"     envDefault:"16"`
	Debug         bool   `env:"DEBUG"`
}

func (c Config) lines() gadget.Lines {
	return gadget.Lines{
		Power:  c.PowerPin,
		Ground: c.GroundPin,
		Sensor: c.SensorPin,
	}
}

func (c Config) validate() error {
	var seen []string
	for _, pin := range c.lines().All() {
		if pin == "" {
			return fmt.Errorf("pin names can't be empty")
		}
		if slices.Contains(seen, pin) {
			return fmt.Errorf("pin %s is used more than once", pin)
		}
		seen = append(seen, pin)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue size must be at least 1, got %d", c.QueueSize)
	}
	if len(c.HomekitPin) != 8 {
		return fmt.Errorf("homekit pin must have 8 digits")
	}
	return nil
}
