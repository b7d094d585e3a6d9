package main

import (
	"testing"

	"github.com/caarlos0/env/v11"
	gadget "github.com/caarlos0/yoda-gadget"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		Environment: map[string]string{},
	})
	require.NoError(t, err)
	require.NoError(t, cfg.validate())
	require.Equal(t, gadget.Lines{
		Power:  "GPIO15",
		Ground: "GPIO14",
		Sensor: "GPIO18",
	}, cfg.lines())
	require.Equal(t, ":9010", cfg.Address)
	require.Equal(t, 16, cfg.QueueSize)
	require.False(t, cfg.Debug)
}

func TestConfigFromEnv(t *testing.T) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		Environment: map[string]string{
			"POWER_PIN":      "GPIO5",
			"GROUND_PIN":     "GPIO6",
			"SENSOR_PIN":     "GPIO12",
			"ASSISTANT_HOST": "192.168.1.20",
			"QUEUE_SIZE":     "4",
			"DEBUG":          "true",
		},
	})
	require.NoError(t, err)
	require.NoError(t, cfg.validate())
	require.Equal(t, "GPIO12", cfg.lines().Sensor)
	require.Equal(t, "192.168.1.20", cfg.AssistantHost)
	require.Equal(t, 4, cfg.QueueSize)
	require.True(t, cfg.Debug)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		PowerPin:   "GPIO15",
		GroundPin:  "GPIO14",
		SensorPin:  "GPIO18",
		HomekitPin: "00102003",
		QueueSize:  1,
	}
	require.NoError(t, valid.validate())

	t.Run("duplicated pin", func(t *testing.T) {
		cfg := valid
		cfg.SensorPin = cfg.PowerPin
		require.ErrorContains(t, cfg.validate(), "pin GPIO15 is used more than once")
	})

	t.Run("empty pin", func(t *testing.T) {
		cfg := valid
		cfg.GroundPin = ""
		require.ErrorContains(t, cfg.validate(), "can't be empty")
	})

	t.Run("queue size", func(t *testing.T) {
		cfg := valid
		cfg.QueueSize = 0
		require.ErrorContains(t, cfg.validate(), "queue size")
	})

	t.Run("homekit pin", func(t *testing.T) {
		cfg := valid
		cfg.HomekitPin = "123"
		require.ErrorContains(t, cfg.validate(), "8 digits")
	})
}
