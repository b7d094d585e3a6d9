package gadget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHardwareInit(t *testing.T) {
	drv := newFakeDriver()
	drv.levels["power"] = High
	drv.levels["ground"] = High
	drv.dirs["sensor"] = DirectionOutput

	hw := NewHardware(drv, testLines)
	require.NoError(t, hw.Init())

	require.Equal(t, Low, drv.Level("power"))
	require.Equal(t, Low, drv.Level("ground"))
	require.Equal(t, DirectionOutput, drv.Direction("power"))
	require.Equal(t, DirectionOutput, drv.Direction("ground"))
	require.Equal(t, DirectionInput, drv.Direction("sensor"))
	require.Zero(t, drv.Count("pwm"))
}

func TestHardwareInitFails(t *testing.T) {
	drv := newFakeDriver()
	drv.failOn = "write ground"
	hw := NewHardware(drv, testLines)
	require.ErrorContains(t, hw.Init(), "could not init hardware")
}

func TestHardwareShutdown(t *testing.T) {
	t.Run("releases everything", func(t *testing.T) {
		drv := newFakeDriver()
		hw := NewHardware(drv, testLines)
		require.NoError(t, hw.Init())
		require.NoError(t, drv.Write("power", High))
		require.NoError(t, drv.Write("ground", High))

		require.NoError(t, hw.Shutdown())
		require.Equal(t, Low, drv.Level("power"))
		require.Equal(t, Low, drv.Level("ground"))
		for _, pin := range testLines.All() {
			require.Equal(t, DirectionInput, drv.Direction(pin), pin)
		}
	})

	t.Run("keeps going on errors", func(t *testing.T) {
		drv := newFakeDriver()
		drv.failOn = "write power"
		hw := NewHardware(drv, testLines)

		err := hw.Shutdown()
		require.ErrorContains(t, err, "could not release hardware")
		require.Equal(t, 1, drv.Count("write ground low"))
		require.Equal(t, 3, drv.Count("configure"))
	})
}
