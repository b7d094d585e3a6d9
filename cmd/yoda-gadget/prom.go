package main

import (
	gadget "github.com/caarlos0/yoda-gadget"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var powerGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "yoda_gadget",
	Subsystem: "power",
	Name:      "on",
	Help:      "Whether the prop is powered",
})

var activationCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "yoda_gadget",
	Subsystem: "power",
	Name:      "activations_total",
	Help:      "",
})

var triggerCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "yoda_gadget",
	Subsystem: "sensor",
	Name:      "triggers_total",
	Help:      "Simulated touches",
})

var suppressedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "yoda_gadget",
	Subsystem: "sensor",
	Name:      "suppressed_total",
	Help:      "Speech marks after the turn already triggered",
})

var ignoredCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "yoda_gadget",
	Subsystem: "sensor",
	Name:      "ignored_total",
	Help:      "Speech marks while powered off",
})

var eventCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "yoda_gadget",
	Subsystem: "events",
	Name:      "received_total",
	Help:      "",
}, []string{"kind"})

var droppedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "yoda_gadget",
	Subsystem: "events",
	Name:      "dropped_total",
	Help:      "Events dropped because the queue was full",
})

func hooks(onPower func(bool)) gadget.Hooks {
	return gadget.Hooks{
		OnPower: func(on bool) {
			powerGauge.Set(boolAs[float64](on))
			if on {
				activationCounter.Inc()
			}
			if onPower != nil {
				onPower(on)
			}
		},
		OnTrigger:    triggerCounter.Inc,
		OnSuppressed: suppressedCounter.Inc,
		OnIgnored:    ignoredCounter.Inc,
	}
}

func boolAs[T int | float64](b bool) T {
	if b {
		return 1
	}
	return 0
}
