package main

import (
	"net/http"

	"github.com/brutella/hap"
	gadget "github.com/caarlos0/yoda-gadget"
)

type Enqueuer = func(events ...gadget.Event) error

// switchHandler handles writes to the prop power switch: turning it on behaves
// like the wake word, turning it off cuts the power window short.
func switchHandler(enqueue Enqueuer) func(value interface{}, _ *http.Request) (response interface{}, code int) {
	return func(value interface{}, _ *http.Request) (response interface{}, code int) {
		ev := gadget.Event{Kind: gadget.EventShutoff, Source: "homekit"}
		if value.(bool) {
			ev.Kind = gadget.EventWakewordActive
		}
		log.Info("switch toggled", "event", ev.Kind)
		if err := enqueue(ev); err != nil {
			droppedCounter.Inc()
			log.Error("could not toggle the gadget", "err", err)
			return nil, hap.JsonStatusResourceBusy
		}
		return nil, hap.JsonStatusSuccess
	}
}
