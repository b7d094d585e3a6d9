package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	gadget "github.com/caarlos0/yoda-gadget"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// homekit serves the power switch along with the directives, metrics and status
// endpoints, all on the hap server.
type homekit struct {
	cfg Config
	sw  *accessory.Switch
}

func newHomekit(cfg Config, serial string) *homekit {
	return &homekit{
		cfg: cfg,
		sw: accessory.NewSwitch(accessory.Info{
			Name:         "Yoda",
			SerialNumber: serial,
			Manufacturer: manufacturer,
			Model:        "Animatronic Yoda",
			Firmware:     version,
		}),
	}
}

func (h *homekit) PowerChanged(on bool) {
	h.sw.Switch.On.SetValue(on)
}

func (h *homekit) Serve(ctx context.Context, g *gadget.Gadget, d *gadget.Dispatcher) error {
	h.sw.Switch.On.SetValueRequestFunc = switchHandler(d.Enqueue)

	server, err := hap.NewServer(hap.NewFsStore(h.cfg.DBPath), h.sw.A)
	if err != nil {
		return err
	}
	server.Addr = h.cfg.Address
	server.Pin = h.cfg.HomekitPin
	server.ServeMux().Handle("/metrics", promhttp.Handler())
	server.ServeMux().Handle("/directives", directivesHandler(d.Enqueue))
	server.ServeMux().Handle("/", statusHandler(g, h.cfg.lines()))

	log.Info("starting server", "addr", server.Addr)
	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
