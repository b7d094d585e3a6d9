package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	gadget "github.com/caarlos0/yoda-gadget"
	logp "github.com/charmbracelet/log"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "yoda",
})

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const manufacturer = "Hasbro"

func main() {
	log.Info(
		"yoda-gadget",
		"version", version,
		"commit", commit,
		"date", date,
		"info", strings.Join([]string{
			"Voice assistant gadget for an animatronic Yoda",
			"© Carlos Alexandro Becker",
			"https://becker.software",
		}, "\n"),
	)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(
			"could not parse env",
			"err",
			strings.TrimPrefix(strings.ReplaceAll(err.Error(), "; ", "\n"), "env: ")+"\n",
		)
	}
	if err := cfg.validate(); err != nil {
		log.Fatal("invalid config", "err", err)
	}
	if cfg.Debug {
		log.SetLevel(logp.DebugLevel)
		gadget.SetLogLevel(logp.DebugLevel)
	}

	lines := cfg.lines()
	log.Info("opening pins", "power", lines.Power, "ground", lines.Ground, "sensor", lines.Sensor)
	driver, err := gadget.OpenPeriph(lines.All()...)
	if err != nil {
		log.Fatal("could not open pins", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	front := newHomekit(cfg, assistantSerial(cfg.AssistantHost))
	if err := run(ctx, gadget.NewHardware(driver, lines), cfg.QueueSize, front); err != nil {
		log.Error("gadget failed", "err", err)
		cancel()
		os.Exit(1)
	}
}

func assistantSerial(host string) string {
	if host == "" {
		return "unknown"
	}
	mac, err := gadget.AssistantMAC(host)
	if err != nil {
		log.Warn(
			"could not get the assistant mac address, needs 'cap_net_raw+ep' capabilities",
			"err", err,
		)
		return "unknown"
	}
	log.Info("found voice assistant", "host", host, "mac", mac)
	return mac
}

// frontend is where events come from.
type frontend interface {
	// Serve accepts events into d until ctx is done.
	Serve(ctx context.Context, g *gadget.Gadget, d *gadget.Dispatcher) error
	// PowerChanged is called with the gadget lock held.
	PowerChanged(on bool)
}

// run owns hw: it initializes it before front can send any event, and releases
// it on every way out, panics included.
func run(ctx context.Context, hw *gadget.Hardware, queueSize int, front frontend) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(err, fmt.Errorf("panic: %v", r))
		}
		if serr := hw.Shutdown(); serr != nil {
			err = errors.Join(err, serr)
			return
		}
		log.Info("hardware released")
	}()

	if err := hw.Init(); err != nil {
		return err
	}

	g := gadget.New(hw, hooks(front.PowerChanged))
	// powers off and stops the deadline timer before the lines are released.
	defer func() {
		if perr := g.PowerOff(); perr != nil {
			err = errors.Join(err, perr)
		}
	}()

	dispatcher := gadget.NewDispatcher(g, queueSize)
	dispatcher.OnEvent = func(ev gadget.Event) {
		eventCounter.WithLabelValues(ev.Kind.String()).Inc()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		defer close(serveErr)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				serveErr <- fmt.Errorf("panic in server: %v", r)
			}
		}()
		if err := front.Serve(ctx, g, dispatcher); err != nil {
			serveErr <- err
		}
	}()

	err = dispatcher.Run(ctx)
	cancel()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if serr := <-serveErr; serr != nil {
		err = errors.Join(err, serr)
	}
	log.Info("stopping")
	return err
}
