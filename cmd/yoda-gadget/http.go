package main

import (
	_ "embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	gadget "github.com/caarlos0/yoda-gadget"
	"github.com/caarlos0/sync/cio"
)

//go:embed index.html
var index []byte

var indexTpl = template.Must(template.New("index").Parse(string(index)))

const (
	maxDirectiveSize = 64 << 10
	readTimeout      = 5 * time.Second
)

// directivesHandler receives gadget directives forwarded by the voice assistant bridge.
func directivesHandler(enqueue Enqueuer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(io.LimitReader(cio.TimeoutReader(r.Body, readTimeout), maxDirectiveSize+1))
		if err != nil {
			log.Warn("could not read directive", "err", err)
			http.Error(w, "could not read body", http.StatusBadRequest)
			return
		}
		if len(body) > maxDirectiveSize {
			http.Error(w, "directive too large", http.StatusRequestEntityTooLarge)
			return
		}

		events, err := gadget.ParseDirective(body)
		if errors.Is(err, gadget.ErrUnsupportedDirective) {
			log.Debug("ignoring directive", "err", err)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			log.Warn("invalid directive", "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := enqueue(events...); err != nil {
			droppedCounter.Inc()
			log.Error("dropping directive", "err", err)
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	})
}

type statusPage struct {
	State    string
	Talking  bool
	Deadline string
	Lines    gadget.Lines
}

func statusHandler(g *gadget.Gadget, lines gadget.Lines) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		page := statusPage{
			State:   g.State().String(),
			Talking: g.Talking(),
			Lines:   lines,
		}
		if d := g.Deadline(); !d.IsZero() {
			page.Deadline = d.Format(time.TimeOnly)
		}
		_ = indexTpl.Execute(w, page)
	})
}
