package gadget

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrQueueFull = errors.New("event queue is full")

// Dispatcher feeds events to the gadget one at a time.
// Speech marks hold the dispatcher for the whole touch simulation (about a second);
// whatever arrives meanwhile waits in the queue.
type Dispatcher struct {
	gadget *Gadget
	mu     sync.Mutex // serializes producers so a batch is queued whole
	events chan Event
	// OnEvent is called for every event taken off the queue.
	OnEvent func(Event)
}

func NewDispatcher(g *Gadget, size int) *Dispatcher {
	if size < 1 {
		size = 1
	}
	return &Dispatcher{
		gadget: g,
		events: make(chan Event, size),
	}
}

// Enqueue queues all events or none of them. It never blocks, it fails with
// ErrQueueFull instead.
func (d *Dispatcher) Enqueue(events ...Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	// only Run takes events out, so the free space can only grow until we are done.
	if free := cap(d.events) - len(d.events); len(events) > free {
		return fmt.Errorf("could not enqueue %d events, %d free: %w", len(events), free, ErrQueueFull)
	}
	for _, ev := range events {
		d.events <- ev
	}
	return nil
}

// Run dispatches events until ctx is done or a hardware error happens.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-d.gadget.Fatal():
			return err
		case ev := <-d.events:
			if err := d.Dispatch(ev); err != nil {
				return err
			}
		}
	}
}

// Dispatch handles a single event synchronously.
func (d *Dispatcher) Dispatch(ev Event) error {
	log.Debug("event", "kind", ev.Kind, "source", ev.Source)
	if d.OnEvent != nil {
		d.OnEvent(ev)
	}
	var err error
	switch ev.Kind {
	case EventWakewordActive:
		err = d.gadget.Activate()
	case EventWakewordCleared:
		d.gadget.WakewordCleared()
	case EventSpeechMark:
		err = d.gadget.SpeechMark()
	case EventShutoff:
		err = d.gadget.PowerOff()
	default:
		log.Warn("unknown event", "kind", ev.Kind, "source", ev.Source)
	}
	if err != nil {
		return fmt.Errorf("could not handle %s: %w", ev.Kind, err)
	}
	return nil
}
