package gadget

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	namespaceStateListener = "Alexa.Gadget.StateListener"
	namespaceSpeechData    = "Alexa.Gadget.SpeechData"

	nameStateUpdate = "StateUpdate"
	nameSpeechmarks = "Speechmarks"

	stateWakeword = "wakeword"
)

var ErrUnsupportedDirective = errors.New("unsupported directive")

type Header struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

type Directive struct {
	Header  Header          `json:"header"`
	Payload json.RawMessage `json:"payload"`
}

type stateUpdate struct {
	States []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"states"`
}

// ParseDirective decodes a gadget directive, either bare or wrapped in a
// {"directive": ...} envelope, into the events it carries.
func ParseDirective(b []byte) ([]Event, error) {
	var envelope struct {
		Directive *Directive `json:"directive"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, fmt.Errorf("could not decode directive: %w", err)
	}
	if envelope.Directive != nil {
		return envelope.Directive.Events()
	}

	var d Directive
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("could not decode directive: %w", err)
	}
	return d.Events()
}

func (d Directive) Events() ([]Event, error) {
	source := d.Header.Namespace + "." + d.Header.Name
	switch {
	case d.Header.Namespace == namespaceSpeechData && d.Header.Name == nameSpeechmarks:
		return []Event{{Kind: EventSpeechMark, Source: source}}, nil
	case d.Header.Namespace == namespaceStateListener && d.Header.Name == nameStateUpdate:
		var update stateUpdate
		if len(d.Payload) > 0 {
			if err := json.Unmarshal(d.Payload, &update); err != nil {
				return nil, fmt.Errorf("could not decode state update: %w", err)
			}
		}
		var events []Event
		for _, state := range update.States {
			if state.Name != stateWakeword {
				continue
			}
			switch state.Value {
			case "active":
				events = append(events, Event{Kind: EventWakewordActive, Source: source})
			case "cleared":
				events = append(events, Event{Kind: EventWakewordCleared, Source: source})
			default:
				log.Debug("unknown wakeword state", "value", state.Value)
			}
		}
		return events, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDirective, source)
	}
}
