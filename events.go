package gadget

// EventKind is what happened on the assistant side.
type EventKind uint8

const (
	EventWakewordActive EventKind = iota + 1
	EventWakewordCleared
	EventSpeechMark
	EventShutoff
)

func (k EventKind) String() string {
	switch k {
	case EventWakewordActive:
		return "wakeword-active"
	case EventWakewordCleared:
		return "wakeword-cleared"
	case EventSpeechMark:
		return "speech-mark"
	case EventShutoff:
		return "shutoff"
	default:
		return "unknown"
	}
}

// Event is one notification to dispatch, Source is only used for logging.
type Event struct {
	Kind   EventKind
	Source string
}
