package gadget

// Session tracks whether the assistant is in a speaking turn.
// It is not safe for concurrent use, Gadget guards it.
type Session struct {
	talking bool
}

// begin marks the start of a turn, returning false if one is already going.
func (s *Session) begin() bool {
	if s.talking {
		return false
	}
	s.talking = true
	return true
}

func (s *Session) reset() {
	s.talking = false
}

func (s *Session) Talking() bool {
	return s.talking
}
