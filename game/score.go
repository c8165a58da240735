package game

// Score tracks the current run and the best run of this process
type Score struct {
	Current int
	High    int
}

// Increment adds a kill and reports whether the high score moved
func (s *Score) Increment() bool {
	s.Current++
	if s.Current > s.High {
		s.High = s.Current
		return true
	}
	return false
}

// ResetCurrent zeroes the current run; the high score is kept
func (s *Score) ResetCurrent() {
	s.Current = 0
}
