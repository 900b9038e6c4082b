package model

// StreakState counts consecutive days with at least one qualifying task
// completion. LastActive is zero when no completion ever qualified.
type StreakState struct {
	Count      int
	LastActive Date
}

var milestoneLadder = []int{3, 7, 14, 30, 50, 100}

// NextMilestone returns the smallest ladder value strictly greater than the
// current count. Past the top of the ladder it keeps moving in steps of ten.
func (s StreakState) NextMilestone() int {
	for _, m := range milestoneLadder {
		if m > s.Count {
			return m
		}
	}
	return s.Count + 10
}

// Progress is the fraction of the way to the next milestone, in [0, 1].
func (s StreakState) Progress() float64 {
	next := s.NextMilestone()
	if next <= 0 {
		return 0
	}
	p := float64(s.Count) / float64(next)
	if p > 1 {
		return 1
	}
	return p
}
