package tetris

import "time"

// Speed maps a score to the gravity interval: Base minus Step per point,
// never below Floor.
type Speed struct {
	Base  time.Duration
	Step  time.Duration
	Floor time.Duration
}

// DefaultSpeed is 1s at score 0, 20ms faster per cleared line, floored at 20ms.
func DefaultSpeed() Speed {
	return Speed{
		Base:  time.Second,
		Step:  20 * time.Millisecond,
		Floor: 20 * time.Millisecond,
	}
}

// Interval returns the tick interval for score.
func (s Speed) Interval(score int) time.Duration {
	if score < 0 {
		score = 0
	}
	d := s.Base - time.Duration(score)*s.Step
	if d < s.Floor {
		return s.Floor
	}
	return d
}

// Interval is the default speed curve: max(1s - score*20ms, 20ms).
func Interval(score int) time.Duration {
	return DefaultSpeed().Interval(score)
}
