package tetris

import (
	"testing"
	"time"
)

func TestInterval(t *testing.T) {
	tests := []struct {
		score int
		want  time.Duration
	}{
		{0, time.Second},
		{1, 980 * time.Millisecond},
		{10, 800 * time.Millisecond},
		{25, 500 * time.Millisecond},
		{49, 20 * time.Millisecond},
		{50, 20 * time.Millisecond},
		{1000, 20 * time.Millisecond},
	}

	for _, tc := range tests {
		if got := Interval(tc.score); got != tc.want {
			t.Errorf("Interval(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestIntervalMonotonic(t *testing.T) {
	prev := Interval(0)
	for score := 1; score <= 200; score++ {
		got := Interval(score)
		if got > prev {
			t.Fatalf("Interval(%d) = %v exceeds Interval(%d) = %v", score, got, score-1, prev)
		}
		if got < 20*time.Millisecond {
			t.Fatalf("Interval(%d) = %v below floor", score, got)
		}
		prev = got
	}
}

func TestSpeedCustomCurve(t *testing.T) {
	s := Speed{Base: 500 * time.Millisecond, Step: 100 * time.Millisecond, Floor: 150 * time.Millisecond}
	if got := s.Interval(0); got != 500*time.Millisecond {
		t.Errorf("Interval(0) = %v, want 500ms", got)
	}
	if got := s.Interval(3); got != 200*time.Millisecond {
		t.Errorf("Interval(3) = %v, want 200ms", got)
	}
	if got := s.Interval(4); got != 150*time.Millisecond {
		t.Errorf("Interval(4) = %v, want floor 150ms", got)
	}
	if got := s.Interval(-5); got != 500*time.Millisecond {
		t.Errorf("Interval(-5) = %v, want base", got)
	}
}
