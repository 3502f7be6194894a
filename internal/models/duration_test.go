package models

import "testing"

// TestDurationClock verifies the hours/minutes/seconds decomposition.
func TestDurationClock(t *testing.T) {
	cases := []struct {
		secs    int
		h, m, s int
	}{
		{0, 0, 0, 0},
		{59, 0, 0, 59},
		{60, 0, 1, 0},
		{61, 0, 1, 1},
		{3599, 0, 59, 59},
		{3600, 1, 0, 0},
		{7325, 2, 2, 5},
	}
	for _, tc := range cases {
		c := DurationFromSeconds(tc.secs).Clock()
		if c.Hours != tc.h || c.Minutes != tc.m || c.Seconds != tc.s {
			t.Errorf("Clock(%d) = %d:%d:%d, want %d:%d:%d",
				tc.secs, c.Hours, c.Minutes, c.Seconds, tc.h, tc.m, tc.s)
		}
	}
}

// TestDurationAdd verifies addition is plain integer addition on seconds.
func TestDurationAdd(t *testing.T) {
	a := DurationFromSeconds(90)
	b := DurationFromSeconds(30)
	if got := a.Add(b).Seconds(); got != 120 {
		t.Errorf("Add = %d, want 120", got)
	}
	if a.Add(b) != b.Add(a) {
		t.Error("Add is not commutative")
	}
}

// TestDurationString verifies display formatting with and without hours.
func TestDurationString(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
		{3661, "1:01:01"},
	}
	for _, tc := range cases {
		if got := DurationFromSeconds(tc.secs).String(); got != tc.want {
			t.Errorf("String(%d) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}
