package models

import "fmt"

// Duration is a length of time in whole seconds. Values are never negative;
// user inputs are sanitized before they reach this package.
type Duration int

// DurationFromSeconds wraps a second count as a Duration.
func DurationFromSeconds(n int) Duration {
	return Duration(n)
}

// Seconds returns the total second count.
func (d Duration) Seconds() int {
	return int(d)
}

// Add returns the sum of two durations.
func (d Duration) Add(other Duration) Duration {
	return d + other
}

// Clock is a duration split into wall-clock components.
type Clock struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Clock decomposes the duration into hours, minutes, and seconds.
func (d Duration) Clock() Clock {
	s := int(d)
	return Clock{
		Hours:   s / 3600,
		Minutes: (s % 3600) / 60,
		Seconds: s % 60,
	}
}

// String formats the duration as M:SS, or H:MM:SS once it reaches an hour.
func (d Duration) String() string {
	c := d.Clock()
	if c.Hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
	}
	return fmt.Sprintf("%d:%02d", c.Minutes, c.Seconds)
}
