package planner

import "github.com/jonboulle/clockwork"

// clock stamps reports. Tests freeze it with SetClock for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for reports. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
