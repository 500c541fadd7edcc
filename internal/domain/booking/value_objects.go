package booking

import "errors"

var ErrInvalidSlot = errors.New("slot start must be before slot end")

// Slot is the half-open interval [start, end) a booking occupies on a table
// for a single date. Units are whatever the venue counts in (minutes, half-hour
// steps); the service only compares them.
type Slot struct {
	start int
	end   int
}

func NewSlot(start, end int) (Slot, error) {
	if start >= end {
		return Slot{}, ErrInvalidSlot
	}
	return Slot{start: start, end: end}, nil
}

func (s Slot) Start() int {
	return s.start
}

func (s Slot) End() int {
	return s.end
}

// Overlaps reports whether two half-open slots intersect. Back-to-back slots
// (s.end == other.start) do not overlap.
func (s Slot) Overlaps(other Slot) bool {
	return s.start < other.end && s.end > other.start
}
