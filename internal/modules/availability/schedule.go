package availability

import (
	"fmt"
	"time"
)

// Slot is a time of day on the master schedule.
type Slot struct {
	Hour   int
	Minute int
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

func (s Slot) minuteOfDay() int {
	return s.Hour*60 + s.Minute
}

// On places the slot on the calendar day of day, in day's location.
func (s Slot) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, day.Location())
}

// Schedule is the deployment-wide master list of candidate slots.
type Schedule struct {
	slots []Slot
}

// NewSchedule builds the slots from open to close inclusive, step apart.
// open and close are "HH:MM".
func NewSchedule(open, close string, step time.Duration) (*Schedule, error) {
	if step < time.Minute || step%time.Minute != 0 {
		return nil, fmt.Errorf("slot step must be a positive whole number of minutes, got %s", step)
	}
	openT, err := time.Parse("15:04", open)
	if err != nil {
		return nil, fmt.Errorf("parse open %q: %w", open, err)
	}
	closeT, err := time.Parse("15:04", close)
	if err != nil {
		return nil, fmt.Errorf("parse close %q: %w", close, err)
	}
	if closeT.Before(openT) {
		return nil, fmt.Errorf("close %s is before open %s", close, open)
	}

	var slots []Slot
	for t := openT; !t.After(closeT); t = t.Add(step) {
		slots = append(slots, Slot{Hour: t.Hour(), Minute: t.Minute()})
	}
	return &Schedule{slots: slots}, nil
}

// DefaultSchedule is 08:00 through 18:00 every 30 minutes.
func DefaultSchedule() *Schedule {
	s, _ := NewSchedule("08:00", "18:00", 30*time.Minute)
	return s
}

// Slots returns a copy of the master list in chronological order.
func (s *Schedule) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Lookup reports whether hour:minute is on the master list.
func (s *Schedule) Lookup(hour, minute int) (Slot, bool) {
	for _, slot := range s.slots {
		if slot.Hour == hour && slot.Minute == minute {
			return slot, true
		}
	}
	return Slot{}, false
}
