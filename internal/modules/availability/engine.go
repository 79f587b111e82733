package availability

import (
	"fmt"
	"time"

	"clinicbook/internal/domain"
)

const DateLayout = "2006-01-02"

// Engine computes bookable slots. It holds no state beyond its
// configuration and is safe for concurrent use.
type Engine struct {
	schedule *Schedule
	loc      *time.Location
}

func NewEngine(schedule *Schedule, loc *time.Location) *Engine {
	if schedule == nil {
		schedule = DefaultSchedule()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{schedule: schedule, loc: loc}
}

func (e *Engine) Location() *time.Location { return e.loc }

func (e *Engine) Schedule() *Schedule { return e.schedule }

// ParseDay parses a "YYYY-MM-DD" calendar date in the engine's location.
func (e *Engine) ParseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, s, e.loc)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Fields: map[string]string{
			"date": fmt.Sprintf("must be %s", DateLayout),
		}}
	}
	return day, nil
}

// DayBounds returns [start, end) of the calendar day containing t.
func (e *Engine) DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(e.loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc)
	return start, start.AddDate(0, 0, 1)
}

// ComputeAvailableSlots returns the master-list slots of day that are still
// bookable. booked holds the instants of the venue's bookings on day.
// Slots already gone by are dropped only when day is the current day.
func (e *Engine) ComputeAvailableSlots(venue *domain.Venue, day time.Time, booked []time.Time, now time.Time) []Slot {
	out := []Slot{}
	if venue == nil || venue.MaxClientsPerSlot <= 0 {
		return out
	}

	day, _ = e.DayBounds(day)
	now = now.In(e.loc)
	today := sameDay(day, now)
	taken := e.countBySlot(booked)

	for _, slot := range e.schedule.slots {
		if today && slot.On(day).Before(now) {
			continue
		}
		if taken[slot.minuteOfDay()] >= venue.MaxClientsPerSlot {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// CheckSlot validates a requested booking instant at write time: it must sit
// exactly on a master slot, not be in the past, and have free capacity.
func (e *Engine) CheckSlot(venue *domain.Venue, at time.Time, booked []time.Time, now time.Time) error {
	if venue == nil || venue.MaxClientsPerSlot <= 0 {
		return domain.ErrSlotUnavailable
	}

	local := at.In(e.loc)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return fmt.Errorf("%s is not on the schedule: %w", local.Format(time.RFC3339), domain.ErrSlotUnavailable)
	}
	slot, ok := e.schedule.Lookup(local.Hour(), local.Minute())
	if !ok {
		return fmt.Errorf("%s is not on the schedule: %w", local.Format(time.RFC3339), domain.ErrSlotUnavailable)
	}
	if at.Before(now) {
		return fmt.Errorf("%s is in the past: %w", local.Format(time.RFC3339), domain.ErrSlotUnavailable)
	}
	if e.countBySlot(booked)[slot.minuteOfDay()] >= venue.MaxClientsPerSlot {
		return fmt.Errorf("slot %s is full: %w", slot, domain.ErrSlotUnavailable)
	}
	return nil
}

func (e *Engine) countBySlot(booked []time.Time) map[int]int {
	taken := make(map[int]int, len(booked))
	for _, b := range booked {
		local := b.In(e.loc)
		taken[local.Hour()*60+local.Minute()]++
	}
	return taken
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Strings renders slots as "HH:MM".
func Strings(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
