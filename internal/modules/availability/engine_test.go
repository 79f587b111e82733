package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/internal/domain"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestNewSchedule(t *testing.T) {
	s, err := NewSchedule("08:00", "18:00", 30*time.Minute)
	require.NoError(t, err)
	slots := Strings(s.Slots())
	assert.Len(t, slots, 21)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "08:30", slots[1])
	assert.Equal(t, "18:00", slots[20])

	_, err = NewSchedule("18:00", "08:00", 30*time.Minute)
	assert.Error(t, err)
	_, err = NewSchedule("8am", "18:00", 30*time.Minute)
	assert.Error(t, err)
	_, err = NewSchedule("08:00", "18:00", 90*time.Second)
	assert.Error(t, err)
}

func TestComputeAvailableSlots_Capacity(t *testing.T) {
	loc := saoPaulo(t)
	e := NewEngine(DefaultSchedule(), loc)
	day := time.Date(2030, 5, 10, 0, 0, 0, 0, loc)
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, loc)
	slot := time.Date(2030, 5, 10, 10, 30, 0, 0, loc)

	for _, n := range []int{1, 2, 5} {
		venue := &domain.Venue{MaxClientsPerSlot: n}

		full := make([]time.Time, n)
		for i := range full {
			full[i] = slot.UTC()
		}
		got := Strings(e.ComputeAvailableSlots(venue, day, full, now))
		assert.NotContains(t, got, "10:30", "N=%d bookings must fill the slot", n)
		assert.Len(t, got, 20)

		got = Strings(e.ComputeAvailableSlots(venue, day, full[:n-1], now))
		assert.Contains(t, got, "10:30", "N-1=%d bookings leave room", n-1)
		assert.Len(t, got, 21)
	}
}

func TestComputeAvailableSlots_PastRuleOnlyToday(t *testing.T) {
	loc := saoPaulo(t)
	e := NewEngine(DefaultSchedule(), loc)
	venue := &domain.Venue{MaxClientsPerSlot: 1}
	now := time.Date(2030, 5, 10, 12, 15, 0, 0, loc)

	today := Strings(e.ComputeAvailableSlots(venue, now, nil, now))
	assert.Equal(t, "12:30", today[0])
	assert.NotContains(t, today, "12:00")
	assert.Equal(t, "18:00", today[len(today)-1])

	tomorrow := time.Date(2030, 5, 11, 0, 0, 0, 0, loc)
	assert.Len(t, e.ComputeAvailableSlots(venue, tomorrow, nil, now), 21)

	// A slot exactly at now is not strictly in the past.
	atSlot := time.Date(2030, 5, 10, 12, 0, 0, 0, loc)
	assert.Equal(t, "12:00", e.ComputeAvailableSlots(venue, now, nil, atSlot)[0].String())

	late := time.Date(2030, 5, 10, 19, 0, 0, 0, loc)
	assert.Empty(t, e.ComputeAvailableSlots(venue, now, nil, late))
}

func TestComputeAvailableSlots_NoCapacity(t *testing.T) {
	e := NewEngine(nil, time.UTC)
	day := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	now := day.AddDate(0, 0, -1)

	assert.Empty(t, e.ComputeAvailableSlots(&domain.Venue{MaxClientsPerSlot: 0}, day, nil, now))
	assert.Empty(t, e.ComputeAvailableSlots(&domain.Venue{MaxClientsPerSlot: -3}, day, nil, now))
	assert.Empty(t, e.ComputeAvailableSlots(nil, day, nil, now))
}

func TestComputeAvailableSlots_Pure(t *testing.T) {
	e := NewEngine(nil, time.UTC)
	venue := &domain.Venue{MaxClientsPerSlot: 1}
	day := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	now := day.AddDate(0, 0, -1)
	booked := []time.Time{day.Add(9 * time.Hour)}

	first := e.ComputeAvailableSlots(venue, day, booked, now)
	second := e.ComputeAvailableSlots(venue, day, booked, now)
	assert.Equal(t, first, second)
	assert.Len(t, e.ComputeAvailableSlots(venue, day, nil, now), 21)
}

func TestCheckSlot(t *testing.T) {
	loc := saoPaulo(t)
	e := NewEngine(DefaultSchedule(), loc)
	venue := &domain.Venue{MaxClientsPerSlot: 2}
	now := time.Date(2030, 5, 10, 9, 0, 0, 0, loc)
	at := time.Date(2030, 5, 10, 14, 0, 0, 0, loc)

	assert.NoError(t, e.CheckSlot(venue, at, []time.Time{at}, now))
	assert.ErrorIs(t, e.CheckSlot(venue, at, []time.Time{at, at}, now), domain.ErrSlotUnavailable)
	assert.ErrorIs(t, e.CheckSlot(venue, at.Add(10*time.Minute), nil, now), domain.ErrSlotUnavailable)
	assert.ErrorIs(t, e.CheckSlot(venue, at.Add(time.Second), nil, now), domain.ErrSlotUnavailable)
	assert.ErrorIs(t, e.CheckSlot(venue, time.Date(2030, 5, 10, 8, 30, 0, 0, loc), nil, now), domain.ErrSlotUnavailable)
	assert.ErrorIs(t, e.CheckSlot(venue, time.Date(2030, 5, 10, 19, 0, 0, 0, loc), nil, now), domain.ErrSlotUnavailable)
	assert.ErrorIs(t, e.CheckSlot(&domain.Venue{}, at, nil, now), domain.ErrSlotUnavailable)

	// The same instant expressed in UTC is still the 14:00 local slot.
	assert.NoError(t, e.CheckSlot(venue, at.UTC(), nil, now))
}

func TestParseDayAndBounds(t *testing.T) {
	loc := saoPaulo(t)
	e := NewEngine(nil, loc)

	day, err := e.ParseDay("2030-05-10")
	require.NoError(t, err)
	from, to := e.DayBounds(day)
	assert.Equal(t, time.Date(2030, 5, 10, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2030, 5, 11, 0, 0, 0, 0, loc), to)

	_, err = e.ParseDay("10/05/2030")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
