package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/internal/domain"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleBooking() *domain.Booking {
	at := time.Date(2030, 5, 10, 13, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         "b1",
		UserID:     "u1",
		VenueID:    "v1",
		DateTime:   at,
		TotalPrice: decimal.RequireFromString("570"),
		CreatedAt:  at.Add(-time.Hour),
		Lines: []domain.BookingLine{
			{ServiceID: "s1", Position: 0, Price: decimal.RequireFromString("120")},
			{ServiceID: "s2", Position: 1, Price: decimal.RequireFromString("450")},
		},
	}
}

func TestPublisher_PublishBookingCreated(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "clinicbook.events"}

	require.NoError(t, p.PublishBookingCreated(context.Background(), sampleBooking()))
	require.Len(t, ch.sent, 1)

	got := ch.sent[0]
	assert.Equal(t, "clinicbook.events", got.exchange)
	assert.Equal(t, TypeBookingCreated, got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)

	var ev BookingCreated
	require.NoError(t, json.Unmarshal(got.msg.Body, &ev))
	assert.Equal(t, "b1", ev.BookingID)
	assert.Equal(t, "570.00", ev.TotalPrice)
	assert.Equal(t, []string{"s1", "s2"}, ev.ServiceIDs)
	assert.True(t, ev.DateTime.Equal(time.Date(2030, 5, 10, 13, 0, 0, 0, time.UTC)))
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &Publisher{ch: ch, exchange: "x"}

	err := p.PublishBookingCreated(context.Background(), sampleBooking())
	assert.ErrorContains(t, err, TypeBookingCreated)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
