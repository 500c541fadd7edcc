package queries

import (
	"context"
	"time"
)

// Read model (DTO for read side)
type BookingView struct {
	ID         int64     `json:"id"`
	Table      string    `json:"table"`
	Date       time.Time `json:"date"`
	Start      int       `json:"start"`
	End        int       `json:"end"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	ReqAmount  int       `json:"reqAmount"`
	FromWho    string    `json:"fromWho"`
	AmountFact int       `json:"amountFact"`
	Comment    string    `json:"comment"`
	Status     string    `json:"status"`
}

type BookingQueries interface {
	ListByDate(ctx context.Context, date time.Time) ([]*BookingView, error)
}

type BookingReadStore interface {
	FindByDate(ctx context.Context, date time.Time) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// ListByDate returns every booking on the given date across all tables, in
// id order. No pagination: a venue's day fits in one response.
func (q *bookingQueriesImpl) ListByDate(ctx context.Context, date time.Time) ([]*BookingView, error) {
	return q.store.FindByDate(ctx, date)
}
