package booking

import (
	"errors"
	"time"
)

var ErrMissingTable = errors.New("booking must reference a table")

// DefaultStatus is the lifecycle tag assigned when the caller sends none.
// Status is otherwise an opaque string; the service enforces no transitions.
const DefaultStatus = "booked"

type Booking struct {
	id         int64
	table      string
	date       time.Time
	slot       Slot
	name       string
	phone      string
	reqAmount  int
	fromWho    string
	amountFact int
	comment    string
	status     string
}

func New(
	table string,
	date time.Time,
	slot Slot,
	name, phone string,
	reqAmount int,
	fromWho string,
	amountFact int,
	comment, status string,
) (*Booking, error) {
	if table == "" {
		return nil, ErrMissingTable
	}
	if status == "" {
		status = DefaultStatus
	}

	return &Booking{
		table:      table,
		date:       normalizeDate(date),
		slot:       slot,
		name:       name,
		phone:      phone,
		reqAmount:  reqAmount,
		fromWho:    fromWho,
		amountFact: amountFact,
		comment:    comment,
		status:     status,
	}, nil
}

func Reconstruct(
	id int64,
	table string,
	date time.Time,
	slot Slot,
	name, phone string,
	reqAmount int,
	fromWho string,
	amountFact int,
	comment, status string,
) *Booking {
	return &Booking{
		id:         id,
		table:      table,
		date:       normalizeDate(date),
		slot:       slot,
		name:       name,
		phone:      phone,
		reqAmount:  reqAmount,
		fromWho:    fromWho,
		amountFact: amountFact,
		comment:    comment,
		status:     status,
	}
}

func (b *Booking) ID() int64 { return b.id }

func (b *Booking) Table() string { return b.table }

func (b *Booking) Date() time.Time { return b.date }

func (b *Booking) Slot() Slot { return b.slot }

func (b *Booking) Name() string { return b.name }

func (b *Booking) Phone() string { return b.phone }

func (b *Booking) ReqAmount() int { return b.reqAmount }

func (b *Booking) FromWho() string { return b.fromWho }

func (b *Booking) AmountFact() int { return b.amountFact }

func (b *Booking) Comment() string { return b.comment }

func (b *Booking) Status() string { return b.status }

// ConflictsWith reports whether the other booking blocks this one: same table,
// same date, overlapping slot. Status is ignored: every persisted row
// holds its slot, whatever its lifecycle tag says.
func (b *Booking) ConflictsWith(other *Booking) bool {
	if b.table != other.table || !b.date.Equal(other.date) {
		return false
	}
	return b.slot.Overlaps(other.slot)
}

// bookings apply to a calendar date, not an instant
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
