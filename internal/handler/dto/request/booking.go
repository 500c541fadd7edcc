package request

import (
	"time"

	"tablebook/internal/domain/booking"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// BookingRequest is the payload for both create and update (full replace).
// Integer fields are pointers so a legitimate zero (e.g. start=0, the first
// slot of the day) still passes `required` binding.
type BookingRequest struct {
	Table      string  `json:"table" binding:"required"`
	Date       string  `json:"date" binding:"required,datetime=2006-01-02"`
	Start      *int    `json:"start" binding:"required"`
	End        *int    `json:"end" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	ReqAmount  *int    `json:"reqAmount" binding:"required"`
	FromWho    string  `json:"fromWho" binding:"required"`
	AmountFact *int    `json:"amountFact" binding:"required"`
	Comment    *string `json:"comment"`
	Status     *string `json:"status"`
}

func (r BookingRequest) ToDomain() (*booking.Booking, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := booking.NewSlot(*r.Start, *r.End)
	if err != nil {
		return nil, err
	}

	comment := ""
	if r.Comment != nil {
		comment = *r.Comment
	}

	status := booking.DefaultStatus
	if r.Status != nil && *r.Status != "" {
		status = *r.Status
	}

	return booking.New(
		r.Table,
		date,
		slot,
		r.Name,
		r.Phone,
		*r.ReqAmount,
		r.FromWho,
		*r.AmountFact,
		comment,
		status,
	)
}
