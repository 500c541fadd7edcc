package response

import (
	"tablebook/internal/handler/dto/request"
	"tablebook/internal/usecase/queries"
)

type BookingResponse struct {
	ID         int64  `json:"id"`
	Table      string `json:"table"`
	Date       string `json:"date"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	ReqAmount  int    `json:"reqAmount"`
	FromWho    string `json:"fromWho"`
	AmountFact int    `json:"amountFact"`
	Comment    string `json:"comment"`
	Status     string `json:"status"`
}

// DeleteResponse acknowledges a hard delete; there is no richer payload.
type DeleteResponse struct {
	Detail string `json:"detail"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:         v.ID,
		Table:      v.Table,
		Date:       v.Date.Format(request.DateLayout),
		Start:      v.Start,
		End:        v.End,
		Name:       v.Name,
		Phone:      v.Phone,
		ReqAmount:  v.ReqAmount,
		FromWho:    v.FromWho,
		AmountFact: v.AmountFact,
		Comment:    v.Comment,
		Status:     v.Status,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, v := range views {
		result[i] = FromBookingView(v)
	}
	return result
}
