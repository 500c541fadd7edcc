package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary List bookings
// @Description List every booking on the given date, across all tables
// @Tags bookings
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 422 {object} httperr.Response
// @Router /bookings/ [get]
func (h *BookingHandler) List(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse(reqdto.DateLayout, dateStr)
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid date", gin.H{"date": dateStr})
		return
	}

	views, err := h.bookingQueries.ListByDate(c.Request.Context(), date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Create booking
// @Description Create a booking; rejected when the slot overlaps an existing booking on the same table and date
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.BookingRequest true "Booking payload"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response "Time slot conflict"
// @Failure 422 {object} httperr.Response
// @Router /bookings/ [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.BookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, bindErr, "Invalid request format", bindErr.Error())
		return
	}

	b, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid booking payload", err.Error())
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), b)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking
// @Description Full replace of every field except id; same conflict rule as create, excluding the booking itself
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body reqdto.BookingRequest true "Booking payload"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response "Time slot conflict"
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req reqdto.BookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, bindErr, "Invalid request format", bindErr.Error())
		return
	}

	b, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid booking payload", err.Error())
		return
	}

	view, err := h.bookingCommands.Update(c.Request.Context(), id, b)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Delete booking
// @Description Permanently remove a booking
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.DeleteResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.Delete(c.Request.Context(), id); err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.DeleteResponse{Detail: "Deleted"})
}

func (h *BookingHandler) bookingID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid booking ID format", gin.H{"id": idStr})
		return 0, false
	}
	return id, true
}

func (h *BookingHandler) abortWithCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSlotConflict):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Time slot conflict", nil)
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
