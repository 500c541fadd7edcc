//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"tablebook/internal/handler/api"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"
	"tablebook/tests/common/httptest"
	"tablebook/tests/common/testutil"
	commandsmock "tablebook/tests/mock/commands"
	queriesmock "tablebook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Setup routes
	s.router.GET("/bookings/", s.handler.List)
	s.router.POST("/bookings/", s.handler.Create)
	s.router.PUT("/bookings/:id", s.handler.Update)
	s.router.DELETE("/bookings/:id", s.handler.Delete)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func validBookingPayload() map[string]any {
	return map[string]any{
		"table":      "T1",
		"date":       "2024-05-01",
		"start":      18,
		"end":        19,
		"name":       "Anna",
		"phone":      "+15550001",
		"reqAmount":  2,
		"fromWho":    "phone",
		"amountFact": 2,
		"comment":    "",
		"status":     "booked",
	}
}

func bookingView() *queries.BookingView {
	return &queries.BookingView{
		ID:         1,
		Table:      "T1",
		Date:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Start:      18,
		End:        19,
		Name:       "Anna",
		Phone:      "+15550001",
		ReqAmount:  2,
		FromWho:    "phone",
		AmountFact: 2,
		Comment:    "",
		Status:     "booked",
	}
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: returns bookings for the date", func() {
		s.mockQueries.EXPECT().
			ListByDate(gomock.Any(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)).
			Return([]*queries.BookingView{bookingView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/?date=2024-05-01", nil)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal(int64(1), body[0].ID)
		s.Equal("2024-05-01", body[0].Date)
	})

	s.Run("success: empty date has empty array body", func() {
		s.mockQueries.EXPECT().
			ListByDate(gomock.Any(), gomock.Any()).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/?date=2024-05-02", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 422 when date is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid date")
	})

	s.Run("error: 422 on malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/?date=01-05-2024", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid date")
	})
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings/"

	s.Run("success: returns 200 with the persisted booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(bookingView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBookingPayload())

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(1), body.ID)
		s.Equal("T1", body.Table)
		s.Equal(18, body.Start)
		s.Equal(19, body.End)
		s.Equal("booked", body.Status)
	})

	s.Run("success: comment and status may be omitted", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(bookingView(), nil).Times(1)

		payload := testutil.DtoMap(s.T(), validBookingPayload(),
			testutil.Field("comment", nil), testutil.Field("status", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, payload)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 422 on validation errors", func() {
		missing := []testCaseBooking{
			{name: "missing field: table", mutate: testutil.Field("table", nil), expectCode: http.StatusUnprocessableEntity},
			{name: "missing field: date", mutate: testutil.Field("date", nil), expectCode: http.StatusUnprocessableEntity},
			{name: "missing field: start", mutate: testutil.Field("start", nil), expectCode: http.StatusUnprocessableEntity},
			{name: "missing field: end", mutate: testutil.Field("end", nil), expectCode: http.StatusUnprocessableEntity},
			{name: "missing field: name", mutate: testutil.Field("name", nil), expectCode: http.StatusUnprocessableEntity},
			{name: "missing field: phone", mutate: testutil.Field("phone", nil), expectCode: http.StatusUnprocessableEntity},
			{name: "missing field: reqAmount", mutate: testutil.Field("reqAmount", nil), expectCode: http.StatusUnprocessableEntity},
			{name: "missing field: fromWho", mutate: testutil.Field("fromWho", nil), expectCode: http.StatusUnprocessableEntity},
			{name: "missing field: amountFact", mutate: testutil.Field("amountFact", nil), expectCode: http.StatusUnprocessableEntity},
		}

		mistyped := []testCaseBooking{
			{name: "non-integer start", mutate: testutil.Field("start", "18:00"), expectCode: http.StatusUnprocessableEntity},
			{name: "malformed date", mutate: testutil.Field("date", "May 1st"), expectCode: http.StatusUnprocessableEntity},
			{name: "inverted slot (start >= end)", mutate: testutil.Field("end", 17), expectCode: http.StatusUnprocessableEntity},
			{name: "empty slot (start == end)", mutate: testutil.Field("end", 18), expectCode: http.StatusUnprocessableEntity},
		}

		for _, group := range [][]testCaseBooking{missing, mistyped} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					payload := testutil.DtoMap(s.T(), validBookingPayload(), tc.mutate)
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, payload)
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				})
			}
		}
	})

	s.Run("error: 400 on slot conflict", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrSlotConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBookingPayload())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Time slot conflict")
	})

	s.Run("error: 500 on storage failure", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDatabaseOperationFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBookingPayload())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdate() {
	s.Run("success: full replace returns every field from the payload", func() {
		updated := bookingView()
		updated.Start = 19
		updated.End = 21
		updated.Comment = "window seat"

		s.mockCommands.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
			Return(updated, nil).Times(1)

		payload := testutil.DtoMap(s.T(), validBookingPayload(),
			testutil.Field("start", 19), testutil.Field("end", 21), testutil.Field("comment", "window seat"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/1", payload)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(19, body.Start)
		s.Equal(21, body.End)
		s.Equal("window seat", body.Comment)
	})

	s.Run("error: 404 when booking does not exist", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), int64(99), gomock.Any()).
			Return(nil, commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/99", validBookingPayload())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 400 when another booking holds the slot", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
			Return(nil, commands.ErrSlotConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/1", validBookingPayload())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Time slot conflict")
	})

	s.Run("error: 422 on non-numeric id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/abc", validBookingPayload())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid booking ID format")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *BookingHandlerTestSuite) TestDelete() {
	s.Run("success: returns the deletion acknowledgment", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/1", nil)

		var body resdto.DeleteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Deleted", body.Detail)
	})

	s.Run("error: 404 on unknown id", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), int64(99)).
			Return(commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/99", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}
