//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stayhub/internal/handler/api"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommands struct {
	createResult *commands.CreateBookingResult
	createErr    error
	gotCreate    *commands.CreateBookingCommand

	rescheduleView *queries.BookingView
	rescheduleErr  error

	cancelErr error
}

func (s *stubCommands) CreateBooking(_ context.Context, cmd commands.CreateBookingCommand) (*commands.CreateBookingResult, error) {
	s.gotCreate = &cmd
	return s.createResult, s.createErr
}

func (s *stubCommands) RescheduleBooking(_ context.Context, _ uuid.UUID, _, _ string) (*queries.BookingView, error) {
	return s.rescheduleView, s.rescheduleErr
}

func (s *stubCommands) CancelBooking(_ context.Context, _ uuid.UUID) error {
	return s.cancelErr
}

type stubQueries struct {
	view    *queries.BookingView
	views   []*queries.BookingView
	byUser  []*queries.BookingView
	getErr  error
	listErr error
}

func (s *stubQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	return s.view, s.getErr
}

func (s *stubQueries) ListByUser(_ context.Context, _ int64) ([]*queries.BookingView, error) {
	return s.byUser, s.listErr
}

func (s *stubQueries) ListAll(_ context.Context) ([]*queries.BookingView, error) {
	return s.views, s.listErr
}

type stubDetail struct {
	detail *queries.BookingDetail
	err    error
}

func (s *stubDetail) Detail(_ context.Context, _ uuid.UUID) (*queries.BookingDetail, error) {
	return s.detail, s.err
}

func newTestRouter(cmds commands.BookingCommands, qs queries.BookingQueries, det queries.DetailQueries) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := api.NewBookingHandler(cmds, qs, det)

	bookings := engine.Group("/api/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListBookings)
	bookings.GET("/:id", h.GetBooking)
	bookings.GET("/:id/detail", h.GetBookingDetail)
	bookings.PATCH("/:id", h.RescheduleBooking)
	bookings.DELETE("/:id", h.CancelBooking)
	return engine
}

func sampleView() *queries.BookingView {
	return &queries.BookingView{
		ID:        uuid.New(),
		UserID:    1,
		RoomID:    7,
		CheckIn:   "01-06-2024",
		CheckOut:  "04-06-2024",
		Status:    "confirmed",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

const createBody = `{"user_id":1,"room_id":7,"check_in":"01-06-2024","check_out":"04-06-2024"}`

func doRequest(engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("201 with booking and payment", func(t *testing.T) {
		view := sampleView()
		cmds := &stubCommands{createResult: &commands.CreateBookingResult{
			Booking: view,
			Payment: &commands.PaymentReceipt{ID: 1, ReservationID: view.ID, AmountCents: 30000, Status: "confirmed"},
		}}
		engine := newTestRouter(cmds, &stubQueries{}, &stubDetail{})

		rec := doRequest(engine, http.MethodPost, "/api/bookings", createBody, nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		booking := resp["booking"].(map[string]any)
		assert.Equal(t, "confirmed", booking["status"])
		payment := resp["payment"].(map[string]any)
		assert.InDelta(t, 300.0, payment["amount"], 0.001)

		require.NotNil(t, cmds.gotCreate)
		assert.Nil(t, cmds.gotCreate.IdempotencyKey)
		assert.Equal(t, "01-06-2024", cmds.gotCreate.CheckIn)
	})

	t.Run("200 on idempotent replay", func(t *testing.T) {
		view := sampleView()
		cmds := &stubCommands{createResult: &commands.CreateBookingResult{Booking: view, Replayed: true}}
		engine := newTestRouter(cmds, &stubQueries{}, &stubDetail{})
		key := uuid.New()

		rec := doRequest(engine, http.MethodPost, "/api/bookings", createBody, map[string]string{"Idempotency-Key": key.String()})
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, cmds.gotCreate.IdempotencyKey)
		assert.Equal(t, key, *cmds.gotCreate.IdempotencyKey)
	})

	t.Run("400 on malformed idempotency key", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{}, &stubDetail{})
		rec := doRequest(engine, http.MethodPost, "/api/bookings", createBody, map[string]string{"Idempotency-Key": "not-a-uuid"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("400 on malformed body", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{}, &stubDetail{})
		rec := doRequest(engine, http.MethodPost, "/api/bookings", `{"user_id":0}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("402 with booking id when payment is declined", func(t *testing.T) {
		bookingID := uuid.New()
		cmds := &stubCommands{createErr: &commands.PaymentDeclinedError{BookingID: bookingID}}
		engine := newTestRouter(cmds, &stubQueries{}, &stubDetail{})

		rec := doRequest(engine, http.MethodPost, "/api/bookings", createBody, nil)
		require.Equal(t, http.StatusPaymentRequired, rec.Code)

		var resp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
			Detail map[string]string `json:"detail"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error.Message)
		assert.Equal(t, bookingID.String(), resp.Detail["booking_id"])
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "404 unknown user", err: commands.ErrUserNotFound, status: http.StatusNotFound},
		{name: "404 unknown room", err: commands.ErrRoomNotFound, status: http.StatusNotFound},
		{name: "400 invalid stay", err: commands.ErrInvalidStay, status: http.StatusBadRequest},
		{name: "409 room unavailable", err: commands.ErrRoomUnavailable, status: http.StatusConflict},
		{name: "409 idempotency conflict", err: commands.ErrIdempotencyConflict, status: http.StatusConflict},
		{name: "409 request in progress", err: commands.ErrIdempotencyInProgress, status: http.StatusConflict},
		{name: "500 storage failure", err: commands.ErrStorageFailure, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestRouter(&stubCommands{createErr: tt.err}, &stubQueries{}, &stubDetail{})
			rec := doRequest(engine, http.MethodPost, "/api/bookings", createBody, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetBookingEndpoint(t *testing.T) {
	t.Run("200", func(t *testing.T) {
		view := sampleView()
		engine := newTestRouter(&stubCommands{}, &stubQueries{view: view}, &stubDetail{})

		rec := doRequest(engine, http.MethodGet, "/api/bookings/"+view.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, view.ID.String(), resp["id"])
		assert.Equal(t, "01-06-2024", resp["checkIn"])
	})

	t.Run("404 on unknown booking", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{getErr: queries.ErrBookingNotFound}, &stubDetail{})
		rec := doRequest(engine, http.MethodGet, "/api/bookings/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		errObj := resp["error"].(map[string]any)
		assert.Equal(t, "Booking not found", errObj["message"])
	})

	t.Run("400 on malformed id", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{}, &stubDetail{})
		rec := doRequest(engine, http.MethodGet, "/api/bookings/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetBookingDetailEndpoint(t *testing.T) {
	t.Run("200 includes degraded placeholders", func(t *testing.T) {
		view := sampleView()
		det := &stubDetail{detail: &queries.BookingDetail{
			Booking: view,
			Room:    queries.RoomDetail{RoomID: 7, Type: queries.UnknownLabel},
			Hotel:   queries.HotelDetail{Name: queries.UnknownLabel, Location: queries.UnknownLabel},
			Payment: queries.PaymentDetail{Status: "confirmed"},
		}}
		engine := newTestRouter(&stubCommands{}, &stubQueries{}, det)

		rec := doRequest(engine, http.MethodGet, "/api/bookings/"+view.ID.String()+"/detail", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		room := resp["room"].(map[string]any)
		assert.Equal(t, "unknown", room["type"])
		payment := resp["payment"].(map[string]any)
		assert.Equal(t, "confirmed", payment["status"])
	})

	t.Run("404 on unknown booking", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{}, &stubDetail{err: queries.ErrBookingNotFound})
		rec := doRequest(engine, http.MethodGet, "/api/bookings/"+uuid.NewString()+"/detail", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	t.Run("200 all bookings", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{views: []*queries.BookingView{sampleView(), sampleView()}}, &stubDetail{})
		rec := doRequest(engine, http.MethodGet, "/api/bookings", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("200 filtered by user, empty list stays a list", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{byUser: []*queries.BookingView{}}, &stubDetail{})
		rec := doRequest(engine, http.MethodGet, "/api/bookings?user_id=5", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("400 on bad user filter", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{}, &stubDetail{})
		rec := doRequest(engine, http.MethodGet, "/api/bookings?user_id=abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRescheduleBookingEndpoint(t *testing.T) {
	body := `{"check_in":"10-06-2024","check_out":"12-06-2024"}`

	t.Run("200", func(t *testing.T) {
		view := sampleView()
		view.CheckIn, view.CheckOut = "10-06-2024", "12-06-2024"
		engine := newTestRouter(&stubCommands{rescheduleView: view}, &stubQueries{}, &stubDetail{})

		rec := doRequest(engine, http.MethodPatch, "/api/bookings/"+view.ID.String(), body, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "10-06-2024", resp["checkIn"])
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "404 unknown booking", err: commands.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "400 invalid stay", err: commands.ErrInvalidStay, status: http.StatusBadRequest},
		{name: "409 overlap", err: commands.ErrRoomUnavailable, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestRouter(&stubCommands{rescheduleErr: tt.err}, &stubQueries{}, &stubDetail{})
			rec := doRequest(engine, http.MethodPatch, "/api/bookings/"+uuid.NewString(), body, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCancelBookingEndpoint(t *testing.T) {
	t.Run("204", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{}, &stubQueries{}, &stubDetail{})
		rec := doRequest(engine, http.MethodDelete, "/api/bookings/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("404", func(t *testing.T) {
		engine := newTestRouter(&stubCommands{cancelErr: commands.ErrBookingNotFound}, &stubQueries{}, &stubDetail{})
		rec := doRequest(engine, http.MethodDelete, "/api/bookings/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
