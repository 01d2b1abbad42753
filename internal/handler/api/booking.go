package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	detailQueries   queries.DetailQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	detailQueries queries.DetailQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		detailQueries:   detailQueries,
	}
}

// @Summary Create booking
// @Description Book a room for a date range, charging the payment processor
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Optional idempotency key (UUID)"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	idempotencyKey, ok := h.optionalIdempotencyKey(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	cmd := commands.CreateBookingCommand{
		UserID:         req.UserID,
		RoomID:         req.RoomID,
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		IdempotencyKey: idempotencyKey,
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), cmd)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCreateResult(result))
}

func (h *BookingHandler) writeCreateError(c *gin.Context, err error) {
	var declined *commands.PaymentDeclinedError
	switch {
	case errors.Is(err, commands.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
	case errors.Is(err, commands.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errors.Is(err, commands.ErrInvalidStay):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay period", nil)
	case errors.Is(err, commands.ErrRoomUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room unavailable for the requested dates", nil)
	case errors.Is(err, commands.ErrIdempotencyConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key reused with different parameters", nil)
	case errors.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking request is currently being processed", nil)
	case errors.As(err, &declined):
		// The reservation was persisted; report it so the caller can pay or
		// cancel instead of booking again.
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment failed, reservation kept as unpaid",
			gin.H{"booking_id": declined.BookingID.String()})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking detail
// @Description Aggregated view joining room, hotel and payment data; degraded sub-fields become placeholders
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingDetailResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/detail [get]
func (h *BookingHandler) GetBookingDetail(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	detail, err := h.detailQueries.Detail(c.Request.Context(), id)
	if err != nil {
		h.writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingDetail(detail))
}

// @Summary List bookings
// @Description List all bookings, optionally filtered by user
// @Tags bookings
// @Produce json
// @Param user_id query int false "Filter by user"
// @Success 200 {array} resdto.BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var (
		views []*queries.BookingView
		err   error
	)

	if raw := c.Query("user_id"); raw != "" {
		userID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || userID <= 0 {
			if parseErr == nil {
				parseErr = errs.New("user_id must be positive")
			}
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid user_id filter", nil)
			return
		}
		views, err = h.bookingQueries.ListByUser(c.Request.Context(), userID)
	} else {
		views, err = h.bookingQueries.ListAll(c.Request.Context())
	}

	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]resdto.BookingResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromBookingView(view)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Reschedule booking
// @Description Change the stay dates; the new range is re-checked for overlap
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "New dates"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req reqdto.RescheduleBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.RescheduleBooking(c.Request.Context(), id, req.CheckIn, req.CheckOut)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrInvalidStay):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay period", nil)
		case errors.Is(err, commands.ErrRoomUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "New dates overlap another reservation", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Delete the reservation, releasing its date interval
// @Tags bookings
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) writeReadError(c *gin.Context, err error) {
	if errors.Is(err, queries.ErrBookingNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func (h *BookingHandler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) optionalIdempotencyKey(c *gin.Context) (*uuid.UUID, bool) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return nil, true
	}
	key, err := uuid.Parse(keyStr)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid idempotency key format", nil)
		return nil, false
	}
	return &key, true
}
