package response

import (
	"time"

	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"userId"`
	RoomID    int64     `json:"roomId"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaymentResponse struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type CreateBookingResponse struct {
	Booking  BookingResponse  `json:"booking"`
	Payment  *PaymentResponse `json:"payment,omitempty"`
	Replayed bool             `json:"replayed,omitempty"`
}

type BookingDetailResponse struct {
	Booking BookingResponse       `json:"booking"`
	Room    queries.RoomDetail    `json:"room"`
	Hotel   queries.HotelDetail   `json:"hotel"`
	Payment queries.PaymentDetail `json:"payment"`
}

func FromBookingView(view *queries.BookingView) BookingResponse {
	return BookingResponse{
		ID:        view.ID,
		UserID:    view.UserID,
		RoomID:    view.RoomID,
		CheckIn:   view.CheckIn,
		CheckOut:  view.CheckOut,
		Status:    view.Status,
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
}

func FromCreateResult(result *commands.CreateBookingResult) CreateBookingResponse {
	resp := CreateBookingResponse{
		Booking:  FromBookingView(result.Booking),
		Replayed: result.Replayed,
	}
	if result.Payment != nil {
		resp.Payment = &PaymentResponse{
			ID:     result.Payment.ID,
			Amount: float64(result.Payment.AmountCents) / 100.0,
			Status: result.Payment.Status,
		}
	}
	return resp
}

func FromBookingDetail(detail *queries.BookingDetail) BookingDetailResponse {
	return BookingDetailResponse{
		Booking: FromBookingView(detail.Booking),
		Room:    detail.Room,
		Hotel:   detail.Hotel,
		Payment: detail.Payment,
	}
}
