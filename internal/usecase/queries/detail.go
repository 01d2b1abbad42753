package queries

import (
	"context"
	"log/slog"

	"stayhub/internal/infra"

	"github.com/google/uuid"
)

// Placeholder values for sub-views whose collaborator was unreachable or had
// no matching record. The detail endpoint prefers a partial result over a
// total failure; only a missing reservation itself is an error.
const (
	UnknownLabel = "unknown"
)

type RoomDetail struct {
	RoomID     int64  `json:"room_id"`
	HotelID    *int64 `json:"hotel_id,omitempty"`
	Type       string `json:"type"`
	PriceCents *int64 `json:"price_cents,omitempty"`
}

type HotelDetail struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type PaymentDetail struct {
	Status      string `json:"status"`
	AmountCents *int64 `json:"amount_cents,omitempty"`
}

type BookingDetail struct {
	Booking *BookingView  `json:"booking"`
	Room    RoomDetail    `json:"room"`
	Hotel   HotelDetail   `json:"hotel"`
	Payment PaymentDetail `json:"payment"`
}

type RoomFetcher interface {
	FetchRoom(ctx context.Context, id int64) (roomType string, hotelID int64, priceCents int64, err error)
}

type HotelFetcher interface {
	FetchHotel(ctx context.Context, id int64) (name, location string, err error)
}

type PaymentFetcher interface {
	FetchPayment(ctx context.Context, reservationID uuid.UUID) (status string, amountCents int64, err error)
}

type DetailQueries interface {
	Detail(ctx context.Context, id uuid.UUID) (*BookingDetail, error)
}

type detailQueriesImpl struct {
	store    BookingReader
	rooms    RoomFetcher
	hotels   HotelFetcher
	payments PaymentFetcher
}

func NewDetailQueries(store BookingReader, rooms RoomFetcher, hotels HotelFetcher, payments PaymentFetcher) DetailQueries {
	return &detailQueriesImpl{
		store:    store,
		rooms:    rooms,
		hotels:   hotels,
		payments: payments,
	}
}

// Detail joins room, hotel and payment data onto one reservation. Each
// collaborator degrades independently to placeholders.
func (q *detailQueriesImpl) Detail(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	res, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	detail := &BookingDetail{
		Booking: NewBookingView(res),
		Room:    RoomDetail{RoomID: res.RoomID(), Type: UnknownLabel},
		Hotel:   HotelDetail{Name: UnknownLabel, Location: UnknownLabel},
		Payment: PaymentDetail{Status: UnknownLabel},
	}

	hotelID, ok := q.fillRoom(ctx, res.RoomID(), detail)
	if ok {
		q.fillHotel(ctx, hotelID, detail)
	}
	q.fillPayment(ctx, res.ID(), detail)

	return detail, nil
}

func (q *detailQueriesImpl) fillRoom(ctx context.Context, roomID int64, detail *BookingDetail) (int64, bool) {
	roomType, hotelID, priceCents, err := q.rooms.FetchRoom(ctx, roomID)
	if err != nil {
		slog.Warn("room lookup degraded", "room_id", roomID, "error", err)
		return 0, false
	}
	detail.Room.Type = roomType
	detail.Room.HotelID = &hotelID
	detail.Room.PriceCents = &priceCents
	return hotelID, true
}

func (q *detailQueriesImpl) fillHotel(ctx context.Context, hotelID int64, detail *BookingDetail) {
	name, location, err := q.hotels.FetchHotel(ctx, hotelID)
	if err != nil {
		slog.Warn("hotel lookup degraded", "hotel_id", hotelID, "error", err)
		return
	}
	detail.Hotel.Name = name
	detail.Hotel.Location = location
}

func (q *detailQueriesImpl) fillPayment(ctx context.Context, reservationID uuid.UUID, detail *BookingDetail) {
	status, amountCents, err := q.payments.FetchPayment(ctx, reservationID)
	if err != nil {
		slog.Warn("payment lookup degraded", "reservation_id", reservationID, "error", err)
		return
	}
	detail.Payment.Status = status
	detail.Payment.AmountCents = &amountCents
}
