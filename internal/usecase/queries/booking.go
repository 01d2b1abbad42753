package queries

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

// Read models (DTO for read side)
type BookingView struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	RoomID    int64     `json:"room_id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingView(res *booking.Reservation) *BookingView {
	return &BookingView{
		ID:        res.ID(),
		UserID:    res.UserID(),
		RoomID:    res.RoomID(),
		CheckIn:   res.Stay().CheckIn().Format(booking.DateLayout),
		CheckOut:  res.Stay().CheckOut().Format(booking.DateLayout),
		Status:    res.Status().String(),
		CreatedAt: res.CreatedAt(),
		UpdatedAt: res.UpdatedAt(),
	}
}

type BookingReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]*booking.Reservation, error)
	ListAll(ctx context.Context) ([]*booking.Reservation, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID int64) ([]*BookingView, error)
	ListAll(ctx context.Context) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReader
}

func NewBookingQueries(store BookingReader) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	res, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return NewBookingView(res), nil
}

// ListByUser returns an empty slice for a user with no reservations; absence
// of rows is not a not-found condition on the list path.
func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID int64) ([]*BookingView, error) {
	list, err := q.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toViews(list), nil
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context) ([]*BookingView, error) {
	list, err := q.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(list), nil
}

func toViews(list []*booking.Reservation) []*BookingView {
	views := make([]*BookingView, len(list))
	for i, res := range list {
		views[i] = NewBookingView(res)
	}
	return views
}
