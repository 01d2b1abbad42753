package commands

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

// Write-side snapshots of collaborator state. Snapshots are fetched per
// booking run and never cached: price and existence can change between calls.
type RoomSnapshot struct {
	ID           int64
	HotelID      int64
	Type         string
	PriceCents   int64
	Availability bool
}

type UserSnapshot struct {
	ID    int64
	Name  string
	Email string
}

type PaymentReceipt struct {
	ID            int64
	ReservationID uuid.UUID
	AmountCents   int64
	Status        string
}

// UserDirectory and RoomCatalog are the reference validators. Exists performs
// a single lookup; any non-success response, including a transport failure,
// reads as false. No retries.
type UserDirectory interface {
	Exists(ctx context.Context, id int64) bool
	Fetch(ctx context.Context, id int64) (*UserSnapshot, error)
}

type RoomCatalog interface {
	Exists(ctx context.Context, id int64) bool
	Fetch(ctx context.Context, id int64) (*RoomSnapshot, error)
	MarkUnavailable(ctx context.Context, id int64) error
}

type PaymentProcessor interface {
	Charge(ctx context.Context, reservationID uuid.UUID, amountCents int64) (*PaymentReceipt, error)
}

type Notifier interface {
	Notify(ctx context.Context, email, message string) error
}

// ReservationRepository is the durable reservation store. Create and
// Reschedule are the sole arbiters of the overlap invariant: the availability
// check and the write happen as one atomic step inside the store, never as a
// caller-side read followed by a write.
type ReservationRepository interface {
	Create(ctx context.Context, res *booking.Reservation) (*booking.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]*booking.Reservation, error)
	ListAll(ctx context.Context) ([]*booking.Reservation, error)
	Reschedule(ctx context.Context, id uuid.UUID, stay booking.StayPeriod) (*booking.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IdempotencyRecord struct {
	Key         uuid.UUID
	RequestHash string
	Status      string
	BookingID   *uuid.UUID
	ExpiresAt   time.Time
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

// IdempotencyRepository claims create-booking idempotency keys. TryClaim
// inserts a processing record, reclaiming expired ones; claimed=false means
// another request holds the key and Get must decide between replay, conflict
// and in-progress.
type IdempotencyRepository interface {
	TryClaim(ctx context.Context, key uuid.UUID, requestHash string, expiresAt time.Time) (claimed bool, err error)
	Get(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key uuid.UUID, bookingID uuid.UUID) error
	Release(ctx context.Context, key uuid.UUID) error
}
