package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUserRef = errors.New("invalid user reference")
	ErrInvalidRoomRef = errors.New("invalid room reference")
	ErrInvalidStatus  = errors.New("invalid reservation status")
)

// Reservation is a persisted stay of one user in one room. The store enforces
// the overlap invariant: for a fixed room no two reservations may share a date
// within their half-open stay intervals.
type Reservation struct {
	id        uuid.UUID
	userID    int64
	roomID    int64
	stay      StayPeriod
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewReservation(userID, roomID int64, stay StayPeriod) (*Reservation, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserRef
	}
	if roomID <= 0 {
		return nil, ErrInvalidRoomRef
	}
	if stay.IsZero() {
		return nil, ErrInvalidStayPeriod
	}
	return &Reservation{
		id:     uuid.New(),
		userID: userID,
		roomID: roomID,
		stay:   stay,
		status: StatusUnpaid,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	userID, roomID int64,
	stay StayPeriod,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		userID:    userID,
		roomID:    roomID,
		stay:      stay,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) Confirm() {
	r.status = StatusConfirmed
}

func (r *Reservation) IsConfirmed() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) Reschedule(stay StayPeriod) error {
	if stay.IsZero() {
		return ErrInvalidStayPeriod
	}
	r.stay = stay
	return nil
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) UserID() int64        { return r.userID }
func (r *Reservation) RoomID() int64        { return r.roomID }
func (r *Reservation) Stay() StayPeriod     { return r.stay }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
