package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"

	"github.com/google/uuid"
)

// ReservationStore is the in-memory reservation store variant, used for local
// runs and tests. One mutex guards every mutation, so the overlap check and
// the insert are a single atomic step exactly like the Postgres exclusion
// constraint: two concurrent bookings for the same slot can never both win.
type ReservationStore struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*booking.Reservation
	byRoom map[int64][]uuid.UUID
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		byID:   make(map[uuid.UUID]*booking.Reservation),
		byRoom: make(map[int64][]uuid.UUID),
	}
}

func (s *ReservationStore) Create(_ context.Context, res *booking.Reservation) (*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.overlapsLocked(res.RoomID(), res.Stay(), uuid.Nil) {
		return nil, infra.NewRepoErr("room already reserved for overlapping dates", infra.KindConflict)
	}

	now := time.Now()
	stored := booking.ReconstructReservation(
		res.ID(), res.UserID(), res.RoomID(), res.Stay(), res.Status(), now, now)
	s.byID[stored.ID()] = stored
	s.byRoom[stored.RoomID()] = append(s.byRoom[stored.RoomID()], stored.ID())
	return clone(stored), nil
}

func (s *ReservationStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return nil, infra.NewRepoErr("reservation not found", infra.KindNotFound)
	}
	return clone(res), nil
}

func (s *ReservationStore) ListByUser(_ context.Context, userID int64) ([]*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*booking.Reservation
	for _, res := range s.byID {
		if res.UserID() == userID {
			result = append(result, clone(res))
		}
	}
	sortByCheckIn(result)
	return result, nil
}

func (s *ReservationStore) ListAll(_ context.Context) ([]*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*booking.Reservation, 0, len(s.byID))
	for _, res := range s.byID {
		result = append(result, clone(res))
	}
	sortByCheckIn(result)
	return result, nil
}

// Reschedule re-checks the new stay against every other reservation of the
// same room before committing, under the same lock as the write.
func (s *ReservationStore) Reschedule(_ context.Context, id uuid.UUID, stay booking.StayPeriod) (*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return nil, infra.NewRepoErr("reservation not found", infra.KindNotFound)
	}
	if s.overlapsLocked(res.RoomID(), stay, id) {
		return nil, infra.NewRepoErr("new dates overlap another reservation", infra.KindConflict)
	}
	updated := booking.ReconstructReservation(
		res.ID(), res.UserID(), res.RoomID(), stay, res.Status(), res.CreatedAt(), time.Now())
	s.byID[id] = updated
	return clone(updated), nil
}

func (s *ReservationStore) UpdateStatus(_ context.Context, id uuid.UUID, status booking.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return infra.NewRepoErr("reservation not found", infra.KindNotFound)
	}
	updated := booking.ReconstructReservation(
		res.ID(), res.UserID(), res.RoomID(), res.Stay(), status, res.CreatedAt(), time.Now())
	s.byID[id] = updated
	return nil
}

func (s *ReservationStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return infra.NewRepoErr("reservation not found", infra.KindNotFound)
	}
	delete(s.byID, id)

	ids := s.byRoom[res.RoomID()]
	for i, rid := range ids {
		if rid == id {
			s.byRoom[res.RoomID()] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// overlapsLocked reports whether stay intersects any reservation of the room
// other than exclude. A room with no reservations yields no overlap; the
// store does not distinguish "unknown room" from "empty room".
func (s *ReservationStore) overlapsLocked(roomID int64, stay booking.StayPeriod, exclude uuid.UUID) bool {
	for _, id := range s.byRoom[roomID] {
		if id == exclude {
			continue
		}
		if other, ok := s.byID[id]; ok && other.Stay().Overlaps(stay) {
			return true
		}
	}
	return false
}

func clone(res *booking.Reservation) *booking.Reservation {
	return booking.ReconstructReservation(
		res.ID(), res.UserID(), res.RoomID(), res.Stay(), res.Status(), res.CreatedAt(), res.UpdatedAt())
}

func sortByCheckIn(list []*booking.Reservation) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Stay().CheckIn().Equal(list[j].Stay().CheckIn()) {
			return list[i].ID().String() < list[j].ID().String()
		}
		return list[i].Stay().CheckIn().Before(list[j].Stay().CheckIn())
	})
}
