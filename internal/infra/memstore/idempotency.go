package memstore

import (
	"context"
	"sync"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

// IdempotencyStore is the in-memory idempotency-key variant. Expiry is judged
// against the same clock the use case stamps expiresAt with, so claim and TTL
// decisions can never disagree.
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]commands.IdempotencyRecord
	clk     clock.Clock
}

func NewIdempotencyStore(clk clock.Clock) *IdempotencyStore {
	return &IdempotencyStore{
		records: make(map[uuid.UUID]commands.IdempotencyRecord),
		clk:     clk,
	}
}

func (s *IdempotencyStore) TryClaim(_ context.Context, key uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[key]; ok && existing.ExpiresAt.After(s.clk.Now()) {
		return false, nil
	}
	s.records[key] = commands.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      commands.IdempotencyProcessing,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (s *IdempotencyStore) Get(_ context.Context, key uuid.UUID) (*commands.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return nil, infra.NewRepoErr("idempotency key not found", infra.KindNotFound)
	}
	return &record, nil
}

func (s *IdempotencyStore) MarkCompleted(_ context.Context, key uuid.UUID, bookingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return infra.NewRepoErr("idempotency key not found", infra.KindNotFound)
	}
	record.Status = commands.IdempotencyCompleted
	record.BookingID = &bookingID
	s.records[key] = record
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}
