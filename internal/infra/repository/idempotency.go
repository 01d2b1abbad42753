package repository

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IdempotencyRepository persists create-booking idempotency keys.
type IdempotencyRepository struct {
	pool *pgxpool.Pool
}

func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

// TryClaim inserts a processing record for the key, reclaiming an expired
// one in the same statement. claimed=false means a live record already holds
// the key.
func (r *IdempotencyRepository) TryClaim(ctx context.Context, key uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO idempotency_keys (key, request_hash, status, expires_at)
		VALUES ($1, $2, 'processing', $3)
		ON CONFLICT (key) DO UPDATE
		SET request_hash = EXCLUDED.request_hash,
		    status = 'processing',
		    result_booking_id = NULL,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = now()
		WHERE idempotency_keys.expires_at <= now()`,
		key, requestHash, expiresAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID) (*commands.IdempotencyRecord, error) {
	var record commands.IdempotencyRecord
	err := r.pool.QueryRow(ctx, `
		SELECT key, request_hash, status, result_booking_id, expires_at
		FROM idempotency_keys WHERE key = $1`, key,
	).Scan(&record.Key, &record.RequestHash, &record.Status, &record.BookingID, &record.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &record, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key uuid.UUID, bookingID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed', result_booking_id = $2, updated_at = now()
		WHERE key = $1`,
		key, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM idempotency_keys WHERE key = $1", key)
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
