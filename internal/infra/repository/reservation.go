package repository

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeExclusionViolation = "23P01"
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeCheckViolation     = "23514"
)

// ReservationRepository is the Postgres reservation store. The overlap
// invariant lives in the reservations_no_overlap exclusion constraint, so
// Create and Reschedule decide availability and write in one atomic step.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

const reservationColumns = "id, user_id, room_id, check_in, check_out, status, created_at, updated_at"

func (r *ReservationRepository) Create(ctx context.Context, res *booking.Reservation) (*booking.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reservations (id, user_id, room_id, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+reservationColumns,
		res.ID(), res.UserID(), res.RoomID(),
		res.Stay().CheckIn(), res.Stay().CheckOut(), res.Status().String(),
	)

	created, err := scanReservation(row)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, infra.WrapRepoErr("room already reserved for overlapping dates", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return created, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = $1", id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]*booking.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by user", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *ReservationRepository) ListAll(ctx context.Context) ([]*booking.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+reservationColumns+" FROM reservations ORDER BY created_at DESC")
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// Reschedule rewrites the stay dates; the exclusion constraint re-checks the
// new range against every other reservation of the room inside the same
// statement.
func (r *ReservationRepository) Reschedule(ctx context.Context, id uuid.UUID, stay booking.StayPeriod) (*booking.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE reservations
		SET check_in = $2, check_out = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+reservationColumns,
		id, stay.CheckIn(), stay.CheckOut(),
	)

	res, err := scanReservation(row)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		case isOverlapViolation(err):
			return nil, infra.WrapRepoErr("new dates overlap another reservation", err, infra.KindConflict)
		default:
			return nil, infra.WrapRepoErr("failed to reschedule reservation", err)
		}
	}
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1",
		id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("reservation not found", infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM reservations WHERE id = $1", id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("reservation not found", infra.KindNotFound)
	}
	return nil
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeExclusionViolation || pgErr.Code == pgErrCodeUniqueViolation
}

func scanReservation(row pgx.Row) (*booking.Reservation, error) {
	var (
		id                 uuid.UUID
		userID, roomID     int64
		checkIn, checkOut  time.Time
		status             string
		createdAt, updated time.Time
	)
	if err := row.Scan(&id, &userID, &roomID, &checkIn, &checkOut, &status, &createdAt, &updated); err != nil {
		return nil, err
	}

	stay, err := booking.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructReservation(id, userID, roomID, stay, booking.Status(status), createdAt, updated), nil
}

func scanReservations(rows pgx.Rows) ([]*booking.Reservation, error) {
	var result []*booking.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return result, nil
}
