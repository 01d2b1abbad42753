package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound          = errs.New("user not found")
	ErrRoomNotFound          = errs.New("room not found")
	ErrRoomUnavailable       = errs.New("room unavailable for the requested dates")
	ErrInvalidStay           = errs.New("invalid stay period")
	ErrBookingNotFound       = errs.New("booking not found")
	ErrPaymentFailed         = errs.New("payment failed")
	ErrIdempotencyConflict   = errs.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress = errs.New("request with this idempotency key is in progress")
	ErrStorageFailure        = errs.New("reservation store operation failed")
)

// PaymentDeclinedError reports a booking whose payment step failed after the
// reservation was already persisted. The reservation is deliberately not
// rolled back; it stays retrievable with status "unpaid".
type PaymentDeclinedError struct {
	BookingID uuid.UUID
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("payment failed for booking %s; reservation kept as unpaid", e.BookingID)
}

func (e *PaymentDeclinedError) Is(target error) bool {
	return target == ErrPaymentFailed
}

const idempotencyKeyTTL = 24 * time.Hour

type CreateBookingCommand struct {
	UserID         int64
	RoomID         int64
	CheckIn        string
	CheckOut       string
	IdempotencyKey *uuid.UUID
}

type CreateBookingResult struct {
	Booking  *queries.BookingView
	Payment  *PaymentReceipt
	Replayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*CreateBookingResult, error)
	RescheduleBooking(ctx context.Context, id uuid.UUID, checkIn, checkOut string) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, id uuid.UUID) error
}

type bookingUseCaseImpl struct {
	store    ReservationRepository
	idem     IdempotencyRepository
	users    UserDirectory
	rooms    RoomCatalog
	payments PaymentProcessor
	notifier Notifier
	quoter   booking.PriceQuoter
	clock    clock.Clock
}

func NewBookingUseCase(
	store ReservationRepository,
	idem IdempotencyRepository,
	users UserDirectory,
	rooms RoomCatalog,
	payments PaymentProcessor,
	notifier Notifier,
	quoter booking.PriceQuoter,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		store:    store,
		idem:     idem,
		users:    users,
		rooms:    rooms,
		payments: payments,
		notifier: notifier,
		quoter:   quoter,
		clock:    clock,
	}
}

// CreateBooking runs one booking workflow instance:
// validate references, persist atomically against the overlap invariant,
// price from a fresh room snapshot, charge, then confirm. Every terminal
// failure is reported synchronously; no step is retried.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*CreateBookingResult, error) {
	if cmd.IdempotencyKey == nil {
		return u.createBooking(ctx, cmd)
	}

	key := *cmd.IdempotencyKey
	requestHash := hashCreateRequest(cmd)

	claimed, err := u.idem.TryClaim(ctx, key, requestHash, u.clock.Now().Add(idempotencyKeyTTL))
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	if !claimed {
		return u.replayOrReject(ctx, key, requestHash)
	}

	result, err := u.createBooking(ctx, cmd)
	if err != nil {
		var declined *PaymentDeclinedError
		if errors.As(err, &declined) {
			// The reservation exists; a replay must return it, not book again.
			u.completeClaim(ctx, key, declined.BookingID)
			return nil, err
		}
		// Nothing persisted; free the key so the caller can retry.
		if releaseErr := u.idem.Release(ctx, key); releaseErr != nil {
			slog.Warn("failed to release idempotency key", "key", key, "error", releaseErr)
		}
		return nil, err
	}

	u.completeClaim(ctx, key, result.Booking.ID)
	return result, nil
}

func (u *bookingUseCaseImpl) replayOrReject(ctx context.Context, key uuid.UUID, requestHash string) (*CreateBookingResult, error) {
	record, err := u.idem.Get(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	if record.RequestHash != requestHash {
		return nil, ErrIdempotencyConflict
	}

	switch record.Status {
	case IdempotencyCompleted:
		if record.BookingID == nil {
			return nil, errs.New("completed idempotency record missing booking id")
		}
		res, err := u.store.FindByID(ctx, *record.BookingID)
		if err != nil {
			return nil, errs.Mark(err, ErrStorageFailure)
		}
		return &CreateBookingResult{Booking: queries.NewBookingView(res), Replayed: true}, nil
	case IdempotencyProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency record status")
	}
}

func (u *bookingUseCaseImpl) completeClaim(ctx context.Context, key, bookingID uuid.UUID) {
	if err := u.idem.MarkCompleted(ctx, key, bookingID); err != nil {
		slog.Warn("failed to complete idempotency key", "key", key, "error", err)
	}
}

func (u *bookingUseCaseImpl) createBooking(ctx context.Context, cmd CreateBookingCommand) (*CreateBookingResult, error) {
	stay, err := booking.ParseStayPeriod(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}

	// Validating: a transient collaborator failure reads as "does not exist"
	// and fails this attempt outright.
	if !u.users.Exists(ctx, cmd.UserID) {
		return nil, ErrUserNotFound
	}
	if !u.rooms.Exists(ctx, cmd.RoomID) {
		return nil, ErrRoomNotFound
	}

	res, err := booking.NewReservation(cmd.UserID, cmd.RoomID, stay)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}

	// CheckingAvailability + Persisting: one atomic step inside the store.
	persisted, err := u.store.Create(ctx, res)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrRoomUnavailable
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}

	receipt, err := u.chargeForStay(ctx, persisted)
	if err != nil {
		slog.Warn("payment step failed, keeping reservation as unpaid",
			"booking_id", persisted.ID(), "error", err)
		return nil, &PaymentDeclinedError{BookingID: persisted.ID()}
	}

	if err := u.store.UpdateStatus(ctx, persisted.ID(), booking.StatusConfirmed); err != nil {
		slog.Warn("failed to confirm reservation status", "booking_id", persisted.ID(), "error", err)
	} else {
		persisted.Confirm()
	}

	u.finishBestEffort(ctx, persisted)

	return &CreateBookingResult{
		Booking: queries.NewBookingView(persisted),
		Payment: receipt,
	}, nil
}

// chargeForStay prices the stay from a fresh room snapshot and drives the
// payment call. The snapshot is re-fetched here because the nightly rate may
// have changed since validation.
func (u *bookingUseCaseImpl) chargeForStay(ctx context.Context, res *booking.Reservation) (*PaymentReceipt, error) {
	snap, err := u.rooms.Fetch(ctx, res.RoomID())
	if err != nil {
		return nil, errs.Wrap(err, "room snapshot fetch failed before payment")
	}

	amount, err := u.quoter.Quote(snap.PriceCents, res.Stay())
	if err != nil {
		return nil, errs.Wrap(err, "pricing failed")
	}

	receipt, err := u.payments.Charge(ctx, res.ID(), amount.Cents())
	if err != nil {
		return nil, errs.Wrap(err, "payment processor call failed")
	}
	if receipt.Status != "confirmed" {
		return nil, errs.Wrapf(ErrPaymentFailed, "processor returned status %q", receipt.Status)
	}
	return receipt, nil
}

// Post-payment steps are best-effort and never fail the booking.
func (u *bookingUseCaseImpl) finishBestEffort(ctx context.Context, res *booking.Reservation) {
	if err := u.rooms.MarkUnavailable(ctx, res.RoomID()); err != nil {
		slog.Warn("failed to mark room unavailable", "room_id", res.RoomID(), "error", err)
	}

	if u.notifier == nil {
		return
	}
	user, err := u.users.Fetch(ctx, res.UserID())
	if err != nil {
		slog.Warn("skipping booking notification, user lookup failed", "user_id", res.UserID(), "error", err)
		return
	}
	msg := fmt.Sprintf("Your booking %s for room %d (%s) is confirmed.", res.ID(), res.RoomID(), res.Stay())
	if err := u.notifier.Notify(ctx, user.Email, msg); err != nil {
		slog.Warn("booking notification failed", "booking_id", res.ID(), "error", err)
	}
}

// RescheduleBooking changes the stay dates. The store re-runs the overlap
// check against all other reservations of the same room atomically.
func (u *bookingUseCaseImpl) RescheduleBooking(ctx context.Context, id uuid.UUID, checkIn, checkOut string) (*queries.BookingView, error) {
	stay, err := booking.ParseStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}

	res, err := u.store.Reschedule(ctx, id, stay)
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrBookingNotFound
		case infra.IsKind(err, infra.KindConflict):
			return nil, ErrRoomUnavailable
		default:
			return nil, errs.Mark(err, ErrStorageFailure)
		}
	}
	return queries.NewBookingView(res), nil
}

// CancelBooking deletes the reservation, releasing its interval.
func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID) error {
	if err := u.store.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrStorageFailure)
	}
	return nil
}

func hashCreateRequest(cmd CreateBookingCommand) string {
	payload, _ := json.Marshal(map[string]any{
		"user_id":   cmd.UserID,
		"room_id":   cmd.RoomID,
		"check_in":  cmd.CheckIn,
		"check_out": cmd.CheckOut,
	})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
