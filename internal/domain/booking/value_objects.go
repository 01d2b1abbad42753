package booking

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for stay dates. Stays are calendar dates,
// day granularity; no timestamps.
const DateLayout = "02-01-2006"

var (
	ErrInvalidStayPeriod = errors.New("check-out must be strictly after check-in")
	ErrInvalidDateFormat = errors.New("dates must be in DD-MM-YYYY format")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)

// StayPeriod is a half-open interval [checkIn, checkOut) of calendar dates.
// Equal boundary dates do not overlap, so back-to-back stays are allowed.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in := truncateToDate(checkIn)
	out := truncateToDate(checkOut)
	if !out.After(in) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

func ParseStayPeriod(checkIn, checkOut string) (StayPeriod, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return StayPeriod{}, ErrInvalidDateFormat
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return StayPeriod{}, ErrInvalidDateFormat
	}
	return NewStayPeriod(in, out)
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

// Nights is the whole-day length of the stay.
func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

// Overlaps reports whether two half-open intervals intersect:
// [a,b) and [c,d) overlap iff a < d && c < b.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(DateLayout), p.checkOut.Format(DateLayout))
}

func (p StayPeriod) IsZero() bool {
	return p.checkIn.IsZero() && p.checkOut.IsZero()
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Money is an amount in cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Units() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Multiply(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

type Status string

const (
	// StatusUnpaid marks a persisted reservation whose payment has not been
	// confirmed. A failed payment leaves the reservation in this state; it is
	// not rolled back.
	StatusUnpaid    Status = "unpaid"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusConfirmed, StatusCanceled:
		return true
	default:
		return false
	}
}
