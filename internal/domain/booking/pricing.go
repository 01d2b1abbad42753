package booking

// PriceQuoter derives the charge for a stay from the room's current nightly
// rate. The rate is re-fetched right before payment, so a quote never outlives
// one booking run.
type PriceQuoter interface {
	Quote(nightlyRateCents int64, stay StayPeriod) (Money, error)
}

type NightlyRateQuoter struct{}

func NewNightlyRateQuoter() *NightlyRateQuoter {
	return &NightlyRateQuoter{}
}

// Quote is nightly rate times whole-night stay length. Date arithmetic only;
// fractional nights do not exist.
func (q *NightlyRateQuoter) Quote(nightlyRateCents int64, stay StayPeriod) (Money, error) {
	nights := stay.Nights()
	if nights <= 0 {
		return Money{}, ErrInvalidStayPeriod
	}
	rate, err := NewMoney(nightlyRateCents)
	if err != nil {
		return Money{}, err
	}
	return rate.Multiply(nights), nil
}
