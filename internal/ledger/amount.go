package ledger

import "math"

// MaxAmount is the largest single amount accepted from a caller.
const MaxAmount int64 = 1_000_000_000_000

// AmountFromFloat converts a decoded JSON number into an integer amount.
// Fractions, non-positive values, NaN and values above MaxAmount are
// rejected with ErrInvalidAmount.
func AmountFromFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f != math.Trunc(f) || f > float64(MaxAmount) {
		return 0, ErrInvalidAmount
	}
	return int64(f), nil
}

func validateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
