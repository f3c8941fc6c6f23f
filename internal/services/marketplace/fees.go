package marketplace

import "fmt"

// checkedMul multiplies two non-negative int64 values, failing instead of
// wrapping.
func checkedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	p := a * b
	if p/b != a {
		return 0, fmt.Errorf("%d * %d: %w", a, b, ErrArithmeticOverflow)
	}

	return p, nil
}

func checkedAdd(a, b int64) (int64, error) {
	s := a + b
	if s < a {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrArithmeticOverflow)
	}

	return s, nil
}

// platformFee is floor(amount * feeRatePercent / 100).
func platformFee(amount, feeRatePercent int64) (int64, error) {
	scaled, err := checkedMul(amount, feeRatePercent)
	if err != nil {
		return 0, fmt.Errorf("platform fee: %w", err)
	}

	return scaled / 100, nil
}

// reimbursementAmount is floor(quantity * unitPrice * ratePercent / 100): the
// currency value paid out when quantity resource units are returned to the
// platform.
func reimbursementAmount(quantity, unitPrice, ratePercent int64) (int64, error) {
	value, err := checkedMul(quantity, unitPrice)
	if err != nil {
		return 0, fmt.Errorf("reimbursement value: %w", err)
	}

	scaled, err := checkedMul(value, ratePercent)
	if err != nil {
		return 0, fmt.Errorf("reimbursement amount: %w", err)
	}

	return scaled / 100, nil
}
