package marketplace

import "fmt"

// nextCirculating walks the global circulating total by delta within
// [0, ceiling].
//
// A negative delta larger than the current total clamps the result to zero
// rather than underflowing. The clamp is a floor guard: it keeps the counter
// sane if callers ever decrement out of order, but it masks such a caller bug
// instead of signalling it. In a correct calling sequence it never triggers.
func nextCirculating(current, delta, ceiling int64) (int64, error) {
	var next int64

	if delta >= 0 {
		sum, err := checkedAdd(current, delta)
		if err != nil {
			return 0, fmt.Errorf("circulating total: %w", err)
		}

		next = sum
	} else {
		next = current + delta
		if next < 0 {
			next = 0
		}
	}

	if next > ceiling {
		return 0, fmt.Errorf("%d over ceiling %d: %w", next, ceiling, ErrReserveExceeded)
	}

	return next, nil
}
