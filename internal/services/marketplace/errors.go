package marketplace

import "errors"

// Every rejected operation surfaces one of these sentinels (or
// accounts.ErrInsufficientBalance) with context wrapped around it; a rejected
// operation rolls its transaction back, so state is untouched.
var (
	ErrAdminOnly           = errors.New("caller is not the platform account")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrInvalidFee          = errors.New("invalid fee rate")
	ErrInvalidReserve      = errors.New("invalid reserve limit")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrSameUserTransaction = errors.New("buyer and provider are the same user")
	ErrRefundUnavailable   = errors.New("platform cannot fund reimbursement")
	ErrReserveExceeded     = errors.New("reserve ceiling exceeded")

	// ErrArithmeticOverflow is the one non-user-recoverable failure: a
	// computed amount left the int64 range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
