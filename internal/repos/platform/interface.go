package platform

import (
	"context"
	"database/sql"
)

// Config is the singleton platform record: pricing/fee parameters plus the
// reserve state. PerUserCap is stored and settable but not consulted by any
// marketplace operation.
type Config struct {
	PlatformAccountID        uint64
	UnitPrice                int64
	FeeRatePercent           int64
	ReimbursementRatePercent int64
	PerUserCap               int64
	Circulating              int64
	ReserveCeiling           int64
}

type Platform interface {
	// GetConfig reads the singleton row without locking.
	GetConfig(ctx context.Context) (Config, error)
	// LockConfig locks the singleton row FOR UPDATE and returns it. Every
	// marketplace operation takes this lock first, which both serializes
	// operations (reproducing the single-writer semantics the ledger assumes)
	// and fixes the lock order.
	LockConfig(tx *sql.Tx) (Config, error)

	SetUnitPrice(tx *sql.Tx, price int64) error
	SetFeeRate(tx *sql.Tx, rate int64) error
	SetReimbursementRate(tx *sql.Tx, rate int64) error
	SetPerUserCap(tx *sql.Tx, limit int64) error
	SetReserveCeiling(tx *sql.Tx, limit int64) error
	SetCirculating(tx *sql.Tx, total int64) error
}
