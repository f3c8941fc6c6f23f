package listings

import (
	"context"
	"database/sql"
)

// Listing is one owner's standing sale offer. The zero value is the state of
// every owner who never listed anything; UnitPrice is meaningful only while
// Quantity > 0.
type Listing struct {
	Quantity  int64
	UnitPrice int64
}

type Listings interface {
	// Get reads without locking; absent rows read as the zero Listing.
	Get(ctx context.Context, ownerID uint64) (Listing, error)
	// LockGet creates the zero row if missing and locks it FOR UPDATE.
	LockGet(tx *sql.Tx, ownerID uint64) (Listing, error)
	// Set overwrites the whole tuple.
	Set(tx *sql.Tx, ownerID uint64, quantity, unitPrice int64) error
}
