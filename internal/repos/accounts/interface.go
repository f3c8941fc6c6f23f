package accounts

import (
	"context"
	"database/sql"
	"errors"
)

var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrUnknownAsset = errors.New("unknown asset")

// Asset selects which of the two balance columns an operation touches.
type Asset string

const (
	AssetResource Asset = "resource"
	AssetCurrency Asset = "currency"
)

// Balances is a snapshot of one account's holdings.
type Balances struct {
	Resource int64
	Currency int64
}

type Accounts interface {
	// GetBalances reads without locking; absent accounts read as zero.
	GetBalances(ctx context.Context, userID uint64) (Balances, error)
	// LockBalances creates the account row if missing and locks it FOR UPDATE.
	LockBalances(tx *sql.Tx, userID uint64) (Balances, error)
	Credit(tx *sql.Tx, userID uint64, asset Asset, amount int64) error
	Debit(tx *sql.Tx, userID uint64, asset Asset, amount int64) error
}
