package accounts

import (
	"database/sql"
	"fmt"

	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts"
)

var _ accounts.Accounts = (*accountsRepo)(nil)

type accountsRepo struct{ db *sql.DB }

func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: db}
}

// balanceColumn maps an asset to its column. The switch is exhaustive so the
// column name interpolated into queries is always one of two fixed strings.
func balanceColumn(asset accounts.Asset) (string, error) {
	switch asset {
	case accounts.AssetResource:
		return "resource_balance", nil
	case accounts.AssetCurrency:
		return "currency_balance", nil
	default:
		return "", fmt.Errorf("%w: %q", accounts.ErrUnknownAsset, asset)
	}
}
