package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts"
)

func (r *accountsRepo) GetBalances(ctx context.Context, userID uint64) (accounts.Balances, error) {
	var b accounts.Balances

	err := r.db.QueryRowContext(ctx, `
		SELECT resource_balance, currency_balance
		FROM accounts
		WHERE id = $1
	`, userID).Scan(&b.Resource, &b.Currency)
	if err != nil {
		// Accounts exist implicitly; a missing row is a zero account.
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Balances{}, nil
		}

		return accounts.Balances{}, fmt.Errorf("get balances: %w", err)
	}

	return b, nil
}
