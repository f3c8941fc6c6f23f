package accounts

import (
	"database/sql"
	"fmt"

	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts"
)

func (r *accountsRepo) LockBalances(tx *sql.Tx, userID uint64) (accounts.Balances, error) {
	_, err := tx.Exec(`
		INSERT INTO accounts (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, userID)
	if err != nil {
		return accounts.Balances{}, fmt.Errorf("ensure account: %w", err)
	}

	var b accounts.Balances

	err = tx.QueryRow(`
		SELECT resource_balance, currency_balance
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, userID).Scan(&b.Resource, &b.Currency)
	if err != nil {
		return accounts.Balances{}, fmt.Errorf("lock/get balances: %w", err)
	}

	return b, nil
}
