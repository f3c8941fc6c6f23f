package accounts

import (
	"database/sql"
	"fmt"

	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts"
)

func (r *accountsRepo) Debit(tx *sql.Tx, userID uint64, asset accounts.Asset, amount int64) error {
	col, err := balanceColumn(asset)
	if err != nil {
		return err
	}

	res, err := tx.Exec(fmt.Sprintf(`
		UPDATE accounts
		SET %s = %s - $2
		WHERE id = $1
		  AND %s >= $2
	`, col, col, col), userID, amount)
	if err != nil {
		return fmt.Errorf("debit %s: %w", asset, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrInsufficientBalance
	}

	return nil
}
