package accounts

import (
	"database/sql"
	"fmt"

	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts"
)

func (r *accountsRepo) Credit(tx *sql.Tx, userID uint64, asset accounts.Asset, amount int64) error {
	col, err := balanceColumn(asset)
	if err != nil {
		return err
	}

	_, err = tx.Exec(fmt.Sprintf(`
		UPDATE accounts
		SET %s = %s + $2
		WHERE id = $1
	`, col, col), userID, amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", asset, err)
	}

	return nil
}
