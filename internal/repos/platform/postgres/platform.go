package platform

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/platform"
)

var _ platform.Platform = (*platformRepo)(nil)

type platformRepo struct{ db *sql.DB }

func New(db *sql.DB) *platformRepo {
	return &platformRepo{db: db}
}

const configColumns = `
	platform_account_id, unit_price, fee_rate_percent,
	reimbursement_rate_percent, per_user_cap, circulating, reserve_ceiling
`

func scanConfig(row *sql.Row) (platform.Config, error) {
	var c platform.Config

	err := row.Scan(
		&c.PlatformAccountID,
		&c.UnitPrice,
		&c.FeeRatePercent,
		&c.ReimbursementRatePercent,
		&c.PerUserCap,
		&c.Circulating,
		&c.ReserveCeiling,
	)
	if err != nil {
		return platform.Config{}, fmt.Errorf("scan config: %w", err)
	}

	return c, nil
}

func (r *platformRepo) GetConfig(ctx context.Context) (platform.Config, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+configColumns+` FROM platform_config WHERE id = 1`)

	return scanConfig(row)
}

func (r *platformRepo) LockConfig(tx *sql.Tx) (platform.Config, error) {
	row := tx.QueryRow(
		`SELECT ` + configColumns + ` FROM platform_config WHERE id = 1 FOR UPDATE`)

	return scanConfig(row)
}

// setField writes one column of the singleton row. Column names come from the
// fixed set below, never from input.
func setField(tx *sql.Tx, column string, value int64) error {
	_, err := tx.Exec(fmt.Sprintf(`
		UPDATE platform_config
		SET %s = $1
		WHERE id = 1
	`, column), value)
	if err != nil {
		return fmt.Errorf("set %s: %w", column, err)
	}

	return nil
}

func (r *platformRepo) SetUnitPrice(tx *sql.Tx, price int64) error {
	return setField(tx, "unit_price", price)
}

func (r *platformRepo) SetFeeRate(tx *sql.Tx, rate int64) error {
	return setField(tx, "fee_rate_percent", rate)
}

func (r *platformRepo) SetReimbursementRate(tx *sql.Tx, rate int64) error {
	return setField(tx, "reimbursement_rate_percent", rate)
}

func (r *platformRepo) SetPerUserCap(tx *sql.Tx, limit int64) error {
	return setField(tx, "per_user_cap", limit)
}

func (r *platformRepo) SetReserveCeiling(tx *sql.Tx, limit int64) error {
	return setField(tx, "reserve_ceiling", limit)
}

func (r *platformRepo) SetCirculating(tx *sql.Tx, total int64) error {
	return setField(tx, "circulating", total)
}
