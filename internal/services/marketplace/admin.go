package marketplace

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deborahajagbe/clarity-edu-platform/internal/infra/pgutils"
)

// Admin setters: guarded single-field writes to the platform config row. The
// caller must be the platform account.

func (s *Service) requireAdmin(tx *sql.Tx, caller uint64) error {
	cfg, err := s.platform.LockConfig(tx)
	if err != nil {
		return fmt.Errorf("lock config: %w", err)
	}

	if caller != cfg.PlatformAccountID {
		return fmt.Errorf("caller %d: %w", caller, ErrAdminOnly)
	}

	return nil
}

func (s *Service) SetUnitPrice(ctx context.Context, caller uint64, price int64) error {
	if price <= 0 {
		return fmt.Errorf("unit price %d: %w", price, ErrInvalidPrice)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.requireAdmin(tx, caller)
		if err != nil {
			return err
		}

		return s.platform.SetUnitPrice(tx, price)
	})
	if err != nil {
		return fmt.Errorf("set unit price: %w", err)
	}

	return nil
}

func (s *Service) SetFeeRate(ctx context.Context, caller uint64, rate int64) error {
	if rate < 0 || rate > 100 {
		return fmt.Errorf("fee rate %d: %w", rate, ErrInvalidFee)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.requireAdmin(tx, caller)
		if err != nil {
			return err
		}

		return s.platform.SetFeeRate(tx, rate)
	})
	if err != nil {
		return fmt.Errorf("set fee rate: %w", err)
	}

	return nil
}

func (s *Service) SetReimbursementRate(ctx context.Context, caller uint64, rate int64) error {
	if rate < 0 || rate > 100 {
		return fmt.Errorf("reimbursement rate %d: %w", rate, ErrInvalidFee)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.requireAdmin(tx, caller)
		if err != nil {
			return err
		}

		return s.platform.SetReimbursementRate(tx, rate)
	})
	if err != nil {
		return fmt.Errorf("set reimbursement rate: %w", err)
	}

	return nil
}

// SetReserveCeiling lowers or raises the circulating ceiling; it can never be
// set below what is already circulating.
func (s *Service) SetReserveCeiling(ctx context.Context, caller uint64, limit int64) error {
	if limit < 0 {
		return fmt.Errorf("reserve ceiling %d: %w", limit, ErrInvalidReserve)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.platform.LockConfig(tx)
		if err != nil {
			return fmt.Errorf("lock config: %w", err)
		}

		if caller != cfg.PlatformAccountID {
			return fmt.Errorf("caller %d: %w", caller, ErrAdminOnly)
		}

		if limit < cfg.Circulating {
			return fmt.Errorf("ceiling %d below circulating %d: %w",
				limit, cfg.Circulating, ErrInvalidReserve)
		}

		return s.platform.SetReserveCeiling(tx, limit)
	})
	if err != nil {
		return fmt.Errorf("set reserve ceiling: %w", err)
	}

	return nil
}

// SetPurchaseLimit stores the per-user cap. No marketplace operation consults
// it; the value is carried for parity with the platform's parameter surface.
func (s *Service) SetPurchaseLimit(ctx context.Context, caller uint64, limit int64) error {
	if limit < 0 {
		return fmt.Errorf("purchase limit %d: %w", limit, ErrInvalidQuantity)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.requireAdmin(tx, caller)
		if err != nil {
			return err
		}

		return s.platform.SetPerUserCap(tx, limit)
	})
	if err != nil {
		return fmt.Errorf("set purchase limit: %w", err)
	}

	return nil
}
