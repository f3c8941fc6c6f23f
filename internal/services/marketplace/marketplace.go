package marketplace

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/deborahajagbe/clarity-edu-platform/internal/infra/pgutils"
	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts"
	pgaccounts "github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts/postgres"
	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/listings"
	pglistings "github.com/deborahajagbe/clarity-edu-platform/internal/repos/listings/postgres"
	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/platform"
	pgplatform "github.com/deborahajagbe/clarity-edu-platform/internal/repos/platform/postgres"
)

// Service orchestrates the marketplace operations. Each operation is a single
// database transaction: the platform config row is locked first, then every
// touched account row in ascending id order, then the listing. Any failed
// precondition rolls the whole transaction back.
type Service struct {
	db       *sql.DB
	accounts accounts.Accounts
	listings listings.Listings
	platform platform.Platform
}

func New(dbx *sql.DB) *Service {
	return &Service{
		db:       dbx,
		accounts: pgaccounts.New(dbx),
		listings: pglistings.New(dbx),
		platform: pgplatform.New(dbx),
	}
}

// lockAccounts locks the given account rows in ascending id order (duplicates
// collapsed) and returns their balances. The fixed order avoids deadlocks
// between concurrent operations touching overlapping account sets.
func (s *Service) lockAccounts(tx *sql.Tx, ids ...uint64) (map[uint64]accounts.Balances, error) {
	slices.Sort(ids)
	ids = slices.Compact(ids)

	locked := make(map[uint64]accounts.Balances, len(ids))

	for _, id := range ids {
		b, err := s.accounts.LockBalances(tx, id)
		if err != nil {
			return nil, fmt.Errorf("lock account %d: %w", id, err)
		}

		locked[id] = b
	}

	return locked, nil
}

// ListResources puts quantity units of the lister's resource balance up for
// sale at unitPrice. The new price applies to the whole listing, including
// previously listed unsold units.
func (s *Service) ListResources(ctx context.Context, lister uint64, quantity, unitPrice int64) error {
	if quantity <= 0 {
		return fmt.Errorf("list %d: %w", quantity, ErrInvalidQuantity)
	}

	if unitPrice <= 0 {
		return fmt.Errorf("list at %d: %w", unitPrice, ErrInvalidPrice)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.platform.LockConfig(tx)
		if err != nil {
			return fmt.Errorf("lock config: %w", err)
		}

		bal, err := s.accounts.LockBalances(tx, lister)
		if err != nil {
			return fmt.Errorf("lock lister: %w", err)
		}

		listed, err := s.listings.LockGet(tx, lister)
		if err != nil {
			return fmt.Errorf("lock listing: %w", err)
		}

		newListed, err := checkedAdd(listed.Quantity, quantity)
		if err != nil {
			return err
		}

		// The whole listing is a reservation out of the owned quantity.
		if bal.Resource < newListed {
			return fmt.Errorf("resource balance %d below listed total %d: %w",
				bal.Resource, newListed, accounts.ErrInsufficientBalance)
		}

		next, err := nextCirculating(cfg.Circulating, quantity, cfg.ReserveCeiling)
		if err != nil {
			return err
		}

		err = s.platform.SetCirculating(tx, next)
		if err != nil {
			return fmt.Errorf("set circulating: %w", err)
		}

		err = s.listings.Set(tx, lister, newListed, unitPrice)
		if err != nil {
			return fmt.Errorf("set listing: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("list resources: %w", err)
	}

	return nil
}

// RemoveResources takes quantity units off the lister's listing, preserving
// the listed price for whatever remains.
func (s *Service) RemoveResources(ctx context.Context, lister uint64, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("remove %d: %w", quantity, ErrInvalidQuantity)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.platform.LockConfig(tx)
		if err != nil {
			return fmt.Errorf("lock config: %w", err)
		}

		listed, err := s.listings.LockGet(tx, lister)
		if err != nil {
			return fmt.Errorf("lock listing: %w", err)
		}

		if listed.Quantity < quantity {
			return fmt.Errorf("listed quantity %d below %d: %w",
				listed.Quantity, quantity, accounts.ErrInsufficientBalance)
		}

		next, err := nextCirculating(cfg.Circulating, -quantity, cfg.ReserveCeiling)
		if err != nil {
			return err
		}

		err = s.platform.SetCirculating(tx, next)
		if err != nil {
			return fmt.Errorf("set circulating: %w", err)
		}

		err = s.listings.Set(tx, lister, listed.Quantity-quantity, listed.UnitPrice)
		if err != nil {
			return fmt.Errorf("set listing: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("remove resources: %w", err)
	}

	return nil
}

// AcquireResources buys quantity units from the provider's listing at its
// listed price plus the platform fee. The resource stays in circulation, so
// the reserve state is untouched; the buyer's currency debit equals the
// provider's and platform's credits exactly.
func (s *Service) AcquireResources(ctx context.Context, buyer, provider uint64, quantity int64) error {
	if buyer == provider {
		return fmt.Errorf("user %d: %w", buyer, ErrSameUserTransaction)
	}

	if quantity <= 0 {
		return fmt.Errorf("acquire %d: %w", quantity, ErrInvalidQuantity)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.platform.LockConfig(tx)
		if err != nil {
			return fmt.Errorf("lock config: %w", err)
		}

		bals, err := s.lockAccounts(tx, buyer, provider, cfg.PlatformAccountID)
		if err != nil {
			return err
		}

		listed, err := s.listings.LockGet(tx, provider)
		if err != nil {
			return fmt.Errorf("lock listing: %w", err)
		}

		if listed.Quantity < quantity {
			return fmt.Errorf("provider listed %d below %d: %w",
				listed.Quantity, quantity, accounts.ErrInsufficientBalance)
		}

		if bals[provider].Resource < quantity {
			return fmt.Errorf("provider resource balance %d below %d: %w",
				bals[provider].Resource, quantity, accounts.ErrInsufficientBalance)
		}

		cost, err := checkedMul(quantity, listed.UnitPrice)
		if err != nil {
			return err
		}

		fee, err := platformFee(cost, cfg.FeeRatePercent)
		if err != nil {
			return err
		}

		total, err := checkedAdd(cost, fee)
		if err != nil {
			return err
		}

		if bals[buyer].Currency < total {
			return fmt.Errorf("buyer currency balance %d below %d: %w",
				bals[buyer].Currency, total, accounts.ErrInsufficientBalance)
		}

		err = s.accounts.Debit(tx, provider, accounts.AssetResource, quantity)
		if err != nil {
			return fmt.Errorf("debit provider resource: %w", err)
		}

		err = s.listings.Set(tx, provider, listed.Quantity-quantity, listed.UnitPrice)
		if err != nil {
			return fmt.Errorf("shrink listing: %w", err)
		}

		err = s.accounts.Debit(tx, buyer, accounts.AssetCurrency, total)
		if err != nil {
			return fmt.Errorf("debit buyer currency: %w", err)
		}

		err = s.accounts.Credit(tx, buyer, accounts.AssetResource, quantity)
		if err != nil {
			return fmt.Errorf("credit buyer resource: %w", err)
		}

		err = s.accounts.Credit(tx, provider, accounts.AssetCurrency, cost)
		if err != nil {
			return fmt.Errorf("credit provider currency: %w", err)
		}

		err = s.accounts.Credit(tx, cfg.PlatformAccountID, accounts.AssetCurrency, fee)
		if err != nil {
			return fmt.Errorf("credit platform fee: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("acquire resources: %w", err)
	}

	return nil
}

// RequestReimbursement returns quantity resource units to the platform for a
// currency payout at the configured fractional rate of their nominal value.
// The units are retired to the platform's holding, not destroyed, and leave
// circulation.
func (s *Service) RequestReimbursement(ctx context.Context, requester uint64, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("reimburse %d: %w", quantity, ErrInvalidQuantity)
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.platform.LockConfig(tx)
		if err != nil {
			return fmt.Errorf("lock config: %w", err)
		}

		bals, err := s.lockAccounts(tx, requester, cfg.PlatformAccountID)
		if err != nil {
			return err
		}

		amount, err := reimbursementAmount(quantity, cfg.UnitPrice, cfg.ReimbursementRatePercent)
		if err != nil {
			return err
		}

		if bals[requester].Resource < quantity {
			return fmt.Errorf("resource balance %d below %d: %w",
				bals[requester].Resource, quantity, accounts.ErrInsufficientBalance)
		}

		if bals[cfg.PlatformAccountID].Currency < amount {
			return fmt.Errorf("platform currency balance %d below payout %d: %w",
				bals[cfg.PlatformAccountID].Currency, amount, ErrRefundUnavailable)
		}

		err = s.accounts.Debit(tx, requester, accounts.AssetResource, quantity)
		if err != nil {
			return fmt.Errorf("debit requester resource: %w", err)
		}

		err = s.accounts.Credit(tx, requester, accounts.AssetCurrency, amount)
		if err != nil {
			return fmt.Errorf("credit requester currency: %w", err)
		}

		err = s.accounts.Debit(tx, cfg.PlatformAccountID, accounts.AssetCurrency, amount)
		if err != nil {
			return fmt.Errorf("debit platform currency: %w", err)
		}

		err = s.accounts.Credit(tx, cfg.PlatformAccountID, accounts.AssetResource, quantity)
		if err != nil {
			return fmt.Errorf("credit platform resource: %w", err)
		}

		next, err := nextCirculating(cfg.Circulating, -quantity, cfg.ReserveCeiling)
		if err != nil {
			return err
		}

		err = s.platform.SetCirculating(tx, next)
		if err != nil {
			return fmt.Errorf("set circulating: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("request reimbursement: %w", err)
	}

	return nil
}

// GetBalances returns a user's balances; users never referenced before read
// as zero.
func (s *Service) GetBalances(ctx context.Context, userID uint64) (accounts.Balances, error) {
	b, err := s.accounts.GetBalances(ctx, userID)
	if err != nil {
		return accounts.Balances{}, fmt.Errorf("get balances: %w", err)
	}

	return b, nil
}

// GetListing returns a user's listing; owners who never listed read as zero.
func (s *Service) GetListing(ctx context.Context, ownerID uint64) (listings.Listing, error) {
	l, err := s.listings.Get(ctx, ownerID)
	if err != nil {
		return listings.Listing{}, fmt.Errorf("get listing: %w", err)
	}

	return l, nil
}

// GetConfig returns the current platform configuration snapshot.
func (s *Service) GetConfig(ctx context.Context) (platform.Config, error) {
	cfg, err := s.platform.GetConfig(ctx)
	if err != nil {
		return platform.Config{}, fmt.Errorf("get config: %w", err)
	}

	return cfg, nil
}
