package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/listings"
)

var _ listings.Listings = (*listingsRepo)(nil)

type listingsRepo struct{ db *sql.DB }

func New(db *sql.DB) *listingsRepo {
	return &listingsRepo{db: db}
}

func (r *listingsRepo) Get(ctx context.Context, ownerID uint64) (listings.Listing, error) {
	var l listings.Listing

	err := r.db.QueryRowContext(ctx, `
		SELECT quantity, unit_price
		FROM listings
		WHERE owner_id = $1
	`, ownerID).Scan(&l.Quantity, &l.UnitPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listings.Listing{}, nil
		}

		return listings.Listing{}, fmt.Errorf("get listing: %w", err)
	}

	return l, nil
}

func (r *listingsRepo) LockGet(tx *sql.Tx, ownerID uint64) (listings.Listing, error) {
	_, err := tx.Exec(`
		INSERT INTO listings (owner_id) VALUES ($1)
		ON CONFLICT (owner_id) DO NOTHING
	`, ownerID)
	if err != nil {
		return listings.Listing{}, fmt.Errorf("ensure listing: %w", err)
	}

	var l listings.Listing

	err = tx.QueryRow(`
		SELECT quantity, unit_price
		FROM listings
		WHERE owner_id = $1
		FOR UPDATE
	`, ownerID).Scan(&l.Quantity, &l.UnitPrice)
	if err != nil {
		return listings.Listing{}, fmt.Errorf("lock/get listing: %w", err)
	}

	return l, nil
}

func (r *listingsRepo) Set(tx *sql.Tx, ownerID uint64, quantity, unitPrice int64) error {
	_, err := tx.Exec(`
		INSERT INTO listings (owner_id, quantity, unit_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price
	`, ownerID, quantity, unitPrice)
	if err != nil {
		return fmt.Errorf("set listing: %w", err)
	}

	return nil
}
