package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/deborahajagbe/clarity-edu-platform/internal/infra/pgtestutil"
	"github.com/deborahajagbe/clarity-edu-platform/internal/repos/accounts"
)

func seedAccount(t *testing.T, db *sql.DB, id uint64, resource, currency int64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO accounts (id, resource_balance, currency_balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET resource_balance = EXCLUDED.resource_balance,
		    currency_balance = EXCLUDED.currency_balance
	`, id, resource, currency)
	if err != nil {
		t.Fatalf("seed account %d: %v", id, err)
	}
}

func inTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx) error) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	err = fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	return nil
}

func TestAccounts_CreditAndDebit_TableDriven(t *testing.T) {
	t.Parallel()

	type tc struct {
		name         string
		seedResource int64
		seedCurrency int64
		asset        accounts.Asset
		credit       int64
		debit        int64
		want         accounts.Balances
		wantErr      error
	}

	tests := []tc{
		{
			name:         "credit_then_debit_resource",
			seedResource: 100,
			asset:        accounts.AssetResource,
			credit:       50,
			debit:        30,
			want:         accounts.Balances{Resource: 120},
		},
		{
			name:         "credit_then_debit_currency",
			seedCurrency: 1_000,
			asset:        accounts.AssetCurrency,
			credit:       0,
			debit:        1_000,
			want:         accounts.Balances{},
		},
		{
			name:         "debit_below_zero_rejected",
			seedResource: 10,
			asset:        accounts.AssetResource,
			debit:        11,
			wantErr:      accounts.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			seedAccount(t, db, 55, tt.seedResource, tt.seedCurrency)

			repo := New(db)

			err := inTx(t, db, func(tx *sql.Tx) error {
				if tt.credit > 0 {
					cerr := repo.Credit(tx, 55, tt.asset, tt.credit)
					if cerr != nil {
						return cerr
					}
				}

				if tt.debit > 0 {
					return repo.Debit(tx, 55, tt.asset, tt.debit)
				}

				return nil
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want error %v, got %v", tt.wantErr, err)
				}

				// Rolled back: the seeded balance must be intact.
				got, gerr := repo.GetBalances(context.Background(), 55)
				if gerr != nil {
					t.Fatalf("get balances: %v", gerr)
				}
				if got.Resource != tt.seedResource || got.Currency != tt.seedCurrency {
					t.Fatalf("balances changed after failed debit: %+v", got)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, gerr := repo.GetBalances(context.Background(), 55)
			if gerr != nil {
				t.Fatalf("get balances: %v", gerr)
			}
			if got != tt.want {
				t.Fatalf("balances: want %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestAccounts_UnknownAssetRejected(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(t, db, 1, 10, 10)

	repo := New(db)

	err := inTx(t, db, func(tx *sql.Tx) error {
		return repo.Credit(tx, 1, accounts.Asset("gold"), 5)
	})
	if !errors.Is(err, accounts.ErrUnknownAsset) {
		t.Fatalf("want ErrUnknownAsset, got %v", err)
	}
}
