package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer database stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts   { return &accountsRepo{db: t.tx} }
func (t *txStore) Customers() store.Customers { return &customersRepo{db: t.tx} }
func (t *txStore) Bookings() store.Bookings   { return &bookingsRepo{db: t.tx} }
func (t *txStore) Expenses() store.Expenses   { return &expensesRepo{db: t.tx} }
func (t *txStore) Reports() store.Reports     { return &reportsRepo{db: t.tx} }
func (t *txStore) Slots() store.Slots         { return &slotsRepo{db: t.tx} }

// ApplyMigrations is a no-op; migrate before opening transactions.
func (t *txStore) ApplyMigrations() error { return nil }
