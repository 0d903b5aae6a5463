package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*sqlite.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewStoreFromDB(db), mock
}

func TestDriverErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	diskIO := errors.New("disk I/O error")

	t.Run("slot read", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectQuery("SELECT value FROM local_slots").WithArgs("auth-storage").WillReturnError(diskIO)

		_, err := st.Slots().GetSlot(ctx, "auth-storage")
		require.ErrorIs(t, err, diskIO)
		require.NotErrorIs(t, err, store.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectQuery("SELECT value FROM local_slots").WillReturnError(sql.ErrNoRows)

		_, err := st.Slots().GetSlot(ctx, "auth-storage")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation maps to already exists", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO accounts").
			WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: accounts.email (2067)"))

		err := st.Accounts().CreateAccount(ctx, domain.Account{ID: "a", Email: "x@example.com", Role: domain.RoleOwner})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("listing query failure", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM customers").WillReturnError(diskIO)

		_, err := st.Customers().ListCustomers(ctx, domain.CustomerFilter{})
		require.ErrorIs(t, err, diskIO)
	})

	t.Run("update matching nothing", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectExec("UPDATE customers").WillReturnResult(sqlmock.NewResult(0, 0))

		err := st.Customers().UpdateCustomer(ctx, domain.Customer{ID: "missing"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("transaction rollback on error", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM local_slots").WillReturnError(diskIO)
		mock.ExpectRollback()

		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Slots().DeleteSlot(ctx, "auth-storage")
		})
		require.ErrorIs(t, err, diskIO)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
