package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers expose sub-repositories
// so that transactional work goes through Tx rather than nesting.
type Store interface {
	Accounts() Accounts
	Customers() Customers
	Bookings() Bookings
	Expenses() Expenses
	Reports() Reports
	Slots() Slots

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when it returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail matches case-insensitively.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount returns ErrAlreadyExists for a taken email.
	CreateAccount(ctx context.Context, a domain.Account) error

	IsEmpty(ctx context.Context) (bool, error)
}

type Customers interface {
	CreateCustomer(ctx context.Context, c domain.Customer) error
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)
	ListCustomers(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error)

	// UpdateCustomer overwrites the mutable fields and bumps updated_at.
	UpdateCustomer(ctx context.Context, c domain.Customer) error
}

type Bookings interface {
	CreateBooking(ctx context.Context, b domain.Booking) error
	GetBookingByID(ctx context.Context, id string) (domain.Booking, error)
	ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error)
}

type Expenses interface {
	CreateExpense(ctx context.Context, e domain.Expense) error

	// ListExpenses returns the newest expenses first.
	ListExpenses(ctx context.Context, f domain.ExpenseFilter) ([]domain.Expense, error)
}

type Reports interface {
	// HotelReports returns one row per hotel with a booking checked in or an
	// expense incurred in the period, ordered by hotel id.
	HotelReports(ctx context.Context, p domain.ReportPeriod) ([]domain.HotelReport, error)
}

// Slots is durable key/value storage for small opaque blobs, such as the
// sealed session record.
type Slots interface {
	// GetSlot returns ErrNotFound for a missing key.
	GetSlot(ctx context.Context, key string) ([]byte, error)
	PutSlot(ctx context.Context, key string, value []byte) error

	// DeleteSlot succeeds for a missing key.
	DeleteSlot(ctx context.Context, key string) error
}
