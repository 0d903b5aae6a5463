package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, display_name, role, hotel_id, password_hash, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var (
		a         domain.Account
		role      string
		hotelID   sql.NullString
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &role, &hotelID, &a.PasswordHash, &createdAt, &updatedAt); err != nil {
		return domain.Account{}, err
	}
	a.Role = domain.Role(role)
	a.HotelID = hotelID.String
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ? COLLATE NOCASE`, email)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	ts := now()
	if !a.CreatedAt.IsZero() {
		ts = a.CreatedAt
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.DisplayName, string(a.Role), nullString(a.HotelID), a.PasswordHash,
		toMillis(ts), toMillis(ts),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
