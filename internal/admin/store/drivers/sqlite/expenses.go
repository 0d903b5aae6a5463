package sqlite

import (
	"context"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
)

type expensesRepo struct {
	db dbtx
}

const expenseColumns = `id, hotel_id, category, amount, incurred_on, description, created_by, created_at`

func scanExpense(row interface{ Scan(...any) error }) (domain.Expense, error) {
	var (
		e                 domain.Expense
		category          string
		incurred, created int64
	)
	err := row.Scan(&e.ID, &e.HotelID, &category, &e.Amount, &incurred, &e.Description, &e.CreatedBy, &created)
	if err != nil {
		return domain.Expense{}, err
	}
	e.Category = domain.ExpenseCategory(category)
	e.IncurredOn = fromMillis(incurred)
	e.CreatedAt = fromMillis(created)
	return e, nil
}

func (r *expensesRepo) CreateExpense(ctx context.Context, e domain.Expense) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.HotelID, string(e.Category), e.Amount, toMillis(e.IncurredOn),
		e.Description, e.CreatedBy, toMillis(created),
	)
	return mapConstraint(err)
}

func (r *expensesRepo) ListExpenses(ctx context.Context, f domain.ExpenseFilter) ([]domain.Expense, error) {
	where, args := periodWhere("incurred_on", f.From, f.To)
	if f.HotelID != "" {
		where = append(where, "hotel_id = ?")
		args = append(args, f.HotelID)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(f.Category))
	}

	q := `SELECT ` + expenseColumns + ` FROM expenses` + whereClause(where) + " ORDER BY incurred_on DESC, id DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
