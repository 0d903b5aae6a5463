package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
)

type customersRepo struct {
	db dbtx
}

const customerColumns = `id, name, email, phone, address, created_at, updated_at`

// customerOrder whitelists ORDER BY columns.
var customerOrder = map[string]string{
	"":                            "created_at",
	domain.CustomerOrderCreatedAt: "created_at",
	domain.CustomerOrderName:      "name COLLATE NOCASE",
}

func scanCustomer(row interface{ Scan(...any) error }) (domain.Customer, error) {
	var (
		c                    domain.Customer
		createdAt, updatedAt int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &createdAt, &updatedAt); err != nil {
		return domain.Customer{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

func (r *customersRepo) CreateCustomer(ctx context.Context, c domain.Customer) error {
	created := c.CreatedAt
	if created.IsZero() {
		created = now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (`+customerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, toMillis(created), toMillis(created),
	)
	return mapConstraint(err)
}

func (r *customersRepo) GetCustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}
	return c, nil
}

func (r *customersRepo) ListCustomers(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error) {
	var (
		q    strings.Builder
		args []any
	)
	q.WriteString(`SELECT ` + customerColumns + ` FROM customers`)

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		q.WriteString(` WHERE (name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}

	col, ok := customerOrder[f.OrderBy]
	if !ok {
		col = customerOrder[""]
	}
	dir := " DESC"
	if f.Asc {
		dir = " ASC"
	}
	q.WriteString(" ORDER BY " + col + dir + ", id" + dir)

	if f.Limit > 0 {
		q.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *customersRepo) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET name = ?, email = ?, phone = ?, address = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Email, c.Phone, c.Address, toMillis(now()), c.ID,
	)
	return requireRow(res, err)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
