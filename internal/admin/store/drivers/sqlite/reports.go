package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
)

type reportsRepo struct {
	db dbtx
}

func (r *reportsRepo) HotelReports(ctx context.Context, p domain.ReportPeriod) ([]domain.HotelReport, error) {
	bookWhere, bookArgs := periodWhere("check_in", p.From, p.To)
	bookWhere = append(bookWhere, "status != ?")
	bookArgs = append(bookArgs, string(domain.BookingCancelled))

	expWhere, expArgs := periodWhere("incurred_on", p.From, p.To)

	if p.HotelID != "" {
		bookWhere = append(bookWhere, "hotel_id = ?")
		bookArgs = append(bookArgs, p.HotelID)
		expWhere = append(expWhere, "hotel_id = ?")
		expArgs = append(expArgs, p.HotelID)
	}

	q := `SELECT hotel_id, SUM(revenue), SUM(bookings), SUM(spent), SUM(expenses) FROM (
		SELECT hotel_id, total_amount AS revenue, 1 AS bookings, 0 AS spent, 0 AS expenses
		FROM bookings WHERE ` + strings.Join(bookWhere, " AND ") + `
		UNION ALL
		SELECT hotel_id, 0, 0, amount, 1 FROM expenses` + whereClause(expWhere) + `
	) GROUP BY hotel_id ORDER BY hotel_id`

	rows, err := r.db.QueryContext(ctx, q, append(bookArgs, expArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelReport
	for rows.Next() {
		var h domain.HotelReport
		if err := rows.Scan(&h.HotelID, &h.Revenue, &h.BookingCount, &h.Expenses, &h.ExpenseCount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// periodWhere bounds col to [from, to). Zero ends add nothing.
func periodWhere(col string, from, to time.Time) ([]string, []any) {
	var (
		where []string
		args  []any
	)
	if !from.IsZero() {
		where = append(where, col+" >= ?")
		args = append(args, toMillis(from))
	}
	if !to.IsZero() {
		where = append(where, col+" < ?")
		args = append(args, toMillis(to))
	}
	return where, args
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where, " AND ")
}
