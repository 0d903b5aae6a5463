package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
)

type bookingsRepo struct {
	db dbtx
}

const bookingColumns = `id, customer_id, hotel_id, room_number, check_in, check_out,
	room_charges, laundry_charges, room_service_charges, other_charges, total_amount,
	status, notes, created_at`

var bookingOrder = map[string]string{
	"":                           "created_at",
	domain.BookingOrderCreatedAt: "created_at",
	domain.BookingOrderCheckIn:   "check_in",
}

func scanBooking(row interface{ Scan(...any) error }) (domain.Booking, error) {
	var (
		b                domain.Booking
		room, notes      sql.NullString
		checkIn, created int64
		checkOut         sql.NullInt64
		status           string
	)
	err := row.Scan(&b.ID, &b.CustomerID, &b.HotelID, &room, &checkIn, &checkOut,
		&b.RoomCharges, &b.LaundryCharges, &b.RoomServiceCharges, &b.OtherCharges, &b.TotalAmount,
		&status, &notes, &created)
	if err != nil {
		return domain.Booking{}, err
	}
	b.RoomNumber = room.String
	b.Notes = notes.String
	b.CheckIn = fromMillis(checkIn)
	b.CheckOut = timePtr(checkOut)
	b.Status = domain.BookingStatus(status)
	b.CreatedAt = fromMillis(created)
	return b, nil
}

func (r *bookingsRepo) CreateBooking(ctx context.Context, b domain.Booking) error {
	created := b.CreatedAt
	if created.IsZero() {
		created = now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.CustomerID, b.HotelID, nullString(b.RoomNumber), toMillis(b.CheckIn), nullMillis(b.CheckOut),
		b.RoomCharges, b.LaundryCharges, b.RoomServiceCharges, b.OtherCharges, b.TotalAmount,
		string(b.Status), nullString(b.Notes), toMillis(created),
	)
	return mapConstraint(err)
}

func (r *bookingsRepo) GetBookingByID(ctx context.Context, id string) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, mapNotFound(err)
	}
	return b, nil
}

func (r *bookingsRepo) ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	var (
		where []string
		args  []any
	)
	if f.CustomerID != "" {
		where = append(where, "customer_id = ?")
		args = append(args, f.CustomerID)
	}
	if f.HotelID != "" {
		where = append(where, "hotel_id = ?")
		args = append(args, f.HotelID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}

	q := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}

	col, ok := bookingOrder[f.OrderBy]
	if !ok {
		col = bookingOrder[""]
	}
	dir := " DESC"
	if f.Asc {
		dir = " ASC"
	}
	q += " ORDER BY " + col + dir + ", id" + dir

	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
