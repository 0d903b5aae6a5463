package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingActive, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a stay plus its expenses. Amounts are integer minor units
// (cents).
type Booking struct {
	ID                 string
	CustomerID         string
	HotelID            string
	RoomNumber         string
	CheckIn            time.Time
	CheckOut           *time.Time
	RoomCharges        int64
	LaundryCharges     int64
	RoomServiceCharges int64
	OtherCharges       int64
	TotalAmount        int64
	Status             BookingStatus
	Notes              string
	CreatedAt          time.Time
}

// Total is the sum of all charge lines. ok is false when a line is negative
// or the sum does not fit in an int64.
func (b Booking) Total() (total int64, ok bool) {
	for _, c := range []int64{b.RoomCharges, b.LaundryCharges, b.RoomServiceCharges, b.OtherCharges} {
		if c < 0 || total > math.MaxInt64-c {
			return 0, false
		}
		total += c
	}
	return total, true
}

const (
	BookingOrderCheckIn   = "check_in"
	BookingOrderCreatedAt = "created_at"
)

// BookingFilter selects bookings. Empty fields do not filter.
type BookingFilter struct {
	CustomerID string
	HotelID    string
	Status     BookingStatus
	OrderBy    string // BookingOrderCreatedAt (default) or BookingOrderCheckIn
	Asc        bool
	Limit      int
}
