package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/idx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

var (
	ErrInvalidBooking  = errors.New("invalid_booking")
	ErrUnknownCustomer = errors.New("unknown_customer")

	// ErrForbiddenHotel is returned when a hotel-scoped manager reaches for
	// another hotel's records.
	ErrForbiddenHotel = errors.New("forbidden_hotel")
)

type BookingService struct {
	Store store.Store
}

// Create stores a booking on behalf of actor. The total is always computed
// here from the charge lines and the status defaults to active. A manager's
// booking defaults to, and is confined to, their assigned hotel.
func (s *BookingService) Create(ctx context.Context, actor domain.Identity, b domain.Booking) (domain.Booking, error) {
	b.HotelID = strings.TrimSpace(b.HotelID)
	if scope, ok := actor.HotelScope(); ok && b.HotelID == "" {
		b.HotelID = scope
	}
	if !actor.CanActOnHotel(b.HotelID) {
		slogx.FromContext(ctx).Warn("booking rejected: outside assigned hotel",
			"account_id", actor.ID, "hotel_id", b.HotelID)
		return domain.Booking{}, ErrForbiddenHotel
	}

	if err := validateBooking(b); err != nil {
		return domain.Booking{}, err
	}
	if b.Status == "" {
		b.Status = domain.BookingActive
	}

	b.ID = idx.NewString()
	b.TotalAmount, _ = b.Total()
	b.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Customers().GetCustomerByID(ctx, b.CustomerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownCustomer
			}
			return err
		}
		return tx.Bookings().CreateBooking(ctx, b)
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// Get returns a booking if actor may see its hotel.
func (s *BookingService) Get(ctx context.Context, actor domain.Identity, id string) (domain.Booking, error) {
	b, err := s.Store.Bookings().GetBookingByID(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !actor.CanActOnHotel(b.HotelID) {
		return domain.Booking{}, ErrForbiddenHotel
	}
	return b, nil
}

// List returns bookings matching f. A hotel-scoped manager only ever sees
// their hotel; asking for another one is ErrForbiddenHotel.
func (s *BookingService) List(ctx context.Context, actor domain.Identity, f domain.BookingFilter) ([]domain.Booking, error) {
	if scope, ok := actor.HotelScope(); ok {
		if f.HotelID != "" && f.HotelID != scope {
			return nil, ErrForbiddenHotel
		}
		f.HotelID = scope
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidBooking, f.Status)
	}
	f.Limit = clampLimit(f.Limit)
	return s.Store.Bookings().ListBookings(ctx, f)
}

func validateBooking(b domain.Booking) error {
	switch {
	case b.CustomerID == "":
		return fmt.Errorf("%w: customer is required", ErrInvalidBooking)
	case b.HotelID == "":
		return fmt.Errorf("%w: hotel is required", ErrInvalidBooking)
	case b.CheckIn.IsZero():
		return fmt.Errorf("%w: check-in is required", ErrInvalidBooking)
	case b.CheckOut != nil && b.CheckOut.Before(b.CheckIn):
		return fmt.Errorf("%w: check-out precedes check-in", ErrInvalidBooking)
	case b.RoomCharges < 0 || b.LaundryCharges < 0 || b.RoomServiceCharges < 0 || b.OtherCharges < 0:
		return fmt.Errorf("%w: charges cannot be negative", ErrInvalidBooking)
	case !totalFits(b):
		return fmt.Errorf("%w: charges total is too large", ErrInvalidBooking)
	case b.Status != "" && !b.Status.Valid():
		return fmt.Errorf("%w: status %q", ErrInvalidBooking, b.Status)
	}
	return nil
}

func totalFits(b domain.Booking) bool {
	_, ok := b.Total()
	return ok
}
