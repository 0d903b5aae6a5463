package http

import (
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
)

func toIdentity(id domain.Identity) *adminsdk.Identity {
	return &adminsdk.Identity{
		ID:              id.ID,
		Email:           id.Email,
		DisplayName:     id.DisplayName,
		Role:            id.Role.String(),
		AssignedHotelID: id.AssignedHotelID,
	}
}

func toNotification(n domain.Notification) adminsdk.Notification {
	return adminsdk.Notification{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Severity:  string(n.Severity),
		CreatedAt: n.CreatedAt.UnixMilli(),
		Read:      n.Read,
	}
}

func toCustomer(c domain.Customer) adminsdk.Customer {
	return adminsdk.Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toBooking(b domain.Booking) adminsdk.Booking {
	return adminsdk.Booking{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		HotelID:            b.HotelID,
		RoomNumber:         b.RoomNumber,
		CheckIn:            b.CheckIn,
		CheckOut:           b.CheckOut,
		RoomCharges:        b.RoomCharges,
		LaundryCharges:     b.LaundryCharges,
		RoomServiceCharges: b.RoomServiceCharges,
		OtherCharges:       b.OtherCharges,
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
	}
}

func fromCreateBooking(req adminsdk.CreateBookingRequest) domain.Booking {
	return domain.Booking{
		CustomerID:         req.CustomerID,
		HotelID:            req.HotelID,
		RoomNumber:         req.RoomNumber,
		CheckIn:            req.CheckIn.UTC(),
		CheckOut:           utcPtr(req.CheckOut),
		RoomCharges:        req.RoomCharges,
		LaundryCharges:     req.LaundryCharges,
		RoomServiceCharges: req.RoomServiceCharges,
		OtherCharges:       req.OtherCharges,
		Status:             domain.BookingStatus(req.Status),
		Notes:              req.Notes,
	}
}

func toExpense(e domain.Expense) adminsdk.Expense {
	return adminsdk.Expense{
		ID:          e.ID,
		HotelID:     e.HotelID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Date:        e.IncurredOn.Format(dateLayout),
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toHotelReport(r domain.HotelReport) adminsdk.HotelReport {
	return adminsdk.HotelReport{
		HotelID:      r.HotelID,
		Revenue:      r.Revenue,
		Expenses:     r.Expenses,
		Profit:       r.Profit(),
		BookingCount: r.BookingCount,
		ExpenseCount: r.ExpenseCount,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
