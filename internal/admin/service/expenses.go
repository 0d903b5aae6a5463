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
	ErrInvalidExpense = errors.New("invalid_expense")
	ErrInvalidPeriod  = errors.New("invalid_period")
)

type ExpenseService struct {
	Store store.Store
}

// Record stores an expense on behalf of actor. Like bookings, a manager's
// expense defaults to and is confined to their assigned hotel.
func (s *ExpenseService) Record(ctx context.Context, actor domain.Identity, e domain.Expense) (domain.Expense, error) {
	e.HotelID = strings.TrimSpace(e.HotelID)
	e.Description = strings.TrimSpace(e.Description)
	if scope, ok := actor.HotelScope(); ok && e.HotelID == "" {
		e.HotelID = scope
	}
	if !actor.CanActOnHotel(e.HotelID) {
		slogx.FromContext(ctx).Warn("expense rejected: outside assigned hotel",
			"account_id", actor.ID, "hotel_id", e.HotelID)
		return domain.Expense{}, ErrForbiddenHotel
	}

	switch {
	case e.HotelID == "":
		return domain.Expense{}, fmt.Errorf("%w: hotel is required", ErrInvalidExpense)
	case !e.Category.Valid():
		return domain.Expense{}, fmt.Errorf("%w: category %q", ErrInvalidExpense, e.Category)
	case e.Amount <= 0:
		return domain.Expense{}, fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	case e.IncurredOn.IsZero():
		return domain.Expense{}, fmt.Errorf("%w: date is required", ErrInvalidExpense)
	}

	e.ID = idx.NewString()
	e.IncurredOn = e.IncurredOn.UTC().Truncate(time.Millisecond)
	e.CreatedBy = actor.ID
	e.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := s.Store.Expenses().CreateExpense(ctx, e); err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}

// List returns expenses matching f, newest first. A hotel-scoped manager
// only ever sees their hotel.
func (s *ExpenseService) List(ctx context.Context, actor domain.Identity, f domain.ExpenseFilter) ([]domain.Expense, error) {
	hotel, err := scopeHotel(actor, f.HotelID)
	if err != nil {
		return nil, err
	}
	f.HotelID = hotel

	if f.Category != "" && !f.Category.Valid() {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidExpense, f.Category)
	}
	if err := checkPeriod(f.From, f.To); err != nil {
		return nil, err
	}
	f.Limit = clampLimit(f.Limit)
	return s.Store.Expenses().ListExpenses(ctx, f)
}
