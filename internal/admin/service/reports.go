package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
)

type ReportService struct {
	Store store.Store
}

// HotelReports compares booking revenue with expenses per hotel over p.
// Managers get their own hotel only.
func (s *ReportService) HotelReports(ctx context.Context, actor domain.Identity, p domain.ReportPeriod) ([]domain.HotelReport, error) {
	hotel, err := scopeHotel(actor, p.HotelID)
	if err != nil {
		return nil, err
	}
	p.HotelID = hotel

	if err := checkPeriod(p.From, p.To); err != nil {
		return nil, err
	}
	return s.Store.Reports().HotelReports(ctx, p)
}

// scopeHotel resolves the hotel a listing is confined to.
func scopeHotel(actor domain.Identity, requested string) (string, error) {
	scope, ok := actor.HotelScope()
	if !ok {
		return requested, nil
	}
	if requested != "" && requested != scope {
		return "", ErrForbiddenHotel
	}
	return scope, nil
}

func checkPeriod(from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return fmt.Errorf("%w: from must precede to", ErrInvalidPeriod)
	}
	return nil
}
