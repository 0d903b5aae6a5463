package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/idx"
)

var ErrInvalidCustomer = errors.New("invalid_customer")

// MaxListLimit caps listing page size.
const MaxListLimit = 200

type CustomerService struct {
	Store store.Store
}

func (s *CustomerService) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c = tidyCustomer(c)
	if c.Name == "" {
		return domain.Customer{}, ErrInvalidCustomer
	}

	c.ID = idx.NewString()
	c.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	c.UpdatedAt = c.CreatedAt

	if err := s.Store.Customers().CreateCustomer(ctx, c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (domain.Customer, error) {
	return s.Store.Customers().GetCustomerByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error) {
	f.Limit = clampLimit(f.Limit)
	return s.Store.Customers().ListCustomers(ctx, f)
}

// Update applies patch to the customer with id and returns the result.
func (s *CustomerService) Update(ctx context.Context, id string, patch domain.CustomerPatch) (domain.Customer, error) {
	var out domain.Customer
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Customers().GetCustomerByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			out = cur
			return nil
		}

		next := tidyCustomer(patch.Apply(cur))
		if next.Name == "" {
			return ErrInvalidCustomer
		}
		if err := tx.Customers().UpdateCustomer(ctx, next); err != nil {
			return err
		}

		out, err = tx.Customers().GetCustomerByID(ctx, id)
		return err
	})
	return out, err
}

func tidyCustomer(c domain.Customer) domain.Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = normalizeEmail(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	return c
}

func clampLimit(n int) int {
	if n <= 0 || n > MaxListLimit {
		return MaxListLimit
	}
	return n
}
