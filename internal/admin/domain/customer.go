package domain

import "time"

type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerPatch carries the fields of an update; nil leaves a field alone.
type CustomerPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

func (p CustomerPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Address == nil
}

func (p CustomerPatch) Apply(c Customer) Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	return c
}

const (
	CustomerOrderCreatedAt = "created_at"
	CustomerOrderName      = "name"
)

// CustomerFilter selects customers. The zero value lists newest first.
type CustomerFilter struct {
	Search  string // substring of name, email or phone
	OrderBy string // CustomerOrderCreatedAt (default) or CustomerOrderName
	Asc     bool
	Limit   int
}
