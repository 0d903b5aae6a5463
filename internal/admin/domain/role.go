package domain

import (
	"errors"
	"strings"
)

var ErrUnknownRole = errors.New("domain: unknown role")

// Role governs which console views and actions an identity may use.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleOwner, RoleManager, RoleAccountant}

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleAccountant:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}
