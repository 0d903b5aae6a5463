package domain

import "time"

// Account is a console login. Identity is derived from it on login.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	Role         Role
	HotelID      string
	PasswordHash string // argon2id, PHC encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Account) Identity() Identity {
	id := Identity{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Role:        a.Role,
	}
	if a.Role == RoleManager {
		id.AssignedHotelID = a.HotelID
	}
	return id
}
