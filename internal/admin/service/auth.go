package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
	"github.com/aussiebroadwan/hoteladmin/pkg/idx"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

// DemoPassword is shared by the seeded demo accounts.
const DemoPassword = "password"

// DemoAccounts are created on an empty database when demo seeding is on.
var DemoAccounts = []domain.Account{
	{Email: "owner@example.com", DisplayName: "John Owner", Role: domain.RoleOwner},
	{Email: "manager@example.com", DisplayName: "Jane Manager", Role: domain.RoleManager, HotelID: "1"},
	{Email: "accountant@example.com", DisplayName: "Bob Accountant", Role: domain.RoleAccountant},
}

type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer
	Hasher cryptox.PasswordHasher
	Issuer string
	TTL    time.Duration

	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Login checks the credentials and mints a session token for the account.
// Unknown emails and wrong passwords both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		l.Info("login rejected: unknown email")
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := s.Hasher.Verify(password, acct.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login rejected: wrong password", "account_id", acct.ID)
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("verify password: %w", err)
	}

	identity := acct.Identity()
	claims := jwtx.NewSessionClaims(
		identity.ID,
		identity.Email,
		identity.DisplayName,
		identity.Role.String(),
		identity.AssignedHotelID,
		s.TTL,
		s.Issuer,
		s.now(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign session token: %w", err)
	}

	return domain.Session{Identity: identity, Token: token}, nil
}

// CreateAccount hashes the password and stores a new account.
func (s *AuthService) CreateAccount(ctx context.Context, a domain.Account, password string) (domain.Account, error) {
	if !a.Role.Valid() {
		return domain.Account{}, domain.ErrUnknownRole
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	a.ID = idx.NewString()
	a.Email = normalizeEmail(a.Email)
	a.PasswordHash = hash
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	if a.Role != domain.RoleManager {
		a.HotelID = ""
	}

	if err := s.Store.Accounts().CreateAccount(ctx, a); err != nil {
		return domain.Account{}, err
	}
	return a, nil
}

// SeedDemoAccounts creates DemoAccounts when no account exists yet and
// returns how many were created.
func (s *AuthService) SeedDemoAccounts(ctx context.Context) (int, error) {
	empty, err := s.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return 0, err
	}
	if !empty {
		return 0, nil
	}

	for _, a := range DemoAccounts {
		if _, err := s.CreateAccount(ctx, a, DemoPassword); err != nil {
			return 0, fmt.Errorf("seed %s: %w", a.Email, err)
		}
	}

	slogx.FromContext(ctx).Warn("demo accounts created; do not use this database in production",
		"count", len(DemoAccounts))
	return len(DemoAccounts), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
