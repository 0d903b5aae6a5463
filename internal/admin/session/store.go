// Package session keeps the console's single signed-in session and its
// sealed copy in durable storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
)

// ErrPersist wraps failures to write or delete the stored session. The
// in-memory change has already happened when it is returned.
var ErrPersist = errors.New("session: persist failed")

// Store holds at most one session. It starts in the unknown state until
// Restore has run once.
type Store struct {
	vault  *Vault
	logger *slog.Logger

	// persistMu is held across each in-memory change and its vault write,
	// so the stored record always matches the last change made.
	persistMu sync.Mutex

	mu      sync.RWMutex
	current *domain.Session
	gen     uint64 // bumped by Login and Logout

	once     sync.Once
	restored chan struct{}
	restErr  error
}

func NewStore(vault *Vault, logger *slog.Logger) *Store {
	return &Store{
		vault:    vault,
		logger:   logger,
		restored: make(chan struct{}),
	}
}

// Login replaces the current session and persists it.
func (s *Store) Login(ctx context.Context, identity domain.Identity, token string) error {
	sess := domain.Session{Identity: identity, Token: token}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.current = &sess
	s.gen++
	s.mu.Unlock()

	if err := s.vault.Save(ctx, sess); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.logger.Info("session started",
		"account_id", identity.ID,
		"role", identity.Role,
		"token_fp", cryptox.FingerprintToken(token),
	)
	return nil
}

// Logout clears the session and deletes the stored copy. Logging out with no
// session is not an error.
func (s *Store) Logout(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	return s.clear(ctx)
}

// LogoutToken ends the session only while token is still the current one.
// It reports whether a session was ended; a newer login is left alone.
func (s *Store) LogoutToken(ctx context.Context, token string) (bool, error) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	match := s.current != nil && s.current.Token == token
	s.mu.RUnlock()
	if !match {
		return false, nil
	}
	return true, s.clear(ctx)
}

// clear must be called with persistMu held.
func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	s.gen++
	s.mu.Unlock()

	if err := s.vault.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if had {
		s.logger.Info("session ended")
	}
	return nil
}

// Current returns the in-memory session, if any.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// State reports unknown until restoration completes.
func (s *Store) State() domain.SessionState {
	select {
	case <-s.restored:
	default:
		return domain.SessionUnknown
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.SessionAnonymous
	}
	return domain.SessionAuthenticated
}

// Restore loads the stored session exactly once; later calls return the
// first call's result. A login or logout that happened first wins over
// the stored record. Storage failures leave the store anonymous
// and are returned.
func (s *Store) Restore(ctx context.Context) error {
	s.once.Do(func() {
		defer close(s.restored)

		sess, ok, err := s.vault.Load(ctx)
		if err != nil {
			s.restErr = err
			s.logger.Error("session restore failed, starting logged out", "error", err)
			return
		}
		if !ok {
			s.logger.Info("no stored session")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != 0 {
			// Login or Logout already ran; the stored record is stale.
			return
		}
		s.current = &sess
		s.logger.Info("session restored", "account_id", sess.Identity.ID, "role", sess.Identity.Role)
	})
	return s.restErr
}

// Done is closed once restoration has finished.
func (s *Store) Done() <-chan struct{} { return s.restored }

// Wait blocks until restoration has finished or ctx ends.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.restored:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
