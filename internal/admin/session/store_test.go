package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/session"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// memSlots is an in-memory store.Slots with switchable failures.
type memSlots struct {
	mu      sync.Mutex
	data    map[string][]byte
	readErr error
	putErr  error
}

func newMemSlots() *memSlots { return &memSlots{data: map[string][]byte{}} }

func (m *memSlots) GetSlot(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memSlots) PutSlot(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memSlots) DeleteSlot(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newSealer(t *testing.T, pass string) *cryptox.Sealer {
	t.Helper()
	s, err := cryptox.NewSealer([]byte(pass))
	require.NoError(t, err)
	return s
}

func newStore(t *testing.T, slots store.Slots, pass string) *session.Store {
	t.Helper()
	logger := slogx.Discard()
	return session.NewStore(session.NewVault(slots, newSealer(t, pass), logger), logger)
}

var manager = domain.Identity{
	ID:              "acct-2",
	Email:           "manager@example.com",
	DisplayName:     "Jane Manager",
	Role:            domain.RoleManager,
	AssignedHotelID: "H1",
}

func TestLoginThenCurrent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMemSlots(), session.DefaultPassphrase)
	require.NoError(t, s.Restore(ctx))

	require.NoError(t, s.Login(ctx, manager, "tok-1"))

	got, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, domain.Session{Identity: manager, Token: "tok-1"}, got)
	require.Equal(t, domain.SessionAuthenticated, s.State())

	// A second login replaces, it does not merge.
	owner := domain.Identity{ID: "acct-1", Role: domain.RoleOwner}
	require.NoError(t, s.Login(ctx, owner, "tok-2"))
	got, _ = s.Current()
	require.Equal(t, domain.Session{Identity: owner, Token: "tok-2"}, got)
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	slots := newMemSlots()
	s := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, s.Restore(ctx))
	require.NoError(t, s.Login(ctx, manager, "tok"))

	for range 2 {
		require.NoError(t, s.Logout(ctx))
		_, ok := s.Current()
		require.False(t, ok)
		require.Equal(t, domain.SessionAnonymous, s.State())
	}

	_, err := slots.GetSlot(ctx, session.StorageKey)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLogoutIsNotResurrected(t *testing.T) {
	ctx := context.Background()
	slots := newMemSlots()

	first := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, first.Restore(ctx))
	require.NoError(t, first.Login(ctx, manager, "tok"))
	require.NoError(t, first.Logout(ctx))

	second := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, second.Restore(ctx))
	_, ok := second.Current()
	require.False(t, ok)
}

func TestRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	slots := newMemSlots()

	first := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, first.Restore(ctx))
	require.NoError(t, first.Login(ctx, manager, "tok"))

	stored, err := slots.GetSlot(ctx, session.StorageKey)
	require.NoError(t, err)
	require.NotContains(t, string(stored), "manager@example.com", "record must be sealed")

	second := newStore(t, slots, session.DefaultPassphrase)
	require.Equal(t, domain.SessionUnknown, second.State())
	require.NoError(t, second.Restore(ctx))

	got, ok := second.Current()
	require.True(t, ok)
	require.Equal(t, domain.Session{Identity: manager, Token: "tok"}, got)
}

func TestRestoreDegradesToLoggedOut(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *memSlots {
		slots := newMemSlots()
		s := newStore(t, slots, session.DefaultPassphrase)
		require.NoError(t, s.Restore(ctx))
		require.NoError(t, s.Login(ctx, manager, "tok"))
		return slots
	}

	t.Run("every corrupted byte", func(t *testing.T) {
		slots := seed(t)
		good, err := slots.GetSlot(ctx, session.StorageKey)
		require.NoError(t, err)

		for i := range good {
			bad := append([]byte(nil), good...)
			bad[i] ^= 0x01
			require.NoError(t, slots.PutSlot(ctx, session.StorageKey, bad))

			s := newStore(t, slots, session.DefaultPassphrase)
			require.NoError(t, s.Restore(ctx), "byte %d", i)
			require.Equal(t, domain.SessionAnonymous, s.State(), "byte %d", i)
		}
	})

	t.Run("different key", func(t *testing.T) {
		s := newStore(t, seed(t), "another-passphrase")
		require.NoError(t, s.Restore(ctx))
		_, ok := s.Current()
		require.False(t, ok)
	})

	t.Run("plain garbage", func(t *testing.T) {
		slots := newMemSlots()
		require.NoError(t, slots.PutSlot(ctx, session.StorageKey, []byte(`{"not":"sealed"}`)))

		s := newStore(t, slots, session.DefaultPassphrase)
		require.NoError(t, s.Restore(ctx))
		require.Equal(t, domain.SessionAnonymous, s.State())
	})
}

func TestRestoreStorageFailure(t *testing.T) {
	ctx := context.Background()
	slots := newMemSlots()
	slots.readErr = errors.New("disk gone")

	s := newStore(t, slots, session.DefaultPassphrase)
	require.Error(t, s.Restore(ctx))
	require.Equal(t, domain.SessionAnonymous, s.State())
}

func TestRestoreRunsOnce(t *testing.T) {
	ctx := context.Background()
	slots := newMemSlots()
	s := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, s.Restore(ctx))

	// A record written by someone else after restoration is not picked up.
	other := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, other.Restore(ctx))
	require.NoError(t, other.Login(ctx, manager, "tok"))

	require.NoError(t, s.Restore(ctx))
	_, ok := s.Current()
	require.False(t, ok)
}

func TestLoginBeforeRestoreWins(t *testing.T) {
	ctx := context.Background()
	slots := newMemSlots()

	seeded := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, seeded.Restore(ctx))
	require.NoError(t, seeded.Login(ctx, manager, "old"))

	slots.putErr = errors.New("read-only")
	s := newStore(t, slots, session.DefaultPassphrase)
	owner := domain.Identity{ID: "acct-1", Role: domain.RoleOwner}
	require.ErrorIs(t, s.Login(ctx, owner, "new"), session.ErrPersist)
	require.NoError(t, s.Restore(ctx))

	got, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "new", got.Token)
}

func TestPersistFailureKeepsInMemorySession(t *testing.T) {
	ctx := context.Background()
	slots := newMemSlots()
	slots.putErr = errors.New("quota exceeded")

	s := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, s.Restore(ctx))

	err := s.Login(ctx, manager, "tok")
	require.ErrorIs(t, err, session.ErrPersist)

	got, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "tok", got.Token)
}

func TestWait(t *testing.T) {
	s := newStore(t, newMemSlots(), session.DefaultPassphrase)

	short, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, s.Wait(short), context.DeadlineExceeded)

	go func() { _ = s.Restore(context.Background()) }()
	require.NoError(t, s.Wait(context.Background()))
	<-s.Done()
	require.Equal(t, domain.SessionAnonymous, s.State())
}

func TestManagerScenario(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMemSlots(), session.DefaultPassphrase)
	require.NoError(t, s.Restore(ctx))
	require.NoError(t, s.Login(ctx, manager, "tok"))

	cur, _ := s.Current()
	allowed := []domain.Role{domain.RoleOwner}
	require.False(t, domain.IsAuthorized(allowed, cur.Identity.Role))
	require.Equal(t, domain.DecisionUnauthorized, domain.Decide(s.State(), cur.Identity.Role, allowed))
}

// gatedSlots blocks the first PutSlot until release is closed.
type gatedSlots struct {
	*memSlots
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedSlots() *gatedSlots {
	return &gatedSlots{
		memSlots: newMemSlots(),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (g *gatedSlots) PutSlot(ctx context.Context, key string, value []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.memSlots.PutSlot(ctx, key, value)
}

func TestLogoutDuringLoginWriteIsNotResurrected(t *testing.T) {
	ctx := context.Background()
	slots := newGatedSlots()
	s := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, s.Restore(ctx))

	loginDone := make(chan error, 1)
	go func() { loginDone <- s.Login(ctx, manager, "tok") }()
	<-slots.entered

	logoutDone := make(chan error, 1)
	go func() { logoutDone <- s.Logout(ctx) }()

	// Give the logout a chance to run ahead of the pending write.
	time.Sleep(20 * time.Millisecond)
	close(slots.release)

	require.NoError(t, <-loginDone)
	require.NoError(t, <-logoutDone)

	_, ok := s.Current()
	require.False(t, ok)

	restarted := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, restarted.Restore(ctx))
	_, ok = restarted.Current()
	require.False(t, ok, "a logged-out session must not come back after a restart")
}

func TestLogoutTokenKeepsNewerLogin(t *testing.T) {
	ctx := context.Background()
	slots := newMemSlots()
	s := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, s.Restore(ctx))

	require.NoError(t, s.Login(ctx, manager, "old"))
	owner := domain.Identity{ID: "acct-1", Role: domain.RoleOwner}
	require.NoError(t, s.Login(ctx, owner, "new"))

	ended, err := s.LogoutToken(ctx, "old")
	require.NoError(t, err)
	require.False(t, ended)

	got, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "new", got.Token)

	restarted := newStore(t, slots, session.DefaultPassphrase)
	require.NoError(t, restarted.Restore(ctx))
	got, ok = restarted.Current()
	require.True(t, ok)
	require.Equal(t, "new", got.Token)

	ended, err = s.LogoutToken(ctx, "new")
	require.NoError(t, err)
	require.True(t, ended)
	_, ok = s.Current()
	require.False(t, ok)
}
