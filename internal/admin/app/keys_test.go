package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

func newSlots(t *testing.T) store.Slots {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st.Slots()
}

func newSealer(t *testing.T, passphrase string) *cryptox.Sealer {
	t.Helper()

	s, err := cryptox.NewSealer([]byte(passphrase))
	require.NoError(t, err)
	return s
}

func TestInitSessionKeysReusesStoredKey(t *testing.T) {
	ctx := context.Background()
	slots := newSlots(t)
	sealer := newSealer(t, "passphrase")

	first, err := InitSessionKeys(ctx, slots, sealer, "issuer", slogx.Discard())
	require.NoError(t, err)
	require.True(t, first.KeySet.IsReady())

	raw, err := slots.GetSlot(ctx, signingKeySlot)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "PRIVATE KEY", "the key must be stored sealed")

	second, err := InitSessionKeys(ctx, slots, sealer, "issuer", slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, first.Signer.KID(), second.Signer.KID())

	// Tokens from before the reload still verify.
	claims := jwtx.NewSessionClaims("acct-1", "owner@example.com", "John Owner", "owner", "", time.Hour, "issuer", time.Now())
	token, err := first.Signer.Sign(claims)
	require.NoError(t, err)

	got, err := second.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", got.Subject)
}

func TestInitSessionKeysReplacesUnopenableKey(t *testing.T) {
	ctx := context.Background()
	slots := newSlots(t)

	first, err := InitSessionKeys(ctx, slots, newSealer(t, "old"), "issuer", slogx.Discard())
	require.NoError(t, err)

	second, err := InitSessionKeys(ctx, slots, newSealer(t, "new"), "issuer", slogx.Discard())
	require.NoError(t, err)
	require.NotEqual(t, first.Signer.KID(), second.Signer.KID())

	// The replacement is what gets stored.
	third, err := InitSessionKeys(ctx, slots, newSealer(t, "new"), "issuer", slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, second.Signer.KID(), third.Signer.KID())
}
