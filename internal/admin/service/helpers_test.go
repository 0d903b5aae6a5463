package service_test

import (
	"testing"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "hotel-admin-test"

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func newSigner(t *testing.T) (*jwtx.EdDSASigner, *jwtx.EdDSAVerifier) {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	return signer, jwtx.NewVerifierEdDSA(keys, testIssuer)
}
