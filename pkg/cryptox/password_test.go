package cryptox_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordFormat(t *testing.T) {
	h := cryptox.PasswordHasher{Pepper: "pepper"}

	for _, pw := range []string{"password", "P@ssw0rd!#$%^&*()", strings.Repeat("a", 100), "", "   spaces   "} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m="), "hash should be in PHC format")
		require.Len(t, strings.Split(hash, "$"), 6)
		require.NoError(t, h.Verify(pw, hash))
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h := cryptox.PasswordHasher{}

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	require.NotEqual(t, a, b, "hashes should differ due to unique salts")
}

func TestVerifyPasswordMismatch(t *testing.T) {
	h := cryptox.PasswordHasher{Pepper: "pepper"}

	hash, err := h.Hash("password")
	require.NoError(t, err)

	require.ErrorIs(t, h.Verify("Password", hash), cryptox.ErrPasswordMismatch)

	// A different pepper must not verify either.
	other := cryptox.PasswordHasher{Pepper: "other"}
	require.ErrorIs(t, other.Verify("password", hash), cryptox.ErrPasswordMismatch)
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	h := cryptox.PasswordHasher{}

	cases := map[string]string{
		"empty":         "",
		"too few parts": "$argon2id$v=19$m=1,t=1,p=1$salt",
		"wrong algo":    "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"wrong version": "$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"bad params":    "$argon2id$v=19$nope$c2FsdA$aGFzaA",
		"bad salt":      "$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
	}

	for name, hash := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, h.Verify("pw", hash), cryptox.ErrInvalidHash)
		})
	}
}

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := cryptox.LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := cryptox.LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second, "existing pepper should be reused")
}
