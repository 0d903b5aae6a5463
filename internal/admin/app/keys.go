package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
)

// signingKeySlot holds the sealed PKCS8 PEM of the session signing key.
const signingKeySlot = "signing-key"

// Keys bundles the session signing key with what verifies it.
type Keys struct {
	Signer   *jwtx.EdDSASigner
	KeySet   *jwtx.KeySet
	Verifier *jwtx.EdDSAVerifier
}

// InitSessionKeys loads the Ed25519 signing key from slots, generating and
// storing one on first start. A stored key that no longer opens (the session
// passphrase changed) is replaced; tokens signed with it stop verifying.
func InitSessionKeys(
	ctx context.Context,
	slots store.Slots,
	sealer *cryptox.Sealer,
	issuer string,
	logger *slog.Logger,
) (*Keys, error) {
	pemKey, err := loadSigningKey(ctx, slots, sealer, logger)
	if err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSignerEdDSA("", pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	logger.Info("session signing key ready", "kid", signer.KID())
	return &Keys{
		Signer:   signer,
		KeySet:   keys,
		Verifier: jwtx.NewVerifierEdDSA(keys, issuer),
	}, nil
}

func loadSigningKey(ctx context.Context, slots store.Slots, sealer *cryptox.Sealer, logger *slog.Logger) ([]byte, error) {
	raw, err := slots.GetSlot(ctx, signingKeySlot)
	switch {
	case err == nil:
		pemKey, err := sealer.OpenString(string(raw))
		if err == nil {
			return pemKey, nil
		}
		logger.Warn("stored signing key cannot be opened, generating a new one", "error", err)
	case errors.Is(err, store.ErrNotFound):
		logger.Info("no signing key stored, generating one")
	default:
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	sealed, err := sealer.SealString(pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to seal signing key: %w", err)
	}
	if err := slots.PutSlot(ctx, signingKeySlot, []byte(sealed)); err != nil {
		return nil, fmt.Errorf("failed to store signing key: %w", err)
	}
	return pemKey, nil
}
