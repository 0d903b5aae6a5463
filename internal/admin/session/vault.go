package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
)

// StorageKey is the slot the sealed session lives under.
const StorageKey = "auth-storage"

// DefaultPassphrase is compiled into the binary. It only obfuscates the
// stored session; deployments must override it through configuration.
const DefaultPassphrase = "hoteladmin-local-session-key"

// record is the persisted shape. Version lets a future format be detected.
type record struct {
	Version int            `json:"version"`
	Session domain.Session `json:"session"`
}

const recordVersion = 1

// Vault seals sessions into a slot and opens them again.
type Vault struct {
	slots  store.Slots
	sealer *cryptox.Sealer
	logger *slog.Logger
}

func NewVault(slots store.Slots, sealer *cryptox.Sealer, logger *slog.Logger) *Vault {
	return &Vault{slots: slots, sealer: sealer, logger: logger}
}

// Save seals s and writes it to the slot, replacing any previous record.
func (v *Vault) Save(ctx context.Context, s domain.Session) error {
	plain, err := json.Marshal(record{Version: recordVersion, Session: s})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	sealed, err := v.sealer.SealString(plain)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	return v.slots.PutSlot(ctx, StorageKey, []byte(sealed))
}

// Load returns the stored session. A missing, corrupted or foreign record
// reports ok=false with a nil error; only storage failures are returned.
func (v *Vault) Load(ctx context.Context) (domain.Session, bool, error) {
	raw, err := v.slots.GetSlot(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("read session slot: %w", err)
	}

	plain, err := v.sealer.OpenString(string(raw))
	if err != nil {
		v.logger.Warn("stored session could not be opened, treating as logged out", "error", err)
		return domain.Session{}, false, nil
	}

	var rec record
	if err := json.Unmarshal(plain, &rec); err != nil {
		v.logger.Warn("stored session is not valid JSON, treating as logged out", "error", err)
		return domain.Session{}, false, nil
	}
	if rec.Session.Token == "" || !rec.Session.Identity.Role.Valid() {
		v.logger.Warn("stored session is incomplete, treating as logged out",
			"version", rec.Version, "role", rec.Session.Identity.Role)
		return domain.Session{}, false, nil
	}

	return rec.Session, true, nil
}

// Clear deletes the stored record.
func (v *Vault) Clear(ctx context.Context) error {
	return v.slots.DeleteSlot(ctx, StorageKey)
}
