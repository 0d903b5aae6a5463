package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	adminhttp "github.com/aussiebroadwan/hoteladmin/internal/admin/http"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/notify"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/session"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

const testIssuer = "hotel-admin-test"

type testEnv struct {
	router   *adminhttp.Router
	store    *sqlite.Store
	sessions *session.Store
	notes    *notify.Store
	signer   *jwtx.EdDSASigner
}

type envOptions struct {
	slots       func(store.Slots) store.Slots
	skipRestore bool
	loginLimit  httpx.RateLimit
	slotsPing   func(context.Context) error
}

type envOption func(*envOptions)

func withSlots(wrap func(store.Slots) store.Slots) envOption {
	return func(o *envOptions) { o.slots = wrap }
}

func withoutRestore() envOption {
	return func(o *envOptions) { o.skipRestore = true }
}

func withLoginLimit(l httpx.RateLimit) envOption {
	return func(o *envOptions) { o.loginLimit = l }
}

func withSlotsPing(fn func(context.Context) error) envOption {
	return func(o *envOptions) { o.slotsPing = fn }
}

func newEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := slogx.Discard()

	o := envOptions{loginLimit: httpx.RateLimit{Requests: 1000, Window: time.Minute, Burst: 1000}}
	for _, opt := range opts {
		opt(&o)
	}

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	verifier := jwtx.NewVerifierEdDSA(keys, testIssuer)

	sealer, err := cryptox.NewSealer([]byte("test-passphrase"))
	require.NoError(t, err)
	var slots store.Slots = st.Slots()
	if o.slots != nil {
		slots = o.slots(slots)
	}
	sessions := session.NewStore(session.NewVault(slots, sealer, logger), logger)
	if !o.skipRestore {
		require.NoError(t, sessions.Restore(ctx))
	}

	auth := &service.AuthService{
		Store:  st,
		Signer: signer,
		Hasher: cryptox.PasswordHasher{Pepper: "test-pepper"},
		Issuer: testIssuer,
		TTL:    time.Hour,
	}
	_, err = auth.SeedDemoAccounts(ctx)
	require.NoError(t, err)

	notes := notify.NewStore(0)
	r := adminhttp.NewRouter(keys, verifier, "test", st, sessions, notes, logger)
	r.AuthService = auth
	r.CustomerService = &service.CustomerService{Store: st}
	r.BookingService = &service.BookingService{Store: st}
	r.ExpenseService = &service.ExpenseService{Store: st}
	r.ReportService = &service.ReportService{Store: st}
	r.LoginLimit = o.loginLimit
	r.SlotsPing = o.slotsPing
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, sessions: sessions, notes: notes, signer: signer}
}

// do sends a request through the router. body, when non-nil, is JSON encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// login signs in with a demo account and returns the session token.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/session", "", adminsdk.LoginRequest{Email: email, Password: service.DemoPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp adminsdk.SessionResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func requireAPIError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) adminsdk.APIError {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())

	var e adminsdk.APIError
	decode(t, rec, &e)
	require.Equal(t, code, e.Code)
	return e
}
