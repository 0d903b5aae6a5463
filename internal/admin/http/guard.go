package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/metrics"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

type identityKey struct{}

// identityFrom returns the identity the guard admitted.
func identityFrom(ctx context.Context) domain.Identity {
	id, _ := ctx.Value(identityKey{}).(domain.Identity)
	return id
}

// Guard admits requests carrying the current session's token whose role is
// in allowed. A nil allowed admits every role.
//
// Order of checks:
//   - restoration still running: 503 session_restoring, Retry-After: 1
//   - no session, or no bearer token: 401 login_required
//   - token is not the session's: 401 invalid_token
//   - session token no longer verifies: the session is ended, 401 invalid_token
//   - role not allowed: 403 unauthorized
func (r *Router) Guard(allowed []domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			state := r.sessions.State()
			cur, ok := r.sessions.Current()
			if state != domain.SessionUnknown {
				state = domain.SessionAnonymous
				if ok {
					state = domain.SessionAuthenticated
				}
			}

			decision := domain.Decide(state, cur.Identity.Role, allowed)
			switch decision {
			case domain.DecisionPending:
				countDecision(decision)
				w.Header().Set("Retry-After", "1")
				adminsdk.ErrSessionRestoring.WriteError(w)
				return
			case domain.DecisionLogin:
				countDecision(decision)
				adminsdk.ErrLoginRequired.WriteError(w)
				return
			}

			token, ok := httpx.BearerToken(req)
			if !ok {
				countDecision(domain.DecisionLogin)
				adminsdk.ErrLoginRequired.WriteError(w)
				return
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(cur.Token)) != 1 {
				countDecision(domain.DecisionLogin)
				adminsdk.ErrInvalidToken.WriteError(w)
				return
			}

			if _, err := r.verifier.Verify(token); err != nil {
				r.endSession(ctx, token, err)
				countDecision(domain.DecisionLogin)
				adminsdk.ErrInvalidToken.WithDescription("the session has ended, sign in again").WriteError(w)
				return
			}

			countDecision(decision)
			if decision == domain.DecisionUnauthorized {
				slogx.FromContext(ctx).Info("access denied",
					"account_id", cur.Identity.ID, "role", cur.Identity.Role, "path", req.URL.Path)
				adminsdk.ErrUnauthorized.WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, identityKey{}, cur.Identity)
			ctx = httpx.WithSubject(ctx, cur.Identity.ID)
			ctx = slogx.WithAccount(ctx, cur.Identity.ID, cur.Identity.Role.String())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// endSession logs out only if token is still the session's; a login that
// happened since the check is kept.
func (r *Router) endSession(ctx context.Context, token string, cause error) {
	reason := "invalid"
	if errors.Is(cause, jwtx.ErrExpired) {
		reason = "expired"
	}

	l := slogx.FromContext(ctx)
	ended, err := r.sessions.LogoutToken(ctx, token)
	if err != nil {
		metrics.SessionPersistFailuresTotal.Inc()
		l.Error("failed to clear stored session", "error", err)
	}
	if !ended {
		return
	}
	metrics.LogoutsTotal.WithLabelValues(reason).Inc()
	l.Info("session ended", "reason", reason, "error", cause)
}

func countDecision(d domain.Decision) {
	metrics.GuardDecisionsTotal.WithLabelValues(d.String()).Inc()
}
