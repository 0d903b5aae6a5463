package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/metrics"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/notify"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/session"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

const persistWarning = "Your session could not be saved and will not survive a restart."

type SessionHandler struct {
	AuthService   *service.AuthService
	Sessions      *session.Store
	Notifications *notify.Store
}

// HandleLogin handles POST /v1/session. A successful login replaces any
// current session. If the session cannot be stored the login still stands;
// the response carries a warning and a warning notification is added.
//
//	@Summary		Sign in
//	@Description	Checks the credentials and makes the account the current console session
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	adminsdk.SessionResponse
//	@Failure		400		{object}	adminsdk.APIError	"Validation error"
//	@Failure		401		{object}	adminsdk.APIError	"Invalid credentials"
//	@Failure		429		{object}	adminsdk.APIError	"Rate limit exceeded"
//	@Router			/v1/session [post]
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var req adminsdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	sess, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			adminsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		l.Error("login failed", "error", err)
		adminsdk.ErrServerError.WriteError(w)
		return
	}

	resp := adminsdk.SessionResponse{
		State:    domain.SessionAuthenticated.String(),
		Identity: toIdentity(sess.Identity),
		Token:    sess.Token,
	}

	if err := h.Sessions.Login(ctx, sess.Identity, sess.Token); err != nil {
		metrics.SessionPersistFailuresTotal.Inc()
		l.Warn("session not persisted", "account_id", sess.Identity.ID, "error", err)

		resp.Warning = persistWarning
		h.Notifications.Add(domain.Notification{
			Title:    "Session not saved",
			Message:  persistWarning,
			Severity: domain.SeverityWarning,
		})
		metrics.NotificationsAddedTotal.WithLabelValues(string(domain.SeverityWarning)).Inc()
		metrics.NotificationsCurrent.Set(float64(h.Notifications.Len()))
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	l.Info("signed in", "account_id", sess.Identity.ID, "role", sess.Identity.Role)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/session. The token is never echoed back.
//
//	@Summary		Current session
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	adminsdk.SessionResponse
//	@Router			/v1/session [get]
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	resp := adminsdk.SessionResponse{State: h.Sessions.State().String()}
	if cur, ok := h.Sessions.Current(); ok {
		resp.State = domain.SessionAuthenticated.String()
		resp.Identity = toIdentity(cur.Identity)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleLogout handles DELETE /v1/session. Only the holder of the session
// token can end it; with no session there is nothing to end and the call
// succeeds, so logging out twice is fine.
//
//	@Summary	Sign out
//	@Tags		Session
//	@Security	BearerAuth
//	@Success	204
//	@Failure	401	{object}	adminsdk.APIError
//	@Failure	503	{object}	adminsdk.APIError	"Session restoring"
//	@Router		/v1/session [delete]
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Sessions.State() == domain.SessionUnknown {
		w.Header().Set("Retry-After", "1")
		adminsdk.ErrSessionRestoring.WriteError(w)
		return
	}

	cur, ok := h.Sessions.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	token, ok := httpx.BearerToken(r)
	if !ok {
		adminsdk.ErrLoginRequired.WriteError(w)
		return
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(cur.Token)) != 1 {
		adminsdk.ErrInvalidToken.WriteError(w)
		return
	}

	ended, err := h.Sessions.LogoutToken(ctx, token)
	if err != nil {
		metrics.SessionPersistFailuresTotal.Inc()
		slogx.FromContext(ctx).Error("failed to clear stored session", "error", err)
	}
	if ended {
		metrics.LogoutsTotal.WithLabelValues("user").Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}
