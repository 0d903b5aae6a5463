package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/session"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
)

// LivezHandler always answers 200 while the process is up.
//
//	@Summary		Liveness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	adminsdk.HealthResponse
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, adminsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler answers 503 until the database and slot store respond, the
// signing key is loaded and the stored session has been restored.
//
//	@Summary		Readiness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	adminsdk.HealthResponse
//	@Failure		503	{object}	adminsdk.HealthResponse	"degraded"
//	@Router			/readyz [get]
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	sessions *session.Store,
	slotsPing func(context.Context) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &adminsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
			Session:  "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		degrade := func() {
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			degrade()
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			degrade()
		}

		if sessions.State() == domain.SessionUnknown {
			checks.Session = "restoring"
			degrade()
		}

		if slotsPing != nil {
			checks.Slots = "ok"
			if err := slotsPing(r.Context()); err != nil {
				checks.Slots = "error: " + err.Error()
				degrade()
			}
		}

		httpx.WriteJSON(w, statusCode, adminsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
