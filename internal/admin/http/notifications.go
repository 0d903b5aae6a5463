package http

import (
	"net/http"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/metrics"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/notify"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
)

type NotificationsHandler struct {
	Notifications *notify.Store
}

// HandleList handles GET /v1/notifications, newest first.
//
//	@Summary		List notifications
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	adminsdk.NotificationsResponse
//	@Failure		401	{object}	adminsdk.APIError
//	@Router			/v1/notifications [get]
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items := h.Notifications.List()

	resp := adminsdk.NotificationsResponse{
		Notifications: make([]adminsdk.Notification, len(items)),
	}
	for i, n := range items {
		resp.Notifications[i] = toNotification(n)
		if !n.Read {
			resp.Unread++
		}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleAdd handles POST /v1/notifications.
//
//	@Summary		Add a notification
//	@Tags			Notifications
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.AddNotificationRequest	true	"Notification"
//	@Success		201		{object}	adminsdk.Notification
//	@Failure		400		{object}	adminsdk.APIError
//	@Router			/v1/notifications [post]
func (h *NotificationsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.AddNotificationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	n := h.Notifications.Add(domain.Notification{
		Title:    req.Title,
		Message:  req.Message,
		Severity: domain.Severity(req.Severity),
	})
	metrics.NotificationsAddedTotal.WithLabelValues(string(n.Severity)).Inc()
	metrics.NotificationsCurrent.Set(float64(h.Notifications.Len()))

	httpx.WriteJSON(w, http.StatusCreated, toNotification(n))
}

// HandleMarkRead handles POST /v1/notifications/{id}/read. Unknown ids are
// not an error.
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	h.Notifications.MarkAsRead(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// HandleClear handles DELETE /v1/notifications.
func (h *NotificationsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.Notifications.Clear()
	metrics.NotificationsCurrent.Set(0)
	w.WriteHeader(http.StatusNoContent)
}
