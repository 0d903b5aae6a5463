package adminsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Notifications(ctx context.Context) (*NotificationsResponse, error) {
	return call[NotificationsResponse](ctx, c, http.MethodGet, "/v1/notifications", nil, http.StatusOK)
}

// AddNotification returns the notification as stored, with id and timestamp.
func (c *Client) AddNotification(ctx context.Context, req AddNotificationRequest) (*Notification, error) {
	return call[Notification](ctx, c, http.MethodPost, "/v1/notifications", req, http.StatusCreated)
}

// MarkNotificationRead succeeds for unknown ids too.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/notifications/"+url.PathEscape(id)+"/read", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) ClearNotifications(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/notifications", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
