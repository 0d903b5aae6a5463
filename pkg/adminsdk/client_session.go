package adminsdk

import (
	"context"
	"net/http"
)

// Login signs in and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*SessionResponse, error) {
	out, err := call[SessionResponse](ctx, c, http.MethodPost, "/v1/session",
		LoginRequest{Email: email, Password: password}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return out, nil
}

// Session reports the console's session state.
func (c *Client) Session(ctx context.Context) (*SessionResponse, error) {
	return call[SessionResponse](ctx, c, http.MethodGet, "/v1/session", nil, http.StatusOK)
}

// Logout ends the session and forgets the token, even when the call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")

	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/session", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
