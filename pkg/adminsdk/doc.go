// Package adminsdk is the Go client for the hotel admin console API.
//
// The request and response types are shared with the server, so a handler and
// a caller always agree on the wire format.
//
//	c := adminsdk.New("http://localhost:8080")
//	sess, err := c.Login(ctx, "owner@example.com", "password")
//	if err != nil {
//		var apiErr *adminsdk.APIError
//		if errors.As(err, &apiErr) && apiErr.Code == adminsdk.ErrorCodeInvalidCredentials {
//			// wrong email or password
//		}
//	}
//
// After Login the client carries the session token and sends it as a bearer
// token on every guarded call. Logout forgets it.
package adminsdk
