package adminsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CustomerQuery selects customers. Zero values use the server defaults:
// newest first, up to 200.
type CustomerQuery struct {
	Search  string
	OrderBy string // "created_at" or "name"
	Asc     bool
	Limit   int
}

func (q CustomerQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.OrderBy != "" {
		v.Set("order", q.OrderBy)
	}
	if q.Asc {
		v.Set("asc", "true")
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	return call[Customer](ctx, c, http.MethodPost, "/v1/customers", req, http.StatusCreated)
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	return call[Customer](ctx, c, http.MethodGet, "/v1/customers/"+url.PathEscape(id), nil, http.StatusOK)
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error) {
	return call[Customer](ctx, c, http.MethodPatch, "/v1/customers/"+url.PathEscape(id), req, http.StatusOK)
}

func (c *Client) ListCustomers(ctx context.Context, q CustomerQuery) ([]Customer, error) {
	path := "/v1/customers"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	out, err := call[ListCustomersResponse](ctx, c, http.MethodGet, path, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return out.Customers, nil
}

func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	return call[Booking](ctx, c, http.MethodPost, "/v1/bookings", req, http.StatusCreated)
}

func (c *Client) GetBooking(ctx context.Context, id string) (*Booking, error) {
	return call[Booking](ctx, c, http.MethodGet, "/v1/bookings/"+url.PathEscape(id), nil, http.StatusOK)
}

// CustomerBookings lists a customer's bookings, newest check-in first.
func (c *Client) CustomerBookings(ctx context.Context, customerID string) ([]Booking, error) {
	out, err := call[ListBookingsResponse](ctx, c, http.MethodGet,
		"/v1/customers/"+url.PathEscape(customerID)+"/bookings", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return out.Bookings, nil
}
