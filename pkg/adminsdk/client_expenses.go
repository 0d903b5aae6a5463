package adminsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ExpenseQuery selects expenses. From and To are YYYY-MM-DD; To is exclusive.
type ExpenseQuery struct {
	HotelID  string
	Category string
	From     string
	To       string
	Limit    int
}

func (q ExpenseQuery) values() url.Values {
	v := periodValues(q.HotelID, q.From, q.To)
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ReportQuery bounds a hotel report. Empty fields mean every hotel and all time.
type ReportQuery struct {
	HotelID string
	From    string
	To      string
}

func periodValues(hotel, from, to string) url.Values {
	v := url.Values{}
	if hotel != "" {
		v.Set("hotel", hotel)
	}
	if from != "" {
		v.Set("from", from)
	}
	if to != "" {
		v.Set("to", to)
	}
	return v
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func (c *Client) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	return call[Expense](ctx, c, http.MethodPost, "/v1/expenses", req, http.StatusCreated)
}

func (c *Client) ListExpenses(ctx context.Context, q ExpenseQuery) (*ListExpensesResponse, error) {
	return call[ListExpensesResponse](ctx, c, http.MethodGet, withQuery("/v1/expenses", q.values()), nil, http.StatusOK)
}

func (c *Client) HotelReports(ctx context.Context, q ReportQuery) (*HotelReportsResponse, error) {
	return call[HotelReportsResponse](ctx, c, http.MethodGet,
		withQuery("/v1/reports/hotels", periodValues(q.HotelID, q.From, q.To)), nil, http.StatusOK)
}
