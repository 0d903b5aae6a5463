package adminsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

func TestLoginKeepsToken(t *testing.T) {
	t.Parallel()

	var (
		mu          sync.Mutex
		authHeaders []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()

		switch r.Method + " " + r.URL.Path {
		case "POST /v1/session":
			var req adminsdk.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "owner@example.com", req.Email)
			_ = json.NewEncoder(w).Encode(adminsdk.SessionResponse{
				State:    adminsdk.SessionStateAuthenticated,
				Identity: &adminsdk.Identity{ID: "acct-1", Role: "owner"},
				Token:    "tok-1",
			})
		case "GET /v1/notifications":
			_ = json.NewEncoder(w).Encode(adminsdk.NotificationsResponse{Unread: 2})
		case "DELETE /v1/session":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := adminsdk.New(srv.URL + "/")

	sess, err := c.Login(ctx, "owner@example.com", "password")
	require.NoError(t, err)
	require.Equal(t, "acct-1", sess.Identity.ID)
	require.Equal(t, "tok-1", c.Token())

	notes, err := c.Notifications(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, notes.Unread)

	require.NoError(t, c.Logout(ctx))
	require.Empty(t, c.Token())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"", "Bearer tok-1", "Bearer tok-1"}, authHeaders)
}

func TestErrorsAreTyped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/session":
			adminsdk.ErrInvalidCredentials.WriteError(w)
		case "/v1/customers":
			(&adminsdk.APIError{
				StatusCode: http.StatusBadRequest,
				Code:       adminsdk.ErrorCodeValidation,
				Fields:     map[string]string{"name": "name is required"},
			}).WriteError(w)
		default:
			http.Error(w, "boom", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := adminsdk.New(srv.URL)

	_, err := c.Login(ctx, "owner@example.com", "nope")
	require.True(t, adminsdk.IsCode(err, adminsdk.ErrorCodeInvalidCredentials))
	require.Empty(t, c.Token())

	_, err = c.CreateCustomer(ctx, adminsdk.CreateCustomerRequest{})
	var apiErr *adminsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "name is required", apiErr.Fields["name"])

	_, err = c.GetLiveness(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, adminsdk.ErrorCodeServerError, apiErr.Code)
}

func TestListCustomersQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "ada", q.Get("search"))
		require.Equal(t, "name", q.Get("order"))
		require.Equal(t, "true", q.Get("asc"))
		require.Equal(t, "5", q.Get("limit"))
		_ = json.NewEncoder(w).Encode(adminsdk.ListCustomersResponse{
			Customers: []adminsdk.Customer{{ID: "c1", Name: "Ada"}},
		})
	}))
	defer srv.Close()

	got, err := adminsdk.New(srv.URL).ListCustomers(context.Background(), adminsdk.CustomerQuery{
		Search: "ada", OrderBy: "name", Asc: true, Limit: 5,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Ada", got[0].Name)
}

func TestExpenseAndReportQueries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "1", q.Get("hotel"))
		require.Equal(t, "2024-03-01", q.Get("from"))
		require.Equal(t, "2024-04-01", q.Get("to"))

		switch r.URL.Path {
		case "/v1/expenses":
			require.Equal(t, "utility", q.Get("category"))
			require.Equal(t, "10", q.Get("limit"))
			_ = json.NewEncoder(w).Encode(adminsdk.ListExpensesResponse{
				Expenses: []adminsdk.Expense{{ID: "e1", Amount: 8500}},
				Total:    8500,
			})
		case "/v1/reports/hotels":
			require.Empty(t, q.Get("category"))
			_ = json.NewEncoder(w).Encode(adminsdk.HotelReportsResponse{
				Hotels: []adminsdk.HotelReport{{HotelID: "1", Revenue: 100, Expenses: 40, Profit: 60}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := adminsdk.New(srv.URL)
	ctx := context.Background()

	list, err := c.ListExpenses(ctx, adminsdk.ExpenseQuery{
		HotelID: "1", Category: "utility", From: "2024-03-01", To: "2024-04-01", Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(8500), list.Total)
	require.Len(t, list.Expenses, 1)

	rep, err := c.HotelReports(ctx, adminsdk.ReportQuery{HotelID: "1", From: "2024-03-01", To: "2024-04-01"})
	require.NoError(t, err)
	require.Len(t, rep.Hotels, 1)
	require.Equal(t, int64(60), rep.Hotels[0].Profit)
}

func TestWithDescriptionCopies(t *testing.T) {
	t.Parallel()

	e := adminsdk.ErrNotFound.WithDescription("customer not found")
	require.Equal(t, "customer not found", e.Description)
	require.Equal(t, "no such record", adminsdk.ErrNotFound.Description)
	require.Equal(t, "not_found: customer not found", e.Error())
}
