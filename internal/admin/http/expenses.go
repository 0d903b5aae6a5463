package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/metrics"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

// dateLayout is the calendar-day format used by expenses and reports.
const dateLayout = time.DateOnly

type ExpensesHandler struct {
	ExpenseService *service.ExpenseService
}

// HandleCreate handles POST /v1/expenses.
//
//	@Summary		Record an expense
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.CreateExpenseRequest	true	"Expense"
//	@Success		201		{object}	adminsdk.Expense
//	@Failure		400		{object}	adminsdk.APIError
//	@Failure		403		{object}	adminsdk.APIError	"Outside the manager's hotel"
//	@Router			/v1/expenses [post]
func (h *ExpensesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.CreateExpenseRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	day, _ := time.Parse(dateLayout, req.Date) // checked by the datetime tag

	e, err := h.ExpenseService.Record(ctx, identityFrom(ctx), domain.Expense{
		HotelID:     req.HotelID,
		Category:    domain.ExpenseCategory(req.Category),
		Amount:      req.Amount,
		IncurredOn:  day,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err, "expense")
		return
	}

	metrics.RecordsCreatedTotal.WithLabelValues("expense").Inc()
	slogx.FromContext(ctx).Info("expense recorded", "expense_id", e.ID, "hotel_id", e.HotelID, "category", e.Category)
	httpx.WriteJSON(w, http.StatusCreated, toExpense(e))
}

// HandleList handles GET /v1/expenses.
//
// Query: hotel, category, from and to (YYYY-MM-DD, to exclusive),
// limit (1..200). Newest first; managers only see their own hotel.
//
//	@Summary		List expenses
//	@Tags			Expenses
//	@Produce		json
//	@Security		BearerAuth
//	@Param			hotel		query		string	false	"Hotel ID"
//	@Param			category	query		string	false	"salary, utility, maintenance, supplies or other"
//	@Param			from		query		string	false	"First day, YYYY-MM-DD"
//	@Param			to			query		string	false	"Day after the last, YYYY-MM-DD"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	adminsdk.ListExpensesResponse
//	@Failure		400			{object}	adminsdk.APIError
//	@Failure		403			{object}	adminsdk.APIError
//	@Router			/v1/expenses [get]
func (h *ExpensesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	f := domain.ExpenseFilter{
		HotelID:  q.Get("hotel"),
		Category: domain.ExpenseCategory(q.Get("category")),
	}
	if f.Category != "" && !f.Category.Valid() {
		validationError(map[string]string{
			"category": "category must be one of: salary utility maintenance supplies other",
		}).WriteError(w)
		return
	}

	var ok bool
	if f.From, ok = parseDate(w, q.Get("from"), "from"); !ok {
		return
	}
	if f.To, ok = parseDate(w, q.Get("to"), "to"); !ok {
		return
	}
	if f.Limit, ok = parseLimit(w, q.Get("limit")); !ok {
		return
	}

	expenses, err := h.ExpenseService.List(ctx, identityFrom(ctx), f)
	if err != nil {
		writeServiceError(w, r, err, "expense")
		return
	}

	resp := adminsdk.ListExpensesResponse{Expenses: make([]adminsdk.Expense, len(expenses))}
	for i, e := range expenses {
		resp.Expenses[i] = toExpense(e)
		resp.Total += e.Amount
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// parseDate accepts an empty value as "unbounded".
func parseDate(w http.ResponseWriter, s, field string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		validationError(map[string]string{field: field + " must be a date as " + dateLayout}).WriteError(w)
		return time.Time{}, false
	}
	return t, true
}
