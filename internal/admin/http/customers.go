package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/metrics"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
)

type CustomersHandler struct {
	CustomerService *service.CustomerService
}

// HandleList handles GET /v1/customers.
//
// Query: search (name, email or phone substring), order (created_at|name),
// asc (bool), limit (1..200).
//
//	@Summary		List customers
//	@Tags			Customers
//	@Produce		json
//	@Security		BearerAuth
//	@Param			search	query		string	false	"Name, email or phone substring"
//	@Param			order	query		string	false	"created_at or name"
//	@Param			asc		query		bool	false	"Ascending order"
//	@Param			limit	query		int		false	"Page size"
//	@Success		200		{object}	adminsdk.ListCustomersResponse
//	@Failure		400		{object}	adminsdk.APIError
//	@Failure		403		{object}	adminsdk.APIError
//	@Router			/v1/customers [get]
func (h *CustomersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.CustomerFilter{Search: q.Get("search")}

	switch order := q.Get("order"); order {
	case "", domain.CustomerOrderCreatedAt, domain.CustomerOrderName:
		f.OrderBy = order
	default:
		validationError(map[string]string{"order": "order must be one of: created_at name"}).WriteError(w)
		return
	}

	var ok bool
	if f.Asc, ok = parseBool(w, q.Get("asc"), "asc"); !ok {
		return
	}
	if f.Limit, ok = parseLimit(w, q.Get("limit")); !ok {
		return
	}

	customers, err := h.CustomerService.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "customer")
		return
	}

	resp := adminsdk.ListCustomersResponse{Customers: make([]adminsdk.Customer, len(customers))}
	for i, c := range customers {
		resp.Customers[i] = toCustomer(c)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /v1/customers.
//
//	@Summary		Create a customer
//	@Tags			Customers
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.CreateCustomerRequest	true	"Customer"
//	@Success		201		{object}	adminsdk.Customer
//	@Failure		400		{object}	adminsdk.APIError
//	@Router			/v1/customers [post]
func (h *CustomersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.CreateCustomerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	c, err := h.CustomerService.Create(r.Context(), domain.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		writeServiceError(w, r, err, "customer")
		return
	}

	metrics.RecordsCreatedTotal.WithLabelValues("customer").Inc()
	httpx.WriteJSON(w, http.StatusCreated, toCustomer(c))
}

// HandleGet handles GET /v1/customers/{id}.
//
//	@Summary		Get a customer
//	@Tags			Customers
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Customer ID"
//	@Success		200	{object}	adminsdk.Customer
//	@Failure		404	{object}	adminsdk.APIError
//	@Router			/v1/customers/{id} [get]
func (h *CustomersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.CustomerService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "customer")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomer(c))
}

// HandleUpdate handles PATCH /v1/customers/{id}. Absent fields are kept.
//
//	@Summary		Update a customer
//	@Tags			Customers
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Customer ID"
//	@Param			request	body		adminsdk.UpdateCustomerRequest	true	"Fields to change"
//	@Success		200		{object}	adminsdk.Customer
//	@Failure		400		{object}	adminsdk.APIError
//	@Failure		404		{object}	adminsdk.APIError
//	@Router			/v1/customers/{id} [patch]
func (h *CustomersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.UpdateCustomerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	c, err := h.CustomerService.Update(r.Context(), r.PathValue("id"), domain.CustomerPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		writeServiceError(w, r, err, "customer")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCustomer(c))
}

func parseBool(w http.ResponseWriter, s, field string) (bool, bool) {
	if s == "" {
		return false, true
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		validationError(map[string]string{field: field + " must be true or false"}).WriteError(w)
		return false, false
	}
	return v, true
}

// parseLimit accepts an empty value as "server default".
func parseLimit(w http.ResponseWriter, s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > service.MaxListLimit {
		validationError(map[string]string{
			"limit": "limit must be between 1 and " + strconv.Itoa(service.MaxListLimit),
		}).WriteError(w)
		return 0, false
	}
	return n, true
}
