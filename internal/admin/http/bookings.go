package http

import (
	"net/http"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/metrics"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

type BookingsHandler struct {
	BookingService  *service.BookingService
	CustomerService *service.CustomerService
}

// HandleListForCustomer handles GET /v1/customers/{id}/bookings.
//
// Query: status (active|completed|cancelled), order (check_in|created_at),
// asc (bool), limit (1..200). Latest check-in first by default; managers
// only see their own hotel.
//
//	@Summary		List a customer's bookings
//	@Tags			Bookings
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string	true	"Customer ID"
//	@Param			status	query		string	false	"active, completed or cancelled"
//	@Success		200		{object}	adminsdk.ListBookingsResponse
//	@Failure		404		{object}	adminsdk.APIError
//	@Router			/v1/customers/{id}/bookings [get]
func (h *BookingsHandler) HandleListForCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	customerID := r.PathValue("id")
	if _, err := h.CustomerService.Get(ctx, customerID); err != nil {
		writeServiceError(w, r, err, "customer")
		return
	}

	f := domain.BookingFilter{
		CustomerID: customerID,
		HotelID:    q.Get("hotel"),
		Status:     domain.BookingStatus(q.Get("status")),
	}
	if f.Status != "" && !f.Status.Valid() {
		validationError(map[string]string{"status": "status must be one of: active completed cancelled"}).WriteError(w)
		return
	}
	switch order := q.Get("order"); order {
	case "":
		f.OrderBy = domain.BookingOrderCheckIn
	case domain.BookingOrderCheckIn, domain.BookingOrderCreatedAt:
		f.OrderBy = order
	default:
		validationError(map[string]string{"order": "order must be one of: check_in created_at"}).WriteError(w)
		return
	}

	var ok bool
	if f.Asc, ok = parseBool(w, q.Get("asc"), "asc"); !ok {
		return
	}
	if f.Limit, ok = parseLimit(w, q.Get("limit")); !ok {
		return
	}

	bookings, err := h.BookingService.List(ctx, identityFrom(ctx), f)
	if err != nil {
		writeServiceError(w, r, err, "booking")
		return
	}

	resp := adminsdk.ListBookingsResponse{Bookings: make([]adminsdk.Booking, len(bookings))}
	for i, b := range bookings {
		resp.Bookings[i] = toBooking(b)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /v1/bookings. The total is computed server-side.
//
//	@Summary		Create a booking
//	@Tags			Bookings
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.CreateBookingRequest	true	"Booking"
//	@Success		201		{object}	adminsdk.Booking
//	@Failure		400		{object}	adminsdk.APIError
//	@Failure		403		{object}	adminsdk.APIError	"Outside the manager's hotel"
//	@Router			/v1/bookings [post]
func (h *BookingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.CreateBookingRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	b, err := h.BookingService.Create(ctx, identityFrom(ctx), fromCreateBooking(req))
	if err != nil {
		writeServiceError(w, r, err, "booking")
		return
	}

	metrics.RecordsCreatedTotal.WithLabelValues("booking").Inc()
	slogx.FromContext(ctx).Info("booking created", "booking_id", b.ID, "hotel_id", b.HotelID)
	httpx.WriteJSON(w, http.StatusCreated, toBooking(b))
}

// HandleGet handles GET /v1/bookings/{id}.
func (h *BookingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := h.BookingService.Get(ctx, identityFrom(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "booking")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toBooking(b))
}
