package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

// writeServiceError maps service and store errors onto API errors. what
// names the record for not-found messages.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		adminsdk.ErrNotFound.WithDescription(what + " not found").WriteError(w)
	case errors.Is(err, service.ErrForbiddenHotel):
		adminsdk.ErrForbiddenHotel.WriteError(w)
	case errors.Is(err, service.ErrUnknownCustomer):
		validationError(map[string]string{"customerId": "customer does not exist"}).WriteError(w)
	case errors.Is(err, service.ErrInvalidCustomer):
		validationError(map[string]string{"name": "name is required"}).WriteError(w)
	case errors.Is(err, service.ErrInvalidBooking),
		errors.Is(err, service.ErrInvalidExpense),
		errors.Is(err, service.ErrInvalidPeriod):
		adminsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		adminsdk.ErrServerError.WriteError(w)
	}
}
