package http

import (
	"net/http"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/pkg/adminsdk"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
)

type ReportsHandler struct {
	ReportService *service.ReportService
}

// HandleHotels handles GET /v1/reports/hotels.
//
// Revenue is the total of every booking that is not cancelled, by check-in
// day. Expenses are bucketed by the day they were incurred.
//
//	@Summary		Revenue against expenses per hotel
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Param			hotel	query		string	false	"Hotel ID"
//	@Param			from	query		string	false	"First day, YYYY-MM-DD"
//	@Param			to		query		string	false	"Day after the last, YYYY-MM-DD"
//	@Success		200		{object}	adminsdk.HotelReportsResponse
//	@Failure		400		{object}	adminsdk.APIError
//	@Failure		403		{object}	adminsdk.APIError
//	@Router			/v1/reports/hotels [get]
func (h *ReportsHandler) HandleHotels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	p := domain.ReportPeriod{HotelID: q.Get("hotel")}
	var ok bool
	if p.From, ok = parseDate(w, q.Get("from"), "from"); !ok {
		return
	}
	if p.To, ok = parseDate(w, q.Get("to"), "to"); !ok {
		return
	}

	reports, err := h.ReportService.HotelReports(ctx, identityFrom(ctx), p)
	if err != nil {
		writeServiceError(w, r, err, "report")
		return
	}

	resp := adminsdk.HotelReportsResponse{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Hotels: make([]adminsdk.HotelReport, len(reports)),
	}
	var totals domain.HotelReport
	for i, rep := range reports {
		resp.Hotels[i] = toHotelReport(rep)
		totals.Revenue += rep.Revenue
		totals.Expenses += rep.Expenses
		totals.BookingCount += rep.BookingCount
		totals.ExpenseCount += rep.ExpenseCount
	}
	resp.Totals = toHotelReport(totals)
	httpx.WriteJSON(w, http.StatusOK, resp)
}
