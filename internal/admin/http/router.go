package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/notify"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/session"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"

	_ "github.com/aussiebroadwan/hoteladmin/api/admin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	sessions      *session.Store
	notifications *notify.Store

	AuthService     *service.AuthService
	CustomerService *service.CustomerService
	BookingService  *service.BookingService
	ExpenseService  *service.ExpenseService
	ReportService   *service.ReportService

	// LoginLimit throttles POST /v1/session per client IP.
	LoginLimit httpx.RateLimit

	// SlotsPing, when set, is reported by /readyz. Used for a remote slot store.
	SlotsPing func(context.Context) error
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	sessions *session.Store,
	notifications *notify.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		keys:          keys,
		verifier:      verifier,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		logger:        logger,
		store:         st,
		sessions:      sessions,
		notifications: notifications,
		LoginLimit:    httpx.LoginLimit,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerNotifications()
	r.registerCustomers()
	r.registerBookings()
	r.registerExpenses()
	r.registerReports()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Hotel Admin Console API
//	@version		0.1.0
//	@description	Back office for hotel staff: one signed-in console session, in-app notifications,
//	@description	customer records, bookings, expenses and hotel reports, with access decided by role and assigned hotel.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/hoteladmin
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token returned by POST /v1/session. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

var (
	// Customer records are managed by owners and managers.
	customerRoles = []domain.Role{domain.RoleOwner, domain.RoleManager}

	// Bookings are read by every role; accountants cannot create them.
	bookingReadRoles  = []domain.Role{domain.RoleOwner, domain.RoleManager, domain.RoleAccountant}
	bookingWriteRoles = []domain.Role{domain.RoleOwner, domain.RoleManager}

	// Every role keeps the books; managers only for their own hotel.
	financeRoles = []domain.Role{domain.RoleOwner, domain.RoleManager, domain.RoleAccountant}
)

func (r *Router) registerSession() {
	h := &SessionHandler{
		AuthService:   r.AuthService,
		Sessions:      r.sessions,
		Notifications: r.notifications,
	}

	r.Mux.Handle("POST /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.LoginLimit.OrDefault(httpx.LoginLimit)),
		),
	)
	r.Mux.HandleFunc("GET /v1/session", h.HandleGet)
	r.Mux.HandleFunc("DELETE /v1/session", h.HandleLogout)
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{Notifications: r.notifications}

	// Any signed-in role.
	guarded := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.Guard(nil))
	}

	r.Mux.Handle("GET /v1/notifications", guarded(h.HandleList))
	r.Mux.Handle("POST /v1/notifications", guarded(h.HandleAdd))
	r.Mux.Handle("POST /v1/notifications/{id}/read", guarded(h.HandleMarkRead))
	r.Mux.Handle("DELETE /v1/notifications", guarded(h.HandleClear))
}

func (r *Router) registerCustomers() {
	h := &CustomersHandler{CustomerService: r.CustomerService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.Guard(customerRoles))
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.Guard(customerRoles),
			httpx.RateLimitBySubject(httpx.WriteLimit),
		)
	}

	r.Mux.Handle("GET /v1/customers", read(h.HandleList))
	r.Mux.Handle("POST /v1/customers", write(h.HandleCreate))
	r.Mux.Handle("GET /v1/customers/{id}", read(h.HandleGet))
	r.Mux.Handle("PATCH /v1/customers/{id}", write(h.HandleUpdate))
}

func (r *Router) registerBookings() {
	h := &BookingsHandler{
		BookingService:  r.BookingService,
		CustomerService: r.CustomerService,
	}

	r.Mux.Handle("GET /v1/customers/{id}/bookings",
		httpx.Chain(http.HandlerFunc(h.HandleListForCustomer), r.Guard(bookingReadRoles)))
	r.Mux.Handle("GET /v1/bookings/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), r.Guard(bookingReadRoles)))
	r.Mux.Handle("POST /v1/bookings",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.Guard(bookingWriteRoles),
			httpx.RateLimitBySubject(httpx.WriteLimit),
		),
	)
}

func (r *Router) registerExpenses() {
	h := &ExpensesHandler{ExpenseService: r.ExpenseService}

	r.Mux.Handle("GET /v1/expenses",
		httpx.Chain(http.HandlerFunc(h.HandleList), r.Guard(financeRoles)))
	r.Mux.Handle("POST /v1/expenses",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.Guard(financeRoles),
			httpx.RateLimitBySubject(httpx.WriteLimit),
		),
	)
}

func (r *Router) registerReports() {
	h := &ReportsHandler{ReportService: r.ReportService}

	r.Mux.Handle("GET /v1/reports/hotels",
		httpx.Chain(http.HandlerFunc(h.HandleHotels), r.Guard(financeRoles)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.sessions, r.SlotsPing))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
