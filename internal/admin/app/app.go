package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/hoteladmin/internal/admin/http"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/metrics"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/notify"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/service"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/session"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store/drivers/redis"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/hoteladmin/pkg/cryptox"
	"github.com/aussiebroadwan/hoteladmin/pkg/httpx"
	"github.com/aussiebroadwan/hoteladmin/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the admin console with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db          store.Store
	slots       store.Slots
	redisClient *goredis.Client // only with the redis slot driver
	keys        *Keys

	sessions      *session.Store
	notifications *notify.Store

	// Services
	authService         *service.AuthService
	customerService     *service.CustomerService
	bookingService      *service.BookingService
	expenseService      *service.ExpenseService
	reportService       *service.ReportService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "hotel-admin",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}
	ctx := context.Background()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initSlots(ctx); err != nil {
		app.close()
		return nil, err
	}

	sealer, err := cryptox.LoadSealer(cfg.SessionKeyFile, cfg.SessionKey)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to load session key: %w", err)
	}
	if cfg.usesDefaultSessionKey() {
		app.logger.Warn("stored sessions are sealed with the built-in key; set ADMIN_SESSION_KEY or ADMIN_SESSION_KEY_FILE")
	}

	app.keys, err = InitSessionKeys(ctx, app.slots, sealer, cfg.Issuer, app.logger)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}

	app.sessions = session.NewStore(session.NewVault(app.slots, sealer, app.logger), app.logger)
	app.notifications = notify.NewStore(cfg.NotificationLimit)

	if err := app.initServices(); err != nil {
		app.close()
		return nil, err
	}
	if cfg.SeedDemo {
		if _, err := app.authService.SeedDemoAccounts(slogx.WithContext(ctx, app.logger)); err != nil {
			app.close()
			return nil, fmt.Errorf("failed to seed demo accounts: %w", err)
		}
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Requests arriving before this finishes are answered with 503.
	go app.restoreSession(context.Background())

	app.housekeepingService.Start()

	app.logger.Info("admin console starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down admin console...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.close(); err != nil {
		return err
	}

	app.logger.Info("admin console stopped")
	return nil
}

// restoreSession performs the one startup restoration of the stored session.
func (app *Application) restoreSession(ctx context.Context) {
	err := app.sessions.Restore(ctx)
	_, ok := app.sessions.Current()

	switch {
	case err != nil:
		metrics.SessionRestoresTotal.WithLabelValues("error").Inc()
	case ok:
		metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	default:
		metrics.SessionRestoresTotal.WithLabelValues("none").Inc()
	}
}

// close releases the redis client and database, whichever are open.
func (app *Application) close() error {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			return err
		}
	}
	return nil
}

// initDatabase opens the sqlite database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		app.cfg.DatabaseFile,
	)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		app.close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSlots picks the durable slot store for the session and signing key.
func (app *Application) initSlots(ctx context.Context) error {
	if app.cfg.Slots.Driver != "redis" {
		app.slots = app.db.Slots()
		return nil
	}

	client, err := redis.Connect(ctx, redis.Config{
		Addr: app.cfg.Slots.RedisAddr,
		DB:   app.cfg.Slots.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redisClient = client
	app.slots = redis.NewSlots(client, redis.DefaultPrefix)

	app.logger.Info("using redis slot store", "addr", app.cfg.Slots.RedisAddr)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.keys.Signer,
		Hasher: cryptox.PasswordHasher{Pepper: pepper},
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}
	app.customerService = &service.CustomerService{Store: app.db}
	app.bookingService = &service.BookingService{Store: app.db}
	app.expenseService = &service.ExpenseService{Store: app.db}
	app.reportService = &service.ReportService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.sessions,
		app.notifications,
		app.keys.Verifier,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.KeySet,
		app.keys.Verifier,
		BuildVersion,
		app.db,
		app.sessions,
		app.notifications,
		app.logger,
	)

	router.AuthService = app.authService
	router.CustomerService = app.customerService
	router.BookingService = app.bookingService
	router.ExpenseService = app.expenseService
	router.ReportService = app.reportService
	router.LoginLimit = httpx.RateLimit{
		Requests: app.cfg.LoginRateLimit,
		Window:   time.Minute,
		Burst:    app.cfg.LoginRateLimit,
	}
	if s, ok := app.slots.(*redis.Slots); ok {
		router.SlotsPing = s.Ping
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
