package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/metrics"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/notify"
	"github.com/aussiebroadwan/hoteladmin/internal/admin/session"
	"github.com/aussiebroadwan/hoteladmin/pkg/jwtx"
)

// DefaultReadRetention is how long read notifications are kept.
const DefaultReadRetention = 24 * time.Hour

// HousekeepingService periodically ends sessions whose token no longer
// verifies and prunes old read notifications.
type HousekeepingService struct {
	Sessions      *session.Store
	Notifications *notify.Store
	Verifier      jwtx.Verifier
	Logger        *slog.Logger
	Interval      time.Duration
	ReadRetention time.Duration

	Now func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one minute.
func NewHousekeepingService(
	sessions *session.Store,
	notifications *notify.Store,
	verifier jwtx.Verifier,
	logger *slog.Logger,
	interval time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &HousekeepingService{
		Sessions:      sessions,
		Notifications: notifications,
		Verifier:      verifier,
		Logger:        logger,
		Interval:      interval,
		ReadRetention: DefaultReadRetention,
		Now:           time.Now,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-flight sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweeping before restoration finishes would race the restored session.
	select {
	case <-s.Sessions.Done():
	case <-s.stopCh:
		return
	}
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep performs one pass. Each step is independent of the other.
func (s *HousekeepingService) Sweep(ctx context.Context) {
	s.expireSession(ctx)

	if s.Notifications != nil && s.ReadRetention > 0 {
		if n := s.Notifications.PruneRead(s.Now().Add(-s.ReadRetention)); n > 0 {
			s.Logger.Debug("pruned read notifications", "count", n)
		}
		metrics.NotificationsCurrent.Set(float64(s.Notifications.Len()))
	}

	metrics.HousekeepingRunsTotal.Inc()
}

func (s *HousekeepingService) expireSession(ctx context.Context) {
	cur, ok := s.Sessions.Current()
	if !ok {
		return
	}

	_, err := s.Verifier.Verify(cur.Token)
	if err == nil {
		return
	}

	reason := "invalid"
	if errors.Is(err, jwtx.ErrExpired) {
		reason = "expired"
	}

	ended, err := s.Sessions.LogoutToken(ctx, cur.Token)
	if err != nil {
		s.Logger.Error("failed to clear stored session", "error", err)
	}
	if !ended {
		return
	}
	metrics.LogoutsTotal.WithLabelValues(reason).Inc()
	s.Logger.Info("session ended by housekeeping", "reason", reason, "account_id", cur.Identity.ID)
}
