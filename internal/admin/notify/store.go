// Package notify holds the console's in-memory notification log.
package notify

import (
	"sync"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/domain"
	"github.com/aussiebroadwan/hoteladmin/pkg/idx"
)

// Store is a newest-first list of notifications. It is safe for concurrent
// use and never persisted.
type Store struct {
	mu    sync.Mutex
	items []domain.Notification
	limit int

	// Now is used to stamp notifications added without a timestamp.
	Now func() time.Time
}

// NewStore returns an empty store. A positive limit caps the list, evicting
// the oldest entries; zero keeps everything.
func NewStore(limit int) *Store {
	return &Store{limit: max(limit, 0), Now: time.Now}
}

// Add prepends n and returns it as stored, with id, timestamp and severity
// filled in when missing.
func (s *Store) Add(n domain.Notification) domain.Notification {
	if n.ID == "" {
		n.ID = idx.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.Now()
	}
	if n.Severity == "" {
		n.Severity = domain.SeverityInfo
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]domain.Notification{n}, s.items...)
	if s.limit > 0 && len(s.items) > s.limit {
		clear(s.items[s.limit:])
		s.items = s.items[:s.limit]
	}
	return n
}

// MarkAsRead flags the notification with id as read. It reports whether a
// notification matched; an unknown id changes nothing.
func (s *Store) MarkAsRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			return true
		}
	}
	return false
}

// Clear drops every notification.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// List returns a copy of the notifications, newest first.
func (s *Store) List() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// PruneRead removes read notifications created before cutoff and returns how
// many were removed. Unread ones are kept regardless of age.
func (s *Store) PruneRead(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, it := range s.items {
		if it.Read && it.CreatedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, it)
	}
	removed := len(s.items) - len(kept)
	clear(s.items[len(kept):])
	s.items = kept
	return removed
}
