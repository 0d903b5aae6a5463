package domain

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// Notification is a transient, user-facing message. Only Read ever changes
// after creation.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Severity  Severity
	CreatedAt time.Time
	Read      bool
}
