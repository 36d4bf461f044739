package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/gym-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded  EventType = "login_succeeded"
	EventLoginFailed     EventType = "login_failed"
	EventAccountLocked   EventType = "account_locked"
	EventAccountUnlocked EventType = "account_unlocked"
	EventStaffCreated    EventType = "staff_created"
	EventStaffDeleted    EventType = "staff_deleted"
)

// AuthEventTypes lists the events describing authentication state changes.
func AuthEventTypes() []EventType {
	return []EventType{
		EventLoginSucceeded,
		EventLoginFailed,
		EventAccountLocked,
		EventAccountUnlocked,
		EventStaffCreated,
		EventStaffDeleted,
	}
}

// Actor identifies the staff member who triggered an administrative event.
type Actor struct {
	StaffID  int64  `json:"staffId"`
	UserName string `json:"userName"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserName  string      `json:"userName"`
	StaffID   *int64      `json:"staffId,omitempty"`
	Actor     *Actor      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps a fresh id and timestamp.
func NewEvent(eventType EventType, userName string, staffID *int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserName:  userName,
		StaffID:   staffID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload. UnknownAccount is set when the user name did not resolve.
type LoginFailedPayload struct {
	FailedAttempts    int  `json:"failedAttempts"`
	RemainingAttempts int  `json:"remainingAttempts"`
	UnknownAccount    bool `json:"unknownAccount,omitempty"`
	AlreadyLocked     bool `json:"alreadyLocked,omitempty"`
}

// AccountLockedPayload payload.
type AccountLockedPayload struct {
	Threshold int `json:"threshold"`
}

// StaffChangedPayload payload.
type StaffChangedPayload struct {
	Role domain.Role `json:"role"`
}
