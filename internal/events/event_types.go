package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventTokenRejected  EventType = "token_rejected"
)

// Event represents an auth audit event emitted by the gateway. Payloads
// never contain passwords or raw token bytes.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload"`
}

func newEvent(eventType EventType, payload map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// NewLoginSucceeded records a successful credential login.
func NewLoginSucceeded(username, role string) Event {
	return newEvent(EventLoginSucceeded, map[string]any{
		"username": username,
		"role":     role,
	})
}

// NewLoginFailed records a rejected login attempt. The reason is the
// internal taxonomy code, never surfaced to the client.
func NewLoginFailed(username, reason string) Event {
	return newEvent(EventLoginFailed, map[string]any{
		"username": username,
		"reason":   reason,
	})
}

// NewTokenRejected records a request-time token rejection.
func NewTokenRejected(reason, generation, path string) Event {
	return newEvent(EventTokenRejected, map[string]any{
		"reason":     reason,
		"generation": generation,
		"path":       path,
	})
}
