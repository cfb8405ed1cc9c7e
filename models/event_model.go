package models

import "time"

type SessionEventType string

const (
	EventSessionSnapshot SessionEventType = "snapshot"
)

// SessionEvent is pushed to display subscribers after every state transition.
type SessionEvent struct {
	ID        string           `json:"id"`
	Type      SessionEventType `json:"type"`
	Snapshot  Snapshot         `json:"snapshot"`
	Timestamp time.Time        `json:"timestamp"`
}
