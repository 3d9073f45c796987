package models

import "time"

// StatusEventType identifies a generation lifecycle event
type StatusEventType string

const (
	StatusGenerationStarted   StatusEventType = "generation_started"
	StatusGenerationEnriching StatusEventType = "generation_enriching"
	StatusGenerationCompleted StatusEventType = "generation_completed"
	StatusGenerationFailed    StatusEventType = "generation_failed"
)

// StatusEvent is published to status subscribers (WebSocket clients) during a generation
type StatusEvent struct {
	Type      StatusEventType `json:"type"`
	RequestID string          `json:"requestId"`
	ResultID  string          `json:"resultId,omitempty"`
	Topic     string          `json:"topic"`
	Message   string          `json:"message,omitempty"`
	Time      time.Time       `json:"time"`
}
