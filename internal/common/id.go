package common

import "github.com/google/uuid"

// NewResultID generates a generation result identifier (qa_{uuid})
func NewResultID() string {
	return "qa_" + uuid.New().String()
}

// NewRequestID generates a correlation id for a single generation request
func NewRequestID() string {
	return "req_" + uuid.New().String()
}
