package interfaces

import "github.com/ternarybob/qanda/internal/models"

// StatusPublisher receives generation lifecycle events
type StatusPublisher interface {
	PublishStatus(event models.StatusEvent)
}
