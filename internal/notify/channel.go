package notify

import (
	"context"

	"carwash-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Message is one user-facing notification.
type Message struct {
	UserID      uuid.UUID               `json:"user_id"`
	Title       string                  `json:"title"`
	Body        string                  `json:"body"`
	Type        entity.NotificationType `json:"type"`
	RelatedType string                  `json:"related_type,omitempty"`
	RelatedID   string                  `json:"related_id,omitempty"`
}

// Channel delivers messages to users. Send may be called concurrently.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}
