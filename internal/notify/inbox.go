package notify

import (
	"context"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"

	"github.com/google/uuid"
)

// InboxChannel stores messages in the notifications table read by the app.
type InboxChannel struct {
	repo repository.NotificationRepository
}

func NewInboxChannel(repo repository.NotificationRepository) *InboxChannel {
	return &InboxChannel{repo: repo}
}

func (c *InboxChannel) Name() string { return "inbox" }

func (c *InboxChannel) Send(ctx context.Context, msg Message) error {
	return c.repo.Create(ctx, &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  msg.UserID,
		Title:   msg.Title,
		Message: msg.Body,
		Type:    msg.Type,
	})
}
