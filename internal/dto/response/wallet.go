package response

import (
	"time"

	"carwash-booking/internal/data/entity"
)

type WalletResponse struct {
	Balance int64 `json:"balance"`
}

type WalletTransactionResponse struct {
	ID          string                 `json:"id"`
	Amount      int64                  `json:"amount"`
	Type        entity.TransactionType `json:"type"`
	Description string                 `json:"description"`
	Reference   *string                `json:"reference,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

type TopUpResponse struct {
	Transaction WalletTransactionResponse `json:"transaction"`
	Balance     int64                     `json:"balance"`
}

type NotificationResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      entity.NotificationType `json:"type"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

type NotificationListResponse struct {
	*PaginatedResponse[NotificationResponse]
	Unread int64 `json:"unread"`
}

// Helper converters
func WalletTransactionToResponse(txn *entity.WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		ID:          txn.ID.String(),
		Amount:      txn.Amount,
		Type:        txn.Type,
		Description: txn.Description,
		Reference:   txn.Reference,
		CreatedAt:   txn.CreatedAt,
	}
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
