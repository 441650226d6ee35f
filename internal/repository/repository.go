package repository

import (
	"context"

	"tradingvault/internal/models"
)

// SignalRepository reads the upstream signal store. The table is owned by
// the analysis pipeline; this service never writes to it.
type SignalRepository interface {
	// LatestSignal returns the newest row by created_at, or nil when the
	// table is empty.
	LatestSignal(ctx context.Context) (*models.Signal, error)
}

// SubscriberRepository writes subscriber lifecycle state in the user store.
type SubscriberRepository interface {
	InsertSubscriber(ctx context.Context, item *models.Subscriber) error
	// UpsertSubscriberByEmail inserts or, on email conflict, replaces the
	// mutable columns of the existing record.
	UpsertSubscriberByEmail(ctx context.Context, item *models.Subscriber) error
	// MarkCanceledByEmail flips status to canceled, leaving plan and
	// expired_at untouched. Returns the number of rows updated.
	MarkCanceledByEmail(ctx context.Context, email string) (int64, error)
	GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error)
}

// WebhookEventRepository records inbound provider events for audit.
type WebhookEventRepository interface {
	InsertWebhookEvent(ctx context.Context, item *models.WebhookEvent) error
}
