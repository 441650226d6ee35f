package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent is an audit row for every inbound payment-provider event,
// stored best-effort: a failed insert never blocks event processing.
type WebhookEvent struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement"`
	Provider  string         `gorm:"type:varchar(20);not null;index"`
	EventType string         `gorm:"type:varchar(100);not null;index"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	Outcome   string         `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
