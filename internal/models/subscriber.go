package models

import "time"

// Subscriber plans.
const (
	PlanTrial    = "trial"
	PlanMonthly  = "monthly"
	PlanLifetime = "lifetime"
)

// Subscriber statuses.
const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
)

// Subscriber is one paying user. The email unique index backs the
// upsert-on-email path used by the Stripe webhook processor; at most one
// record exists per email.
type Subscriber struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement"`
	Email      string     `gorm:"type:text;not null;uniqueIndex"`
	TGUsername string     `gorm:"type:text;not null;default:'unknown';column:tg_username"`
	Plan       string     `gorm:"type:varchar(20);not null;index"`
	CreatedAt  time.Time  `gorm:"type:timestamptz;not null"`
	ExpiredAt  *time.Time `gorm:"type:timestamptz;index"` // nil for lifetime
	Status     string     `gorm:"type:varchar(20);not null;default:'active';index"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
