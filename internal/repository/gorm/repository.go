package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradingvault/internal/models"
)

// SignalStore reads signals_with_rates from the signal database.
type SignalStore struct {
	db *gorm.DB
}

func NewSignalStore(db *gorm.DB) *SignalStore {
	return &SignalStore{db: db}
}

func (s *SignalStore) LatestSignal(ctx context.Context) (*models.Signal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Signal
	err := s.db.WithContext(ctx).
		Model(&models.Signal{}).
		Order("created_at desc").
		Limit(1).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UserStore owns subscribers and webhook_events in the user database.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) InsertSubscriber(ctx context.Context, item *models.Subscriber) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *UserStore) UpsertSubscriberByEmail(ctx context.Context, item *models.Subscriber) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Email) == "" {
		return errors.New("subscriber email is empty")
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tg_username",
			"plan",
			"created_at",
			"expired_at",
			"status",
		}),
	}).Create(item).Error
}

func (s *UserStore) MarkCanceledByEmail(ctx context.Context, email string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if strings.TrimSpace(email) == "" {
		return 0, errors.New("email is empty")
	}
	res := s.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Where("email = ?", email).
		Update("status", models.StatusCanceled)
	return res.RowsAffected, res.Error
}

func (s *UserStore) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Subscriber
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *UserStore) InsertWebhookEvent(ctx context.Context, item *models.WebhookEvent) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}
