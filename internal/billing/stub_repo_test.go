package billing

import (
	"context"
	"errors"

	"tradingvault/internal/models"
)

// stubUserStore is a test-only in-memory SubscriberRepository and
// WebhookEventRepository, recording every call.
type stubUserStore struct {
	inserts  []models.Subscriber
	upserts  []models.Subscriber
	canceled []string
	events   []models.WebhookEvent

	insertErr error
	upsertErr error
	cancelErr error
	eventErr  error

	cancelRows int64
}

func (s *stubUserStore) InsertSubscriber(ctx context.Context, item *models.Subscriber) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserts = append(s.inserts, *item)
	return nil
}

func (s *stubUserStore) UpsertSubscriberByEmail(ctx context.Context, item *models.Subscriber) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	if item.Email == "" {
		return errors.New("subscriber email is empty")
	}
	s.upserts = append(s.upserts, *item)
	return nil
}

func (s *stubUserStore) MarkCanceledByEmail(ctx context.Context, email string) (int64, error) {
	if s.cancelErr != nil {
		return 0, s.cancelErr
	}
	s.canceled = append(s.canceled, email)
	return s.cancelRows, nil
}

func (s *stubUserStore) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	for i := range s.upserts {
		if s.upserts[i].Email == email {
			return &s.upserts[i], nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) InsertWebhookEvent(ctx context.Context, item *models.WebhookEvent) error {
	if s.eventErr != nil {
		return s.eventErr
	}
	s.events = append(s.events, *item)
	return nil
}

func (s *stubUserStore) storeCalls() int {
	return len(s.inserts) + len(s.upserts) + len(s.canceled)
}

// stubCustomers resolves customer IDs from a fixed map.
type stubCustomers struct {
	emails  map[string]string
	lookups []string
}

func (s *stubCustomers) CustomerEmail(ctx context.Context, customerID string) (string, error) {
	s.lookups = append(s.lookups, customerID)
	if email, ok := s.emails[customerID]; ok {
		return email, nil
	}
	return "", errors.New("no such customer")
}
