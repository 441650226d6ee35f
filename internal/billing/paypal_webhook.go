package billing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"tradingvault/internal/models"
	"tradingvault/internal/repository"
)

// PayPalProcessor maps PayPal webhook events to subscriber records. No
// signature verification is performed on this path; activation and lifetime
// events use plain inserts, so a replayed event surfaces as an insert
// conflict on the email index rather than a second active record.
type PayPalProcessor struct {
	Subscribers repository.SubscriberRepository
	Events      repository.WebhookEventRepository
	Logger      *zap.Logger

	Now func() time.Time
}

type paypalEvent struct {
	EventType string         `json:"event_type"`
	Resource  paypalResource `json:"resource"`
}

type paypalResource struct {
	PlanID     string      `json:"plan_id"`
	Subscriber paypalParty `json:"subscriber"`
	Payer      paypalParty `json:"payer"`
}

type paypalParty struct {
	EmailAddress string `json:"email_address"`
	PayerID      string `json:"payer_id"`
}

func classifyPayPalEvent(eventType string) transition {
	switch eventType {
	case "BILLING.SUBSCRIPTION.ACTIVATED":
		return transitionTrialStart // trial or monthly, decided by plan_id
	case "PAYMENT.SALE.COMPLETED":
		return transitionLifetime
	default:
		return transitionUnhandled
	}
}

// Process decodes and applies one event. A decode error is returned to the
// handler (malformed request); everything else degrades to a Status.
func (p *PayPalProcessor) Process(ctx context.Context, payload []byte) (Status, error) {
	var event paypalEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return StatusInvalid, err
	}

	status := p.apply(ctx, event)
	p.audit(ctx, event.EventType, payload, status)
	return status, nil
}

func (p *PayPalProcessor) apply(ctx context.Context, event paypalEvent) Status {
	tr := classifyPayPalEvent(event.EventType)
	if tr == transitionUnhandled {
		if p.Logger != nil {
			p.Logger.Info("paypal event ignored", zap.String("event_type", event.EventType))
		}
		return StatusOK
	}

	// Activation events carry the subscriber party, sale events the payer.
	party := event.Resource.Subscriber
	if tr == transitionLifetime {
		party = event.Resource.Payer
	}
	email := strings.TrimSpace(party.EmailAddress)
	if email == "" {
		if p.Logger != nil {
			p.Logger.Warn("paypal event skipped, no email",
				zap.String("event_type", event.EventType),
			)
		}
		return StatusSkipped
	}
	tgUsername := strings.TrimSpace(party.PayerID)
	if tgUsername == "" {
		tgUsername = "unknown"
	}

	now := p.now()
	item := &models.Subscriber{
		Email:      email,
		TGUsername: tgUsername,
		CreatedAt:  now,
		Status:     models.StatusActive,
	}
	switch tr {
	case transitionLifetime:
		item.Plan = models.PlanLifetime
	default:
		if strings.Contains(strings.ToLower(event.Resource.PlanID), "trial") {
			item.Plan = models.PlanTrial
			expires := now.Add(TrialPeriod)
			item.ExpiredAt = &expires
		} else {
			item.Plan = models.PlanMonthly
			expires := now.Add(MonthlyPeriod)
			item.ExpiredAt = &expires
		}
	}

	if err := p.Subscribers.InsertSubscriber(ctx, item); err != nil {
		if p.Logger != nil {
			p.Logger.Warn("subscriber insert failed",
				zap.String("event_type", event.EventType),
				zap.String("email", email),
				zap.Error(err),
			)
		}
		return StatusOK
	}

	if p.Logger != nil {
		p.Logger.Info("paypal event applied",
			zap.String("event_type", event.EventType),
			zap.String("email", email),
			zap.String("plan", item.Plan),
		)
	}
	return StatusOK
}

func (p *PayPalProcessor) audit(ctx context.Context, eventType string, payload []byte, status Status) {
	if p.Events == nil {
		return
	}
	err := p.Events.InsertWebhookEvent(ctx, &models.WebhookEvent{
		Provider:  "paypal",
		EventType: eventType,
		Payload:   payload,
		Outcome:   string(status),
	})
	if err != nil && p.Logger != nil {
		p.Logger.Warn("webhook audit insert failed", zap.Error(err))
	}
}

func (p *PayPalProcessor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}
