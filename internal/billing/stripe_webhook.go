package billing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"

	"tradingvault/internal/models"
	"tradingvault/internal/repository"
)

// CustomerDirectory resolves a provider customer ID to an email address.
// It exists so the webhook processor can be tested without Stripe.
type CustomerDirectory interface {
	CustomerEmail(ctx context.Context, customerID string) (string, error)
}

// StripeCustomers is the live CustomerDirectory backed by the Stripe API.
type StripeCustomers struct {
	API *client.API
}

func (d *StripeCustomers) CustomerEmail(ctx context.Context, customerID string) (string, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	cust, err := d.API.Customers.Get(customerID, params)
	if err != nil {
		return "", err
	}
	return cust.Email, nil
}

// StripeProcessor verifies inbound Stripe webhooks and applies the mapped
// subscriber transition.
type StripeProcessor struct {
	WebhookSecret string
	Subscribers   repository.SubscriberRepository
	Events        repository.WebhookEventRepository
	Customers     CustomerDirectory
	Logger        *zap.Logger

	// Now is overridable in tests; defaults to time.Now UTC.
	Now func() time.Time
}

// stripeObject is the slice of event.data.object this processor reads. In
// webhook payloads the customer field is the plain ID string.
type stripeObject struct {
	Customer      string            `json:"customer"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

func classifyStripeEvent(eventType stripe.EventType) transition {
	switch eventType {
	case "checkout.session.completed":
		return transitionTrialStart
	case "invoice.paid", "invoice.payment_succeeded":
		return transitionRenewal
	case "customer.subscription.deleted":
		return transitionCancel
	default:
		return transitionUnhandled
	}
}

// Process verifies the payload signature and applies the event. It never
// returns an error: every outcome degrades to a Status the handler reports
// back, so Stripe does not retry events we have already decided about.
func (p *StripeProcessor) Process(ctx context.Context, payload []byte, sigHeader string) Status {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, p.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if p.Logger != nil {
			p.Logger.Warn("stripe webhook verification failed", zap.Error(err))
		}
		return StatusInvalid
	}

	status := p.apply(ctx, event)
	p.audit(ctx, string(event.Type), payload, status)
	return status
}

func (p *StripeProcessor) apply(ctx context.Context, event stripe.Event) Status {
	var obj stripeObject
	if event.Data != nil {
		if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
			if p.Logger != nil {
				p.Logger.Warn("stripe event object decode failed",
					zap.String("event_type", string(event.Type)),
					zap.Error(err),
				)
			}
			return StatusSkipped
		}
	}

	tr := classifyStripeEvent(event.Type)
	if tr == transitionUnhandled {
		if p.Logger != nil {
			p.Logger.Info("stripe event ignored", zap.String("event_type", string(event.Type)))
		}
		return StatusOK
	}

	email := p.resolveEmail(ctx, obj)
	if email == "" {
		if p.Logger != nil {
			p.Logger.Warn("stripe event skipped, no resolvable email",
				zap.String("event_type", string(event.Type)),
				zap.String("customer", obj.Customer),
			)
		}
		return StatusSkipped
	}

	now := p.now()
	tgUsername := strings.TrimSpace(obj.Metadata["tg_username"])
	if tgUsername == "" {
		tgUsername = obj.Customer
	}
	if tgUsername == "" {
		tgUsername = "unknown"
	}

	var err error
	switch tr {
	case transitionTrialStart:
		expires := now.Add(TrialPeriod)
		err = p.Subscribers.UpsertSubscriberByEmail(ctx, &models.Subscriber{
			Email:      email,
			TGUsername: tgUsername,
			Plan:       models.PlanTrial,
			CreatedAt:  now,
			ExpiredAt:  &expires,
			Status:     models.StatusActive,
		})
	case transitionRenewal:
		expires := now.Add(MonthlyPeriod)
		err = p.Subscribers.UpsertSubscriberByEmail(ctx, &models.Subscriber{
			Email:      email,
			TGUsername: tgUsername,
			Plan:       models.PlanMonthly,
			CreatedAt:  now,
			ExpiredAt:  &expires,
			Status:     models.StatusActive,
		})
	case transitionCancel:
		var rows int64
		rows, err = p.Subscribers.MarkCanceledByEmail(ctx, email)
		if err == nil && rows == 0 && p.Logger != nil {
			p.Logger.Warn("stripe cancellation for unknown subscriber", zap.String("email", email))
		}
	}
	if err != nil {
		if p.Logger != nil {
			p.Logger.Warn("subscriber write failed",
				zap.String("event_type", string(event.Type)),
				zap.String("email", email),
				zap.Error(err),
			)
		}
		return StatusOK
	}

	if p.Logger != nil {
		p.Logger.Info("stripe event applied",
			zap.String("event_type", string(event.Type)),
			zap.String("email", email),
		)
	}
	return StatusOK
}

// resolveEmail prefers the metadata attached at checkout, then the event
// object's own email, then a customer lookup. Empty means unresolvable.
func (p *StripeProcessor) resolveEmail(ctx context.Context, obj stripeObject) string {
	if email := strings.TrimSpace(obj.Metadata["email"]); email != "" {
		return email
	}
	if email := strings.TrimSpace(obj.CustomerEmail); email != "" {
		return email
	}
	if obj.Customer == "" || p.Customers == nil {
		return ""
	}
	email, err := p.Customers.CustomerEmail(ctx, obj.Customer)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Warn("customer email lookup failed",
				zap.String("customer", obj.Customer),
				zap.Error(err),
			)
		}
		return ""
	}
	return strings.TrimSpace(email)
}

func (p *StripeProcessor) audit(ctx context.Context, eventType string, payload []byte, status Status) {
	if p.Events == nil {
		return
	}
	err := p.Events.InsertWebhookEvent(ctx, &models.WebhookEvent{
		Provider:  "stripe",
		EventType: eventType,
		Payload:   payload,
		Outcome:   string(status),
	})
	if err != nil && p.Logger != nil {
		p.Logger.Warn("webhook audit insert failed", zap.Error(err))
	}
}

func (p *StripeProcessor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}
