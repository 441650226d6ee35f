package billing

import (
	"context"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"

	"tradingvault/internal/models"
)

const testSecret = "whsec_test_secret"

func signedHeader(payload []byte, secret string) string {
	at := time.Now()
	sig := webhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}

func stripeEventPayload(eventType, object string) []byte {
	return []byte(fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":%s}}`, eventType, object))
}

func newStripeProcessor(store *stubUserStore, customers *stubCustomers, now time.Time) *StripeProcessor {
	return &StripeProcessor{
		WebhookSecret: testSecret,
		Subscribers:   store,
		Events:        store,
		Customers:     customers,
		Now:           func() time.Time { return now },
	}
}

func TestStripeCheckoutCompleted(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubUserStore{}
	p := newStripeProcessor(store, &stubCustomers{}, now)

	payload := stripeEventPayload("checkout.session.completed",
		`{"customer":"cus_1","metadata":{"email":"a@b.com","tg_username":"tg_user"}}`)
	status := p.Process(context.Background(), payload, signedHeader(payload, testSecret))
	if status != StatusOK {
		t.Fatalf("status = %q, want ok", status)
	}
	if len(store.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(store.upserts))
	}
	sub := store.upserts[0]
	if sub.Email != "a@b.com" || sub.TGUsername != "tg_user" {
		t.Fatalf("identity = %q/%q", sub.Email, sub.TGUsername)
	}
	if sub.Plan != models.PlanTrial || sub.Status != models.StatusActive {
		t.Fatalf("plan/status = %q/%q", sub.Plan, sub.Status)
	}
	if sub.ExpiredAt == nil || !sub.ExpiredAt.Equal(now.Add(TrialPeriod)) {
		t.Fatalf("expired_at = %v, want %v", sub.ExpiredAt, now.Add(TrialPeriod))
	}
	if !sub.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", sub.CreatedAt, now)
	}
	if len(store.events) != 1 || store.events[0].Provider != "stripe" {
		t.Fatalf("audit events = %#v", store.events)
	}
}

func TestStripeInvalidSignature(t *testing.T) {
	store := &stubUserStore{}
	p := newStripeProcessor(store, &stubCustomers{}, time.Now().UTC())

	payload := stripeEventPayload("checkout.session.completed",
		`{"metadata":{"email":"a@b.com"}}`)
	status := p.Process(context.Background(), payload, signedHeader(payload, "whsec_other"))
	if status != StatusInvalid {
		t.Fatalf("status = %q, want invalid", status)
	}
	if store.storeCalls() != 0 {
		t.Fatalf("store calls = %d, want 0", store.storeCalls())
	}
	if len(store.events) != 0 {
		t.Fatalf("unverified payload must not be audited")
	}
}

func TestStripeInvoicePaidResolvesViaCustomer(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubUserStore{}
	customers := &stubCustomers{emails: map[string]string{"cus_9": "c@d.com"}}
	p := newStripeProcessor(store, customers, now)

	payload := stripeEventPayload("invoice.paid", `{"customer":"cus_9"}`)
	status := p.Process(context.Background(), payload, signedHeader(payload, testSecret))
	if status != StatusOK {
		t.Fatalf("status = %q, want ok", status)
	}
	if len(customers.lookups) != 1 || customers.lookups[0] != "cus_9" {
		t.Fatalf("lookups = %v", customers.lookups)
	}
	if len(store.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(store.upserts))
	}
	sub := store.upserts[0]
	if sub.Email != "c@d.com" || sub.Plan != models.PlanMonthly {
		t.Fatalf("email/plan = %q/%q", sub.Email, sub.Plan)
	}
	if sub.ExpiredAt == nil || !sub.ExpiredAt.Equal(now.Add(MonthlyPeriod)) {
		t.Fatalf("expired_at = %v, want now+30d", sub.ExpiredAt)
	}
}

func TestStripeInvoicePaidNoEmailSkipped(t *testing.T) {
	store := &stubUserStore{}
	p := newStripeProcessor(store, &stubCustomers{}, time.Now().UTC())

	payload := stripeEventPayload("invoice.paid", `{"customer":"cus_missing"}`)
	status := p.Process(context.Background(), payload, signedHeader(payload, testSecret))
	if status != StatusSkipped {
		t.Fatalf("status = %q, want skipped", status)
	}
	if store.storeCalls() != 0 {
		t.Fatalf("store calls = %d, want 0", store.storeCalls())
	}
}

func TestStripeSubscriptionDeleted(t *testing.T) {
	store := &stubUserStore{cancelRows: 1}
	customers := &stubCustomers{emails: map[string]string{"cus_1": "a@b.com"}}
	p := newStripeProcessor(store, customers, time.Now().UTC())

	payload := stripeEventPayload("customer.subscription.deleted", `{"customer":"cus_1"}`)
	status := p.Process(context.Background(), payload, signedHeader(payload, testSecret))
	if status != StatusOK {
		t.Fatalf("status = %q, want ok", status)
	}
	if len(store.canceled) != 1 || store.canceled[0] != "a@b.com" {
		t.Fatalf("canceled = %v, want [a@b.com]", store.canceled)
	}
	if len(store.upserts) != 0 || len(store.inserts) != 0 {
		t.Fatalf("cancellation must not rewrite plan or expiry")
	}
}

func TestStripeUnknownEventIgnored(t *testing.T) {
	store := &stubUserStore{}
	p := newStripeProcessor(store, &stubCustomers{}, time.Now().UTC())

	payload := stripeEventPayload("charge.refunded", `{"customer":"cus_1"}`)
	status := p.Process(context.Background(), payload, signedHeader(payload, testSecret))
	if status != StatusOK {
		t.Fatalf("status = %q, want ok (unhandled events must not trigger retries)", status)
	}
	if store.storeCalls() != 0 {
		t.Fatalf("store calls = %d, want 0", store.storeCalls())
	}
	if len(store.events) != 1 || store.events[0].EventType != "charge.refunded" {
		t.Fatalf("audit events = %#v", store.events)
	}
}

func TestStripeAuditFailureKeepsStatus(t *testing.T) {
	store := &stubUserStore{eventErr: fmt.Errorf("audit table gone")}
	p := newStripeProcessor(store, &stubCustomers{}, time.Now().UTC())

	payload := stripeEventPayload("checkout.session.completed",
		`{"metadata":{"email":"a@b.com","tg_username":"tg_user"}}`)
	status := p.Process(context.Background(), payload, signedHeader(payload, testSecret))
	if status != StatusOK {
		t.Fatalf("status = %q, audit insert must stay best-effort", status)
	}
	if len(store.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(store.upserts))
	}
}
