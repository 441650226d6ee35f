package billing

import (
	"context"
	"testing"

	stripe "github.com/stripe/stripe-go/v82"

	"tradingvault/internal/config"
)

func testStripeConfig() config.StripeConfig {
	return config.StripeConfig{
		MonthlyPriceID:  "price_monthly",
		LifetimePriceID: "price_lifetime",
		TrialFeeCents:   1290,
		TrialDays:       7,
		SuccessURL:      "https://example.test/?status=success",
		CancelURL:       "https://example.test/?status=cancel",
	}
}

func TestSessionParamsTrial(t *testing.T) {
	svc := &CheckoutService{Config: testStripeConfig()}
	params := svc.sessionParams(PlanTrial, "a@b.com", "tg_user")

	if got := stripe.StringValue(params.Mode); got != string(stripe.CheckoutSessionModeSubscription) {
		t.Fatalf("mode = %q, want subscription", got)
	}
	if len(params.LineItems) != 2 {
		t.Fatalf("line items = %d, want 2 (recurring + upfront fee)", len(params.LineItems))
	}
	if got := stripe.StringValue(params.LineItems[0].Price); got != "price_monthly" {
		t.Fatalf("recurring price = %q", got)
	}
	fee := params.LineItems[1]
	if fee.PriceData == nil {
		t.Fatalf("upfront fee line item missing price_data")
	}
	if got := stripe.Int64Value(fee.PriceData.UnitAmount); got != 1290 {
		t.Fatalf("upfront amount = %d, want 1290", got)
	}
	if params.SubscriptionData == nil {
		t.Fatalf("subscription data missing")
	}
	if got := stripe.Int64Value(params.SubscriptionData.TrialPeriodDays); got != 7 {
		t.Fatalf("trial period = %d, want 7", got)
	}
	if params.Metadata["email"] != "a@b.com" || params.Metadata["tg_username"] != "tg_user" {
		t.Fatalf("identity metadata missing: %#v", params.Metadata)
	}
}

func TestSessionParamsMonthly(t *testing.T) {
	svc := &CheckoutService{Config: testStripeConfig()}
	params := svc.sessionParams(PlanMonthly, "a@b.com", "tg_user")

	if got := stripe.StringValue(params.Mode); got != string(stripe.CheckoutSessionModeSubscription) {
		t.Fatalf("mode = %q, want subscription", got)
	}
	if len(params.LineItems) != 1 {
		t.Fatalf("line items = %d, want 1", len(params.LineItems))
	}
	if got := stripe.StringValue(params.LineItems[0].Price); got != "price_monthly" {
		t.Fatalf("price = %q", got)
	}
	if params.SubscriptionData != nil {
		t.Fatalf("monthly plan must not carry a trial")
	}
}

func TestSessionParamsLifetime(t *testing.T) {
	svc := &CheckoutService{Config: testStripeConfig()}
	params := svc.sessionParams(PlanLifetime, "a@b.com", "tg_user")

	if got := stripe.StringValue(params.Mode); got != string(stripe.CheckoutSessionModePayment) {
		t.Fatalf("mode = %q, want payment", got)
	}
	if len(params.LineItems) != 1 {
		t.Fatalf("line items = %d, want 1", len(params.LineItems))
	}
	if got := stripe.StringValue(params.LineItems[0].Price); got != "price_lifetime" {
		t.Fatalf("price = %q", got)
	}
	if params.SubscriptionData != nil {
		t.Fatalf("lifetime plan must not carry subscription data")
	}
}

func TestCreateSessionInvalidPlanNoCall(t *testing.T) {
	// API is nil: any provider call would panic, so reaching the error
	// proves no call was attempted.
	svc := &CheckoutService{Config: testStripeConfig()}
	if _, err := svc.CreateSession(context.Background(), "yearly", "a@b.com", "tg_user"); err == nil {
		t.Fatalf("expected invalid plan error")
	}
}
