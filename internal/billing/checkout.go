package billing

import (
	"context"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"

	"tradingvault/internal/config"
)

// CheckoutService builds Stripe Checkout sessions for the three plans and
// returns the hosted redirect URL.
type CheckoutService struct {
	API    *client.API
	Config config.StripeConfig
	Logger *zap.Logger
}

// CreateSession normalizes the plan selector, builds the session request and
// creates it at Stripe. Provider-side failures come back as plain errors for
// the handler to surface in the response body.
func (s *CheckoutService) CreateSession(ctx context.Context, rawPlan, email, tgUsername string) (string, error) {
	plan, err := NormalizePlan(rawPlan)
	if err != nil {
		return "", err
	}

	params := s.sessionParams(plan, email, tgUsername)
	params.Context = ctx

	sess, err := s.API.CheckoutSessions.New(params)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("checkout session create failed",
				zap.String("plan", string(plan)),
				zap.Error(err),
			)
		}
		return "", err
	}
	if s.Logger != nil {
		s.Logger.Info("checkout session created",
			zap.String("plan", string(plan)),
			zap.String("session_id", sess.ID),
		)
	}
	return sess.URL, nil
}

// sessionParams builds the provider request for one plan:
//   - trial: subscription at the monthly price with a trial period, plus a
//     one-time upfront trial fee as an extra line item
//   - monthly: plain subscription at the monthly price
//   - lifetime: one-time payment at the lifetime price
//
// Customer identity travels as session metadata so the webhook processor can
// correlate the completed checkout back to a subscriber record.
func (s *CheckoutService) sessionParams(plan Plan, email, tgUsername string) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(s.Config.SuccessURL),
		CancelURL:          stripe.String(s.Config.CancelURL),
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	params.AddMetadata("email", email)
	params.AddMetadata("tg_username", tgUsername)

	switch plan {
	case PlanTrial:
		params.Mode = stripe.String(string(stripe.CheckoutSessionModeSubscription))
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.Config.MonthlyPriceID),
				Quantity: stripe.Int64(1),
			},
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(s.Config.TrialFeeCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("TradingVault 7-day Trial Fee"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		}
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(s.Config.TrialDays),
		}
	case PlanMonthly:
		params.Mode = stripe.String(string(stripe.CheckoutSessionModeSubscription))
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.Config.MonthlyPriceID),
				Quantity: stripe.Int64(1),
			},
		}
	case PlanLifetime:
		params.Mode = stripe.String(string(stripe.CheckoutSessionModePayment))
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.Config.LifetimePriceID),
				Quantity: stripe.Int64(1),
			},
		}
	}

	return params
}
