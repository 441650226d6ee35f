package billing

// Status is the outcome reported back to the payment provider.
type Status string

const (
	// StatusOK covers processed events and, deliberately, unrecognized
	// event types: answering non-2xx to those would only trigger provider
	// retry storms.
	StatusOK Status = "ok"
	// StatusInvalid means the payload failed signature verification.
	StatusInvalid Status = "invalid"
	// StatusSkipped means the event was authentic but lacked a resolvable
	// customer email, so no record was written.
	StatusSkipped Status = "skipped"
)

// transition is the subscriber lifecycle change an event maps to. Every
// provider event classifies to exactly one of these; the explicit unhandled
// variant replaces fall-through string dispatch.
type transition int

const (
	transitionUnhandled transition = iota
	// transitionTrialStart: first successful checkout, trial plan,
	// access for TrialPeriod.
	transitionTrialStart
	// transitionRenewal: recurring charge succeeded, monthly plan,
	// access extended by MonthlyPeriod.
	transitionRenewal
	// transitionCancel: subscription ended, status flips to canceled,
	// plan and expiry untouched.
	transitionCancel
	// transitionLifetime: one-time lifetime purchase, no expiry.
	transitionLifetime
)
