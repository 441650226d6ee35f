package billing

import (
	"fmt"
	"strings"
	"time"

	"tradingvault/internal/models"
)

// Plan is a canonical subscription plan key.
type Plan string

const (
	PlanTrial    Plan = models.PlanTrial
	PlanMonthly  Plan = models.PlanMonthly
	PlanLifetime Plan = models.PlanLifetime
)

// Access windows granted per plan. Lifetime has none: expired_at stays null.
const (
	TrialPeriod   = 7 * 24 * time.Hour
	MonthlyPeriod = 30 * 24 * time.Hour
)

// planAliases maps both the storefront labels and the canonical keys to a
// Plan. The storefront sends human-readable labels ("7-Day Trial") while
// webhooks and internal callers use the raw keys.
var planAliases = map[string]Plan{
	"7-Day Trial":     PlanTrial,
	"Monthly":         PlanMonthly,
	"Lifetime Access": PlanLifetime,
	"trial":           PlanTrial,
	"monthly":         PlanMonthly,
	"lifetime":        PlanLifetime,
}

// NormalizePlan resolves a raw plan selector to its canonical Plan. Unknown
// input is an error naming the offending value; no provider call should be
// made in that case.
func NormalizePlan(raw string) (Plan, error) {
	if p, ok := planAliases[strings.TrimSpace(raw)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("invalid plan: %s", raw)
}
