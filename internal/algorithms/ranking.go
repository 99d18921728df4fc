package algorithms

import (
	"fmt"
	"strings"

	"tailorix_backend/internal/models"
)

// Tier priorities; lower sorts first.
const (
	PriorityGold    = 1
	PrioritySilver  = 2
	PriorityBasic   = 3
	PriorityUnknown = 4
)

// TierPriority maps a subscription plan name to its listing priority.
// Unrecognized or missing tiers sort last. Matching is exact on the
// canonical names.
func TierPriority(planName string) int {
	switch models.SubscriptionTier(planName) {
	case models.TierGold:
		return PriorityGold
	case models.TierSilver:
		return PrioritySilver
	case models.TierBasic:
		return PriorityBasic
	default:
		return PriorityUnknown
	}
}

// Rankable is the projection ranking needs from a tailor record.
type Rankable struct {
	PlanName      string
	RatingAverage float64
	RatingCount   int
}

// LessRanked orders two tailors for listing: tier priority ascending, then
// rating average descending, then rating count descending. Equal keys keep
// their input order when used with a stable sort.
func LessRanked(a, b Rankable) bool {
	pa, pb := TierPriority(a.PlanName), TierPriority(b.PlanName)
	if pa != pb {
		return pa < pb
	}
	if a.RatingAverage != b.RatingAverage {
		return a.RatingAverage > b.RatingAverage
	}
	return a.RatingCount > b.RatingCount
}

// TierPriorityCaseSQL renders the ORDER BY CASE expression for the given
// plan-name column. Built from TierPriority so the SQL ranking and the
// in-memory ranking cannot drift apart.
func TierPriorityCaseSQL(column string) string {
	var b strings.Builder
	b.WriteString("CASE " + column)
	for _, tier := range []models.SubscriptionTier{models.TierGold, models.TierSilver, models.TierBasic} {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", tier, TierPriority(string(tier)))
	}
	fmt.Fprintf(&b, " ELSE %d END", PriorityUnknown)
	return b.String()
}
