package rfm

import (
	"github.com/wonny/insight/internal/contracts"
)

// RuleInput carries everything a segmentation rule may look at: the
// raw metrics and the derived scores.
type RuleInput struct {
	RecencyDays int
	Frequency   int
	Monetary    float64
	R, F, M     int
}

// Rule pairs a segment label with its predicate.
type Rule struct {
	Label string
	Match func(RuleInput) bool
}

// Engine assigns one lifecycle segment per customer by evaluating an
// ordered rule list, first match wins. Some rule ranges overlap on
// purpose; the order is the tie-breaker and must not be rearranged.
type Engine struct {
	rules     []Rule
	churnDays int
}

// NewEngine creates an Engine. newCustomerDays is the recency cutoff
// for the "New Customers" rule, churnDays the churn flag threshold.
func NewEngine(newCustomerDays, churnDays int) *Engine {
	return &Engine{
		churnDays: churnDays,
		rules: []Rule{
			{
				Label: contracts.SegmentNewCustomers,
				Match: func(in RuleInput) bool {
					return in.RecencyDays <= newCustomerDays && in.Frequency == 1
				},
			},
			{
				Label: contracts.SegmentChampions,
				Match: func(in RuleInput) bool {
					return in.Frequency > 4 && in.R == 4 && in.F == 4 && in.M >= 3
				},
			},
			{
				Label: contracts.SegmentLoyalCustomers,
				Match: func(in RuleInput) bool {
					return in.Frequency >= 4 && in.R >= 3 && in.F >= 3 && in.M >= 2
				},
			},
			{
				Label: contracts.SegmentPotentialLoyalist,
				Match: func(in RuleInput) bool {
					return in.Frequency >= 2 && in.R >= 2 && in.F >= 2 && in.M >= 2
				},
			},
			{
				Label: contracts.SegmentNeedsAttention,
				Match: func(in RuleInput) bool {
					return in.Frequency >= 1 && in.R <= 2 && in.F >= 2 && in.M >= 2
				},
			},
			{
				Label: contracts.SegmentAtRisk,
				Match: func(in RuleInput) bool {
					return in.R == 1 && in.F <= 2 && in.M <= 2
				},
			},
		},
	}
}

// Classify returns the first matching segment label, or "Others" when
// no rule fires.
func (e *Engine) Classify(in RuleInput) string {
	for _, rule := range e.rules {
		if rule.Match(in) {
			return rule.Label
		}
	}
	return contracts.SegmentOthers
}

// ChurnFlag returns 1 when the recency exceeds the churn threshold.
// Evaluated independently of the segment.
func (e *Engine) ChurnFlag(recencyDays int) int {
	if recencyDays > e.churnDays {
		return 1
	}
	return 0
}

// Apply fills Segment and ChurnFlag on a copy of the scored records.
func (e *Engine) Apply(records []contracts.RFMRecord) []contracts.RFMRecord {
	out := make([]contracts.RFMRecord, len(records))
	copy(out, records)

	for i, r := range out {
		out[i].Segment = e.Classify(RuleInput{
			RecencyDays: r.RecencyDays,
			Frequency:   r.Frequency,
			Monetary:    r.Monetary,
			R:           r.RScore,
			F:           r.FScore,
			M:           r.MScore,
		})
		out[i].ChurnFlag = e.ChurnFlag(r.RecencyDays)
	}
	return out
}
