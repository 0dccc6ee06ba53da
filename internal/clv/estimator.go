package clv

import (
	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/pkg/logger"
)

// Estimator computes the customer-lifetime-value heuristic: average
// order value times distinct order count times an expected lifespan
// gated by the churn flag. Deliberately a two-tier constant model, not
// a probabilistic lifetime model.
type Estimator struct {
	activeYears  float64
	churnedYears float64
	logger       *logger.Logger
}

// New creates an Estimator with the two lifespan tiers.
func New(activeYears, churnedYears float64, log *logger.Logger) *Estimator {
	return &Estimator{
		activeYears:  activeYears,
		churnedYears: churnedYears,
		logger:       log,
	}
}

// Estimate extends each scored record with AOV, expected lifespan and
// CLV. The average order value is the mean payment across the
// customer's order lines (line granularity, not per order); frequency
// stays the distinct order count already on the record.
func (e *Estimator) Estimate(records []contracts.RFMRecord, lines []contracts.OrderLine) []contracts.CLVRecord {
	type sums struct {
		total float64
		count int
	}
	perEmail := make(map[string]*sums)
	for _, l := range lines {
		s, ok := perEmail[l.CustomerEmail]
		if !ok {
			s = &sums{}
			perEmail[l.CustomerEmail] = s
		}
		s.total += l.FirstPayment
		s.count++
	}

	out := make([]contracts.CLVRecord, 0, len(records))
	for _, r := range records {
		rec := contracts.CLVRecord{RFMRecord: r}

		if s, ok := perEmail[r.Email]; ok && s.count > 0 {
			rec.AvgOrderValue = s.total / float64(s.count)
		}

		if r.ChurnFlag == 0 {
			rec.ExpectedLifespanYears = e.activeYears
		} else {
			rec.ExpectedLifespanYears = e.churnedYears
		}

		rec.CLV = rec.AvgOrderValue * float64(r.Frequency) * rec.ExpectedLifespanYears
		out = append(out, rec)
	}

	return out
}
