package rfm

import (
	"sort"
	"time"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/pkg/logger"
)

// Aggregator computes the per-customer recency/frequency/monetary
// metrics from the cleaned order-line table.
type Aggregator struct {
	logger *logger.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{logger: log}
}

// SnapshotDate derives the reference "today" for recency: one day past
// the latest order in the dataset, so the most recent purchaser still
// has non-negative recency and reruns on the same data are identical.
func SnapshotDate(lines []contracts.OrderLine) (time.Time, error) {
	if len(lines) == 0 {
		return time.Time{}, contracts.ErrEmptyDataset
	}

	max := lines[0].OrderDate
	for _, l := range lines[1:] {
		if l.OrderDate.After(max) {
			max = l.OrderDate
		}
	}
	return max.AddDate(0, 0, 1), nil
}

// Aggregate computes one RFMRecord per email: recency in whole days
// against the snapshot date, frequency as the distinct order count and
// monetary as the payment sum. Records come back sorted by email.
// Fails with ErrEmptyDataset when there is nothing to aggregate.
func (a *Aggregator) Aggregate(lines []contracts.OrderLine) ([]contracts.RFMRecord, time.Time, error) {
	snapshot, err := SnapshotDate(lines)
	if err != nil {
		return nil, time.Time{}, err
	}

	type group struct {
		lastOrder time.Time
		orders    map[string]struct{}
		monetary  float64
	}

	groups := make(map[string]*group)
	for _, l := range lines {
		g, ok := groups[l.CustomerEmail]
		if !ok {
			g = &group{orders: make(map[string]struct{})}
			groups[l.CustomerEmail] = g
		}
		if l.OrderDate.After(g.lastOrder) {
			g.lastOrder = l.OrderDate
		}
		g.orders[l.OrderID] = struct{}{}
		g.monetary += l.FirstPayment
	}

	records := make([]contracts.RFMRecord, 0, len(groups))
	for email, g := range groups {
		records = append(records, contracts.RFMRecord{
			Email:       email,
			RecencyDays: int(snapshot.Sub(g.lastOrder).Hours() / 24),
			Frequency:   len(g.orders),
			Monetary:    g.monetary,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Email < records[j].Email
	})

	a.logger.WithFields(map[string]interface{}{
		"customers": len(records),
		"snapshot":  snapshot.Format("2006-01-02"),
	}).Debug("Aggregated RFM metrics")

	return records, snapshot, nil
}
