package profile

import (
	"sort"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/pkg/logger"
)

// staticAttributes are the descriptive customer columns carried over
// from the earliest order row, first-seen-wins.
type staticAttributes struct {
	lastName      string
	firstName     string
	country       string
	paymentStatus string
}

// Composer joins the journey, scored RFM/CLV records and static
// customer attributes into the final profile table.
type Composer struct {
	logger *logger.Logger
}

// New creates a Composer.
func New(log *logger.Logger) *Composer {
	return &Composer{logger: log}
}

// Compose produces one CustomerProfile per CLV record, left-joining
// the journey and static attributes by email. A customer missing from
// a join source keeps the row with nulls in the missing columns.
func (c *Composer) Compose(
	records []contracts.CLVRecord,
	journeys map[string]contracts.CustomerJourney,
	lines []contracts.OrderLine,
) []contracts.CustomerProfile {
	statics := firstSeenAttributes(lines)

	profiles := make([]contracts.CustomerProfile, 0, len(records))
	joinMisses := 0
	for _, r := range records {
		p := contracts.CustomerProfile{
			Email:                 r.Email,
			RecencyDays:           r.RecencyDays,
			Frequency:             r.Frequency,
			Monetary:              r.Monetary,
			RScore:                r.RScore,
			FScore:                r.FScore,
			MScore:                r.MScore,
			RFMScore:              r.RFMScore,
			Segment:               r.Segment,
			ChurnFlag:             r.ChurnFlag,
			AvgOrderValue:         r.AvgOrderValue,
			ExpectedLifespanYears: r.ExpectedLifespanYears,
			CLV:                   r.CLV,
		}

		if j, ok := journeys[r.Email]; ok {
			p.FirstPurchaseDate = j.FirstPurchaseDate
			p.FirstProduct = j.FirstProduct
			p.LastPurchaseDate = j.LastPurchaseDate
			p.ProductSequence = j.ProductSequence
			p.BoughtFlaggedCategory = j.BoughtFlaggedCategory
		}

		if s, ok := statics[r.Email]; ok {
			p.LastName = &s.lastName
			p.FirstName = &s.firstName
			p.Country = &s.country
			p.PaymentStatus = &s.paymentStatus
		} else {
			joinMisses++
		}

		profiles = append(profiles, p)
	}

	if joinMisses > 0 {
		c.logger.WithField("customers", joinMisses).Warn("Customers missing static attributes, columns left null")
	}

	return profiles
}

// firstSeenAttributes picks the static columns from the earliest order
// row per email, by sorted date.
func firstSeenAttributes(lines []contracts.OrderLine) map[string]*staticAttributes {
	sorted := make([]contracts.OrderLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderDate.Before(sorted[j].OrderDate)
	})

	statics := make(map[string]*staticAttributes)
	for _, l := range sorted {
		if _, seen := statics[l.CustomerEmail]; seen {
			continue
		}
		statics[l.CustomerEmail] = &staticAttributes{
			lastName:      l.LastName,
			firstName:     l.FirstName,
			country:       l.Country,
			paymentStatus: l.PaymentStatus,
		}
	}
	return statics
}
