package journey

import (
	"sort"
	"strings"

	"github.com/wonny/insight/internal/contracts"
)

// Reconstructor derives the per-customer purchase narrative: first
// purchase, last purchase, the chronological category sequence and the
// flagged-category membership.
type Reconstructor struct {
	flaggedKeywords map[string]struct{}
	separator       string
}

// New creates a Reconstructor. keywords is the set of category or
// product-group labels that count as "flagged"; separator joins the
// category sequence tokens.
func New(keywords []string, separator string) *Reconstructor {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	return &Reconstructor{
		flaggedKeywords: set,
		separator:       separator,
	}
}

// Reconstruct builds one CustomerJourney per distinct email in the
// cleaned input. Row order does not matter: lines are sorted by
// (email, order date) before the fold.
func (r *Reconstructor) Reconstruct(lines []contracts.OrderLine) map[string]contracts.CustomerJourney {
	sorted := make([]contracts.OrderLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CustomerEmail != sorted[j].CustomerEmail {
			return sorted[i].CustomerEmail < sorted[j].CustomerEmail
		}
		return sorted[i].OrderDate.Before(sorted[j].OrderDate)
	})

	journeys := make(map[string]contracts.CustomerJourney)
	var tokens []string

	flush := func(group []contracts.OrderLine) {
		if len(group) == 0 {
			return
		}

		first := group[0]
		last := group[len(group)-1]

		tokens = tokens[:0]
		flagged := false
		for _, l := range group {
			// Empty categories stay as empty tokens so the sequence
			// length mirrors the order count
			tokens = append(tokens, l.ProductCategory)
			if r.isFlagged(l) {
				flagged = true
			}
		}

		journeys[first.CustomerEmail] = contracts.CustomerJourney{
			Email:                 first.CustomerEmail,
			FirstPurchaseDate:     first.OrderDate,
			FirstProduct:          first.ProductName,
			LastPurchaseDate:      last.OrderDate,
			ProductSequence:       strings.Join(tokens, r.separator),
			BoughtFlaggedCategory: flagged,
		}
	}

	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i].CustomerEmail != sorted[start].CustomerEmail {
			flush(sorted[start:i])
			start = i
		}
	}

	return journeys
}

// isFlagged reports whether the line's grouping labels hit the keyword
// set. Both the product group and the category are checked; the source
// system fills whichever it has.
func (r *Reconstructor) isFlagged(l contracts.OrderLine) bool {
	if _, ok := r.flaggedKeywords[l.ProductGroup]; ok {
		return true
	}
	_, ok := r.flaggedKeywords[l.ProductCategory]
	return ok
}
