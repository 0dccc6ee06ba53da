package rfm

import (
	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/pkg/logger"
	"github.com/wonny/insight/pkg/stats"
)

// scoreBins is the target resolution for each metric. Degenerate
// distributions reduce it per metric instead of failing.
const scoreBins = 4

// Scorer converts the raw R/F/M metrics into 1..4 ordinal scores via
// quantile binning.
type Scorer struct {
	logger *logger.Logger
}

// NewScorer creates a Scorer.
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{logger: log}
}

// Score fills RScore, FScore, MScore and RFMScore on a copy of the
// input records. Scoring is independent per metric:
//
//   - recency bins are labeled inversely, most recent bin scores
//     highest
//   - frequency is ranked first so tied counts land in distinct bins
//   - monetary bins collapse to fewer levels when repeated values
//     produce duplicate edges
func (s *Scorer) Score(records []contracts.RFMRecord) []contracts.RFMRecord {
	if len(records) == 0 {
		return nil
	}

	scored := make([]contracts.RFMRecord, len(records))
	copy(scored, records)

	recency := make([]float64, len(scored))
	frequency := make([]float64, len(scored))
	monetary := make([]float64, len(scored))
	for i, r := range scored {
		recency[i] = float64(r.RecencyDays)
		frequency[i] = float64(r.Frequency)
		monetary[i] = float64(r.Monetary)
	}

	// Recency: lower is better, so invert the bin labels
	rBins := stats.QCut(recency, scoreBins)
	// Frequency: rank with first-occurrence tie-break, then bin the
	// ranks; ranks are distinct so the edges never collapse
	fBins := stats.QCut(stats.RankFirst(frequency), scoreBins)
	// Monetary: straight quantile cut, duplicate edges reduce the
	// resolution
	mBins := stats.QCut(monetary, scoreBins)

	for i := range scored {
		scored[i].RScore = rBins.Bins + 1 - rBins.Assignments[i]
		scored[i].FScore = fBins.Assignments[i]
		scored[i].MScore = mBins.Assignments[i]
		scored[i].RFMScore = contracts.ComposeRFMScore(scored[i].RScore, scored[i].FScore, scored[i].MScore)
	}

	if mBins.Bins < scoreBins {
		s.logger.WithFields(map[string]interface{}{
			"metric": "monetary",
			"bins":   mBins.Bins,
		}).Debug("Degenerate distribution, reduced score resolution")
	}

	return scored
}
