package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/insight/internal/clv"
	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/internal/journey"
	"github.com/wonny/insight/internal/normalize"
	"github.com/wonny/insight/internal/profile"
	"github.com/wonny/insight/internal/quality"
	"github.com/wonny/insight/internal/rfm"
	"github.com/wonny/insight/pkg/config"
	"github.com/wonny/insight/pkg/logger"
)

// Pipeline orchestrates the profile derivation stages: normalize,
// quality snapshot, journey, RFM aggregation, scoring, segmentation,
// CLV, composition. Each stage consumes the previous stage's output;
// nothing is mutated in place and every run recomputes from the full
// history.
type Pipeline struct {
	normalizer *normalize.Normalizer
	validator  *quality.Validator
	journeys   *journey.Reconstructor
	aggregator *rfm.Aggregator
	scorer     *rfm.Scorer
	segments   *rfm.Engine
	estimator  *clv.Estimator
	composer   *profile.Composer
	logger     *logger.Logger
}

// RunResult is everything one pipeline run produces.
type RunResult struct {
	RunID        string
	StartedAt    time.Time
	Duration     time.Duration
	SnapshotDate time.Time
	Quality      *contracts.DatasetQualitySnapshot
	Profiles     []contracts.CustomerProfile
}

// New wires all stages from the analytics configuration.
func New(cfg config.AnalyticsConfig, log *logger.Logger) *Pipeline {
	return &Pipeline{
		normalizer: normalize.New(cfg.OutlierQuantile, log),
		validator:  quality.New(log),
		journeys:   journey.New(cfg.FlaggedCategoryKeywords, cfg.SequenceSeparator),
		aggregator: rfm.NewAggregator(log),
		scorer:     rfm.NewScorer(log),
		segments:   rfm.NewEngine(cfg.RecencyNewCustomerDays, cfg.ChurnRecencyDays),
		estimator:  clv.New(cfg.LifespanActiveYears, cfg.LifespanChurnedYears, log),
		composer:   profile.New(log),
		logger:     log,
	}
}

// Run derives the full customer profile table from the raw order-line
// history. Fatal conditions (nothing survives cleaning) abort the run
// rather than producing a partial table.
func (p *Pipeline) Run(ctx context.Context, raw []contracts.RawOrderLine) (*RunResult, error) {
	runID := uuid.NewString()
	startedAt := time.Now()
	log := p.logger.WithField("run_id", runID)

	log.WithField("raw_rows", len(raw)).Info("Starting profile derivation")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 1. Clean and type the raw rows
	cleaned := p.normalizer.Normalize(raw)
	if len(cleaned.Lines) == 0 {
		return nil, fmt.Errorf("derive profiles: %w", contracts.ErrEmptyDataset)
	}

	// 2. Quality snapshot over the surviving rows
	qualitySnapshot := p.validator.Snapshot(cleaned)

	// 3. Purchase journeys
	journeys := p.journeys.Reconstruct(cleaned.Lines)

	// 4. RFM metrics against the snapshot date
	records, snapshotDate, err := p.aggregator.Aggregate(cleaned.Lines)
	if err != nil {
		return nil, fmt.Errorf("aggregate rfm: %w", err)
	}

	// 5. Quantile scores, then segments and churn
	scored := p.scorer.Score(records)
	segmented := p.segments.Apply(scored)

	// 6. Lifetime value
	valued := p.estimator.Estimate(segmented, cleaned.Lines)

	// 7. Final profile table
	profiles := p.composer.Compose(valued, journeys, cleaned.Lines)

	result := &RunResult{
		RunID:        runID,
		StartedAt:    startedAt,
		Duration:     time.Since(startedAt),
		SnapshotDate: snapshotDate,
		Quality:      qualitySnapshot,
		Profiles:     profiles,
	}

	log.WithFields(map[string]interface{}{
		"customers": len(profiles),
		"snapshot":  snapshotDate.Format("2006-01-02"),
		"duration":  result.Duration.String(),
	}).Info("Profile derivation completed")

	return result, nil
}
