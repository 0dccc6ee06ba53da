package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/internal/normalize"
	"github.com/wonny/insight/internal/quality"
	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/logger"
	"github.com/wonny/insight/pkg/redis"
)

const segmentSummaryCacheTTL = 5 * time.Minute

// ProfileHandler serves the derived customer profile table.
type ProfileHandler struct {
	profiles   contracts.ProfileRepository
	orders     contracts.OrderRepository
	normalizer *normalize.Normalizer
	validator  *quality.Validator
	cache      *redis.Cache
	logger     *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	profiles contracts.ProfileRepository,
	orders contracts.OrderRepository,
	normalizer *normalize.Normalizer,
	validator *quality.Validator,
	cache *redis.Cache,
	log *logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profiles:   profiles,
		orders:     orders,
		normalizer: normalizer,
		validator:  validator,
		cache:      cache,
		logger:     log,
	}
}

// List returns all customer profiles
// GET /api/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.profiles.GetAll(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list profiles")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve profiles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

// GetByEmail returns one customer profile
// GET /api/profiles/{email}
func (h *ProfileHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := mux.Vars(r)["email"]

	profile, err := h.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get profile")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// SegmentSummary returns customer counts per segment
// GET /api/segments/summary
func (h *ProfileHandler) SegmentSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var counts map[string]int
	if h.cache != nil {
		if hit, err := h.cache.Get(ctx, "segment_summary", &counts); err == nil && hit {
			respondJSON(w, http.StatusOK, map[string]interface{}{"segments": counts})
			return
		}
	}

	counts, err := h.profiles.SegmentCounts(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count segments")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve segment summary")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, "segment_summary", counts, segmentSummaryCacheTTL); err != nil {
			h.logger.WithError(err).Warn("Failed to cache segment summary")
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"segments": counts})
}

// Quality recomputes the dataset quality snapshot from the stored
// order lines
// GET /api/quality
func (h *ProfileHandler) Quality(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := h.orders.GetAll(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load order lines")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve order lines")
		return
	}

	result := h.normalizer.Normalize(raw)
	snapshot := h.validator.Snapshot(result)

	respondJSON(w, http.StatusOK, snapshot)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
