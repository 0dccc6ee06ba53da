package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/insight/internal/api/handlers"
	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/internal/normalize"
	"github.com/wonny/insight/internal/quality"
	"github.com/wonny/insight/internal/store"
	"github.com/wonny/insight/pkg/logger"
)

type stubProfileRepo struct {
	profiles []contracts.CustomerProfile
}

func (s *stubProfileRepo) ReplaceAll(ctx context.Context, runID string, profiles []contracts.CustomerProfile) error {
	s.profiles = profiles
	return nil
}

func (s *stubProfileRepo) GetAll(ctx context.Context) ([]contracts.CustomerProfile, error) {
	return s.profiles, nil
}

func (s *stubProfileRepo) GetByEmail(ctx context.Context, email string) (*contracts.CustomerProfile, error) {
	for i := range s.profiles {
		if s.profiles[i].Email == email {
			return &s.profiles[i], nil
		}
	}
	return nil, store.ErrProfileNotFound
}

func (s *stubProfileRepo) SegmentCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, p := range s.profiles {
		counts[p.Segment]++
	}
	return counts, nil
}

type stubOrderRepo struct {
	lines []contracts.RawOrderLine
}

func (s *stubOrderRepo) GetAll(ctx context.Context) ([]contracts.RawOrderLine, error) {
	return s.lines, nil
}

func (s *stubOrderRepo) SaveBatch(ctx context.Context, lines []contracts.RawOrderLine) error {
	s.lines = append(s.lines, lines...)
	return nil
}

func (s *stubOrderRepo) Count(ctx context.Context) (int, error) {
	return len(s.lines), nil
}

func newTestRouter(profiles []contracts.CustomerProfile, lines []contracts.RawOrderLine) http.Handler {
	log := logger.NewNop()
	handler := handlers.NewProfileHandler(
		&stubProfileRepo{profiles: profiles},
		&stubOrderRepo{lines: lines},
		normalize.New(0.99, log),
		quality.New(log),
		nil,
		log,
	)
	return NewRouter(handler, log)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListProfiles(t *testing.T) {
	router := newTestRouter([]contracts.CustomerProfile{
		{Email: "a@b.de", Segment: contracts.SegmentLoyalCustomers},
		{Email: "c@d.de", Segment: contracts.SegmentOthers},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int                         `json:"count"`
		Profiles []contracts.CustomerProfile `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Profiles, 2)
	assert.Equal(t, "a@b.de", body.Profiles[0].Email)
}

func TestGetProfileByEmail(t *testing.T) {
	router := newTestRouter([]contracts.CustomerProfile{
		{Email: "a@b.de", Segment: contracts.SegmentChampions, RFMScore: "444"},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles/a@b.de", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var profile contracts.CustomerProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "444", profile.RFMScore)
}

func TestGetProfileByEmail_NotFound(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles/missing@b.de", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Customer not found", body["error"])
}

func TestSegmentSummary(t *testing.T) {
	router := newTestRouter([]contracts.CustomerProfile{
		{Email: "a@b.de", Segment: contracts.SegmentLoyalCustomers},
		{Email: "c@d.de", Segment: contracts.SegmentLoyalCustomers},
		{Email: "e@f.de", Segment: contracts.SegmentAtRisk},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/segments/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Segments map[string]int `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Segments[contracts.SegmentLoyalCustomers])
	assert.Equal(t, 1, body.Segments[contracts.SegmentAtRisk])
}

func TestQualityEndpoint(t *testing.T) {
	payment := 49.9
	lines := []contracts.RawOrderLine{
		{CustomerEmail: "a@b.de", OrderID: "1", OrderDate: "05.01.2024", FirstPayment: &payment, ProductName: "Course", Country: "Germany"},
		{CustomerEmail: "", OrderID: "2", OrderDate: "06.01.2024", FirstPayment: &payment, ProductName: "Course"},
	}
	router := newTestRouter(nil, lines)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quality", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot contracts.DatasetQualitySnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, 2, snapshot.RawRows)
	assert.Equal(t, 1, snapshot.CleanRows)
	assert.Equal(t, 1, snapshot.DroppedMissing)
}
