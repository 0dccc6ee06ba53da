package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/internal/normalize"
	"github.com/wonny/insight/pkg/logger"
)

func TestSnapshot(t *testing.T) {
	v := New(logger.NewNop())

	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	result := normalize.Result{
		RawRows:        6,
		DroppedMissing: 1,
		DroppedOutlier: 1,
		Lines: []contracts.OrderLine{
			{CustomerEmail: "a@b.de", OrderDate: date, ProductCategory: "course", Country: "DE", PaymentStatus: "paid"},
			{CustomerEmail: "a@b.de", OrderDate: date, ProductCategory: "", Country: "DE", PaymentStatus: "paid"},
			{CustomerEmail: "b@b.de", OrderDate: date, ProductCategory: "kit", Country: "", PaymentStatus: "paid"},
			{CustomerEmail: "c@b.de", OrderDate: date, ProductCategory: "course", Country: "AT", PaymentStatus: ""},
		},
	}

	s := v.Snapshot(result)
	require.NotNil(t, s)

	assert.Equal(t, 6, s.RawRows)
	assert.Equal(t, 4, s.CleanRows)
	assert.Equal(t, 1, s.DroppedMissing)
	assert.Equal(t, 1, s.DroppedOutlier)
	assert.Equal(t, 3, s.Customers)
	assert.InDelta(t, 0.75, s.Coverage["product_category"], 1e-9)
	assert.InDelta(t, 0.75, s.Coverage["country"], 1e-9)
	assert.InDelta(t, 0.75, s.Coverage["payment_status"], 1e-9)
	assert.InDelta(t, 0.0, s.Coverage["product_group"], 1e-9)
}

func TestSnapshot_EmptyResult(t *testing.T) {
	v := New(logger.NewNop())

	s := v.Snapshot(normalize.Result{RawRows: 3, DroppedMissing: 3})
	require.NotNil(t, s)
	assert.Equal(t, 0, s.CleanRows)
	assert.Equal(t, 0, s.Customers)
	assert.Empty(t, s.Coverage)
	assert.Zero(t, s.CoverageRate())
}
