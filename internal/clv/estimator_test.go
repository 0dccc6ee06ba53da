package clv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/insight/internal/contracts"
	"github.com/wonny/insight/pkg/logger"
)

func line(email, orderID string, amount float64) contracts.OrderLine {
	return contracts.OrderLine{
		CustomerEmail: email,
		OrderID:       orderID,
		OrderDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FirstPayment:  amount,
	}
}

func TestEstimate_ActiveCustomer(t *testing.T) {
	e := New(1.5, 0.5, logger.NewNop())

	records := []contracts.RFMRecord{
		{Email: "a@b.de", Frequency: 3, ChurnFlag: 0},
	}
	lines := []contracts.OrderLine{
		line("a@b.de", "o-1", 100),
		line("a@b.de", "o-2", 100),
		line("a@b.de", "o-3", 100),
	}

	out := e.Estimate(records, lines)
	require.Len(t, out, 1)
	assert.Equal(t, 100.0, out[0].AvgOrderValue)
	assert.Equal(t, 1.5, out[0].ExpectedLifespanYears)
	assert.Equal(t, 450.0, out[0].CLV) // 100 x 3 x 1.5, exactly
}

func TestEstimate_ChurnedCustomer(t *testing.T) {
	e := New(1.5, 0.5, logger.NewNop())

	records := []contracts.RFMRecord{
		{Email: "a@b.de", Frequency: 2, ChurnFlag: 1},
	}
	lines := []contracts.OrderLine{
		line("a@b.de", "o-1", 80),
		line("a@b.de", "o-2", 120),
	}

	out := e.Estimate(records, lines)
	require.Len(t, out, 1)
	assert.Equal(t, 100.0, out[0].AvgOrderValue)
	assert.Equal(t, 0.5, out[0].ExpectedLifespanYears)
	assert.Equal(t, 100.0, out[0].CLV) // 100 x 2 x 0.5
}

func TestEstimate_LineGranularityAOV(t *testing.T) {
	e := New(1.5, 0.5, logger.NewNop())

	// One order split across two lines: the AOV averages over lines,
	// the multiplier stays the distinct order count
	records := []contracts.RFMRecord{
		{Email: "a@b.de", Frequency: 1, ChurnFlag: 0},
	}
	lines := []contracts.OrderLine{
		line("a@b.de", "o-1", 30),
		line("a@b.de", "o-1", 60),
	}

	out := e.Estimate(records, lines)
	require.Len(t, out, 1)
	assert.Equal(t, 45.0, out[0].AvgOrderValue)
	assert.Equal(t, 67.5, out[0].CLV) // 45 x 1 x 1.5
}

func TestEstimate_MissingLines(t *testing.T) {
	e := New(1.5, 0.5, logger.NewNop())

	records := []contracts.RFMRecord{
		{Email: "ghost@b.de", Frequency: 2, ChurnFlag: 0},
	}

	out := e.Estimate(records, nil)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].AvgOrderValue)
	assert.Zero(t, out[0].CLV)
	assert.Equal(t, 1.5, out[0].ExpectedLifespanYears)
}
