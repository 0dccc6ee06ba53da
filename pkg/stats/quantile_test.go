package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{name: "empty", values: nil, q: 0.5, want: 0},
		{name: "single value", values: []float64{42}, q: 0.99, want: 42},
		{name: "median of even count", values: []float64{1, 2, 3, 4}, q: 0.5, want: 2.5},
		{name: "median of odd count", values: []float64{3, 1, 2}, q: 0.5, want: 2},
		{name: "first quartile interpolates", values: []float64{1, 2, 3, 4}, q: 0.25, want: 1.75},
		{name: "minimum", values: []float64{5, 1, 3}, q: 0, want: 1},
		{name: "maximum", values: []float64{5, 1, 3}, q: 1, want: 5},
		{name: "99th percentile", values: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, q: 0.99, want: 99.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.values, tt.q)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestQuantile_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestQCut_Quartiles(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	b := QCut(values, 4)
	require.Equal(t, 4, b.Bins)
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 4, 4}, b.Assignments)
}

func TestQCut_DuplicateEdgesCollapse(t *testing.T) {
	// Heavy repetition forces identical quantile edges
	values := []float64{1, 1, 1, 1, 1, 1, 10, 20}

	b := QCut(values, 4)
	assert.Less(t, b.Bins, 4)
	assert.GreaterOrEqual(t, b.Bins, 1)
	for _, a := range b.Assignments {
		assert.GreaterOrEqual(t, a, 1)
		assert.LessOrEqual(t, a, b.Bins)
	}
	// The repeated minimum lands in the lowest bin, the max in the highest
	assert.Equal(t, 1, b.Assignments[0])
	assert.Equal(t, b.Bins, b.Assignments[7])
}

func TestQCut_AllIdentical(t *testing.T) {
	values := []float64{7, 7, 7, 7}

	b := QCut(values, 4)
	require.Equal(t, 1, b.Bins)
	assert.Equal(t, []int{1, 1, 1, 1}, b.Assignments)
}

func TestQCut_FewerValuesThanBins(t *testing.T) {
	values := []float64{5, 10}

	b := QCut(values, 4)
	require.GreaterOrEqual(t, b.Bins, 1)
	// Lowest value in bin 1, highest in the top bin
	assert.Equal(t, 1, b.Assignments[0])
	assert.Equal(t, b.Bins, b.Assignments[1])
}

func TestQCut_Idempotent(t *testing.T) {
	values := []float64{12, 5, 880, 5, 42, 199, 3, 77}

	first := QCut(values, 4)
	second := QCut(values, 4)
	assert.Equal(t, first, second)
}

func TestRankFirst(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{name: "distinct values", values: []float64{30, 10, 20}, want: []float64{3, 1, 2}},
		{name: "ties keep original order", values: []float64{1, 1, 1}, want: []float64{1, 2, 3}},
		{name: "mixed ties", values: []float64{2, 1, 2, 1}, want: []float64{3, 1, 4, 2}},
		{name: "empty", values: nil, want: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankFirst(tt.values)
			assert.Equal(t, tt.want, got)
		})
	}
}
