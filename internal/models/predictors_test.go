package models

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticClassifierDistribution(t *testing.T) {
	clf, err := NewLogisticClassifier(DefaultRiskModel())
	require.NoError(t, err)

	vectors := [][]float64{
		{0, 0, 0, 4, 0, 0},
		{16, 5, 30, 2.5, 3, 10},
		{60, 13, 80, 1, 12, 45},
		{1e6, 1e6, 1e6, 1, 1e6, 1e6},
	}
	for _, v := range vectors {
		label, probs, err := clf.Classify(context.Background(), v)
		require.NoError(t, err)
		require.Len(t, probs, 3)

		var sum, best float64
		for _, p := range probs {
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
			best = math.Max(best, p)
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
		assert.Equal(t, best, probs[label])
	}
}

func TestLogisticClassifierDirection(t *testing.T) {
	clf, err := NewLogisticClassifier(DefaultRiskModel())
	require.NoError(t, err)

	label, _, err := clf.Classify(context.Background(), []float64{60, 13, 80, 1, 12, 45})
	require.NoError(t, err)
	assert.Equal(t, "HIGH", label)

	label, _, err = clf.Classify(context.Background(), []float64{1, 1, 0, 4, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, "LOW", label)

	label, _, err = clf.Classify(context.Background(), []float64{16, 5, 30, 2.5, 3, 10})
	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", label)
}

func TestLogisticClassifierErrors(t *testing.T) {
	clf, err := NewLogisticClassifier(DefaultRiskModel())
	require.NoError(t, err)

	_, _, err = clf.Classify(context.Background(), []float64{1, 2})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = clf.Classify(ctx, make([]float64, RiskFeatureCount))
	assert.ErrorIs(t, err, context.Canceled)

	bad := DefaultRiskModel()
	bad.Scales[0] = 0
	_, err = NewLogisticClassifier(bad)
	assert.Error(t, err)

	bad = DefaultRiskModel()
	bad.SeverityOrder = []string{"CRITICAL"}
	_, err = NewLogisticClassifier(bad)
	assert.Error(t, err)
}

func TestLinearRegressor(t *testing.T) {
	reg, err := NewLinearRegressor(DefaultAssigneeModel())
	require.NoError(t, err)

	tests := []struct {
		name     string
		vector   []float64
		expected float64
	}{
		{"typical", []float64{50, 20, 0.8, 10}, 0.55*50 + 0.6*20 + 25*0.8 - 0.8*10 + 10},
		{"clamps high", []float64{100, 40, 1, 1}, 100},
		{"clamps low", []float64{0, -100, 0, 30}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Regress(context.Background(), tt.vector)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	_, err = reg.Regress(context.Background(), []float64{1})
	assert.Error(t, err)

	_, err = NewLinearRegressor(&AssigneeModel{Weights: []float64{1}})
	assert.Error(t, err)
}

func TestHashingEmbedder(t *testing.T) {
	emb, err := NewHashingEmbedder(64)
	require.NoError(t, err)
	ctx := context.Background()

	a, err := emb.Embed(ctx, "Go PostgreSQL")
	require.NoError(t, err)
	b, err := emb.Embed(ctx, "postgresql, go")
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.Equal(t, a, b)

	var norm float64
	for _, v := range a {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)

	empty, err := emb.Embed(ctx, "  ,, ")
	require.NoError(t, err)
	assert.Len(t, empty, 64)
	for _, v := range empty {
		assert.Zero(t, v)
	}

	_, err = NewHashingEmbedder(0)
	assert.Error(t, err)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"c++", "c#", "node", "js"}, Tokenize("C++, C# / Node.js"))
	assert.Empty(t, Tokenize(""))
}
