package finmetrics_test

import (
	"testing"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/finmetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deltasByMetric(deltas []finmetrics.MetricDelta) map[string]finmetrics.MetricDelta {
	byName := make(map[string]finmetrics.MetricDelta, len(deltas))
	for _, d := range deltas {
		byName[d.Metric] = d
	}
	return byName
}

func TestCompareSummaries_CoversEveryMetric(t *testing.T) {
	deltas := finmetrics.CompareSummaries(domain.PFSSummaries{}, domain.PFSSummaries{}, nil)
	assert.Len(t, deltas, len(finmetrics.DefaultMetricDirections()))
	for _, d := range deltas {
		assert.Equal(t, finmetrics.Unchanged, d.Direction, "metric %s", d.Metric)
		assert.True(t, d.Delta.IsZero())
	}
}

func TestCompareSummaries_DirectionClassification(t *testing.T) {
	base := domain.PFSSummaries{
		NetWorth:         dec(500000),
		TotalLiabilities: dec(200000),
		TotalCash:        dec(10000),
	}
	target := domain.PFSSummaries{
		NetWorth:         dec(550000), // up, higher is better
		TotalLiabilities: dec(250000), // up, lower is better
		TotalCash:        dec(10000),  // unchanged
	}

	byName := deltasByMetric(finmetrics.CompareSummaries(base, target, nil))

	netWorth := byName["netWorth"]
	assert.True(t, netWorth.Delta.Equal(dec(50000)))
	assert.Equal(t, finmetrics.Improved, netWorth.Direction)
	assert.True(t, netWorth.HigherIsBetter)

	liabilities := byName["totalLiabilities"]
	assert.True(t, liabilities.Delta.Equal(dec(50000)))
	assert.Equal(t, finmetrics.Declined, liabilities.Direction)
	assert.False(t, liabilities.HigherIsBetter)

	assert.Equal(t, finmetrics.Unchanged, byName["totalCash"].Direction)
}

func TestCompareSummaries_Antisymmetric(t *testing.T) {
	base := domain.PFSSummaries{
		NetWorth:         dec(500000),
		TotalAssets:      dec(700000),
		TotalLiabilities: dec(200000),
		DebtToAssetRatio: 28.57,
		AverageDSCR:      1.4,
	}
	target := domain.PFSSummaries{
		NetWorth:         dec(450000),
		TotalAssets:      dec(710000),
		TotalLiabilities: dec(260000),
		DebtToAssetRatio: 36.62,
		AverageDSCR:      1.1,
	}

	forward := finmetrics.CompareSummaries(base, target, nil)
	backward := deltasByMetric(finmetrics.CompareSummaries(target, base, nil))

	for _, f := range forward {
		b, ok := backward[f.Metric]
		require.True(t, ok)
		assert.True(t, f.Delta.Equal(b.Delta.Neg()), "metric %s: %s vs %s", f.Metric, f.Delta, b.Delta)
		if !f.Delta.IsZero() {
			assert.NotEqual(t, f.Direction, b.Direction, "metric %s", f.Metric)
		}
	}
}

func TestCompareSummaries_CustomDirections(t *testing.T) {
	base := domain.PFSSummaries{TotalCash: dec(100)}
	target := domain.PFSSummaries{TotalCash: dec(200)}

	// Flipping the direction map flips the classification.
	byName := deltasByMetric(finmetrics.CompareSummaries(base, target, map[string]bool{"totalCash": false}))
	assert.Equal(t, finmetrics.Declined, byName["totalCash"].Direction)
}

func TestDefaultMetricDirections(t *testing.T) {
	directions := finmetrics.DefaultMetricDirections()

	assert.True(t, directions["netWorth"])
	assert.True(t, directions["averageDSCR"], "coverage is asset-like even though it is a ratio")
	assert.False(t, directions["totalLiabilities"])
	assert.False(t, directions["averageLTV"])
	assert.False(t, directions["debtToAssetRatio"])
}
