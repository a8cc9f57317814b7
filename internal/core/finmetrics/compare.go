package finmetrics

import (
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Direction classifies how a metric moved between two summary sets, taking
// into account whether a higher value is desirable for that metric.
type Direction string

const (
	Improved  Direction = "IMPROVED"
	Declined  Direction = "DECLINED"
	Unchanged Direction = "UNCHANGED"
)

// MetricDelta is one metric's signed movement between a base and a target
// summary set. Delta is always target minus base.
type MetricDelta struct {
	Metric         string          `json:"metric"`
	From           decimal.Decimal `json:"from"`
	To             decimal.Decimal `json:"to"`
	Delta          decimal.Decimal `json:"delta"`
	HigherIsBetter bool            `json:"higherIsBetter"`
	Direction      Direction       `json:"direction"`
}

// metricAccessor pairs a metric name with its extraction from a summary set.
// The slice fixes the comparison output order.
type metricAccessor struct {
	name string
	get  func(domain.PFSSummaries) decimal.Decimal
}

var summaryMetrics = []metricAccessor{
	{"totalCash", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalCash }},
	{"totalInvestments", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalInvestments }},
	{"totalRealEstateValue", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalRealEstateValue }},
	{"totalRealEstateEquity", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalRealEstateEquity }},
	{"totalBusinessEquity", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalBusinessEquity }},
	{"totalLifeInsuranceCashValue", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalLifeInsuranceCashValue }},
	{"totalOtherAssets", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalOtherAssets }},
	{"totalAssets", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalAssets }},
	{"totalMortgageBalance", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalMortgageBalance }},
	{"totalPersonalLoanBalance", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalPersonalLoanBalance }},
	{"totalCreditLineBalance", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalCreditLineBalance }},
	{"totalCreditCardBalance", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalCreditCardBalance }},
	{"totalOtherLiabilities", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalOtherLiabilities }},
	{"totalLiabilities", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalLiabilities }},
	{"netWorth", func(s domain.PFSSummaries) decimal.Decimal { return s.NetWorth }},
	{"liquidity", func(s domain.PFSSummaries) decimal.Decimal { return s.Liquidity }},
	{"totalAvailableCredit", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalAvailableCredit }},
	{"totalMonthlyIncome", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalMonthlyIncome }},
	{"totalAnnualIncome", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalAnnualIncome }},
	{"totalNOI", func(s domain.PFSSummaries) decimal.Decimal { return s.TotalNOI }},
	{"debtToAssetRatio", func(s domain.PFSSummaries) decimal.Decimal { return decimal.NewFromFloat(s.DebtToAssetRatio) }},
	{"averageLTV", func(s domain.PFSSummaries) decimal.Decimal { return decimal.NewFromFloat(s.AverageLTV) }},
	{"averageDSCR", func(s domain.PFSSummaries) decimal.Decimal { return decimal.NewFromFloat(s.AverageDSCR) }},
}

// DefaultMetricDirections maps each metric to whether a higher value is
// better: true for asset-like metrics (assets, equity, income, coverage),
// false for liability-like ones (debt balances, leverage ratios).
func DefaultMetricDirections() map[string]bool {
	return map[string]bool{
		"totalCash":                   true,
		"totalInvestments":            true,
		"totalRealEstateValue":        true,
		"totalRealEstateEquity":       true,
		"totalBusinessEquity":         true,
		"totalLifeInsuranceCashValue": true,
		"totalOtherAssets":            true,
		"totalAssets":                 true,
		"totalMortgageBalance":        false,
		"totalPersonalLoanBalance":    false,
		"totalCreditLineBalance":      false,
		"totalCreditCardBalance":      false,
		"totalOtherLiabilities":       false,
		"totalLiabilities":            false,
		"netWorth":                    true,
		"liquidity":                   true,
		"totalAvailableCredit":        true,
		"totalMonthlyIncome":          true,
		"totalAnnualIncome":           true,
		"totalNOI":                    true,
		"debtToAssetRatio":            false,
		"averageLTV":                  false,
		"averageDSCR":                 true,
	}
}

// CompareSummaries computes the signed per-metric deltas between exactly two
// summary sets, base and target, in a fixed metric order. A nil directions
// map falls back to DefaultMetricDirections. Comparing more than two
// snapshots is done pairwise against a chosen baseline by the caller.
func CompareSummaries(base, target domain.PFSSummaries, directions map[string]bool) []MetricDelta {
	if directions == nil {
		directions = DefaultMetricDirections()
	}

	deltas := make([]MetricDelta, 0, len(summaryMetrics))
	for _, metric := range summaryMetrics {
		from := metric.get(base)
		to := metric.get(target)
		delta := to.Sub(from)
		higherIsBetter := directions[metric.name]

		direction := Unchanged
		switch {
		case delta.IsZero():
			direction = Unchanged
		case delta.IsPositive() == higherIsBetter:
			direction = Improved
		default:
			direction = Declined
		}

		deltas = append(deltas, MetricDelta{
			Metric:         metric.name,
			From:           from,
			To:             to,
			Delta:          delta,
			HigherIsBetter: higherIsBetter,
			Direction:      direction,
		})
	}
	return deltas
}
