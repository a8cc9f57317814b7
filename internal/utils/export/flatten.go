// Package export flattens computed summaries into the flat key/value shape
// the document-generation collaborator (PDF form filling) consumes.
package export

import (
	"strconv"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// moneyPrecision is the rounding applied to monetary template values.
const moneyPrecision = 2

// FormatAmount renders a monetary amount for template filling.
func FormatAmount(amount decimal.Decimal) string {
	return amount.Round(moneyPrecision).StringFixed(moneyPrecision)
}

// FormatRatio renders a ratio/percentage metric with two decimals.
func FormatRatio(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// FlattenSummaries converts the summary aggregate into the flat string map
// used to fill PDF form fields. Keys match the summaries' JSON field names.
func FlattenSummaries(s domain.PFSSummaries) map[string]string {
	return map[string]string{
		"totalCash":                   FormatAmount(s.TotalCash),
		"totalInvestments":            FormatAmount(s.TotalInvestments),
		"totalRealEstateValue":        FormatAmount(s.TotalRealEstateValue),
		"totalRealEstateEquity":       FormatAmount(s.TotalRealEstateEquity),
		"totalBusinessEquity":         FormatAmount(s.TotalBusinessEquity),
		"totalLifeInsuranceCashValue": FormatAmount(s.TotalLifeInsuranceCashValue),
		"totalOtherAssets":            FormatAmount(s.TotalOtherAssets),
		"totalAssets":                 FormatAmount(s.TotalAssets),
		"totalMortgageBalance":        FormatAmount(s.TotalMortgageBalance),
		"totalPersonalLoanBalance":    FormatAmount(s.TotalPersonalLoanBalance),
		"totalCreditLineBalance":      FormatAmount(s.TotalCreditLineBalance),
		"totalCreditCardBalance":      FormatAmount(s.TotalCreditCardBalance),
		"totalOtherLiabilities":       FormatAmount(s.TotalOtherLiabilities),
		"totalLiabilities":            FormatAmount(s.TotalLiabilities),
		"netWorth":                    FormatAmount(s.NetWorth),
		"liquidity":                   FormatAmount(s.Liquidity),
		"totalAvailableCredit":        FormatAmount(s.TotalAvailableCredit),
		"totalMonthlyIncome":          FormatAmount(s.TotalMonthlyIncome),
		"totalAnnualIncome":           FormatAmount(s.TotalAnnualIncome),
		"totalNOI":                    FormatAmount(s.TotalNOI),
		"debtToAssetRatio":            FormatRatio(s.DebtToAssetRatio),
		"averageLTV":                  FormatRatio(s.AverageLTV),
		"averageDSCR":                 FormatRatio(s.AverageDSCR),
	}
}
