// Package finmetrics holds the pure calculation engine: deterministic
// functions mapping raw entity collections to derived financial metrics.
// No I/O, no mutation; every total is a fold over a collection.
package finmetrics

import (
	"math"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// OwnershipFraction sums a property's owner shares into a multiplier.
// No shares recorded means sole ownership (fraction 1). Shares are trusted
// as given and are deliberately not validated to sum to 100 or less.
func OwnershipFraction(shares []domain.OwnerShare) decimal.Decimal {
	if len(shares) == 0 {
		return decimal.NewFromInt(1)
	}
	total := decimal.Zero
	for _, share := range shares {
		total = total.Add(share.Percentage)
	}
	return total.Div(hundred)
}

// percentageFraction converts a whole-percentage ownership field into a
// multiplier, treating an unset (zero) percentage as sole ownership.
func percentageFraction(pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return decimal.NewFromInt(1)
	}
	return pct.Div(hundred)
}

// CalculateMortgagePrincipal sums the principal balances of every mortgage
// on a property.
func CalculateMortgagePrincipal(p domain.RealEstateProperty) decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.Mortgages {
		total = total.Add(m.PrincipalBalance)
	}
	return total
}

// CalculateLTV returns the loan-to-value ratio of a property as a whole
// percentage. Defined as 0 when the market value is zero or unset.
func CalculateLTV(p domain.RealEstateProperty) float64 {
	if p.MarketValue.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return CalculateMortgagePrincipal(p).Div(p.MarketValue).Mul(hundred).InexactFloat64()
}

// CalculateNOI returns the annual net operating income of a property:
// (monthly income - monthly expenses) x 12. Missing inputs count as zero.
func CalculateNOI(p domain.RealEstateProperty) decimal.Decimal {
	return p.MonthlyRentalIncome.Sub(p.MonthlyExpenses).Mul(twelve)
}

// CalculateAnnualDebtService sums a property's mortgage payments over a year.
func CalculateAnnualDebtService(p domain.RealEstateProperty) decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.Mortgages {
		total = total.Add(m.MonthlyPayment)
	}
	return total.Mul(twelve)
}

// CalculateDSCR returns the debt service coverage ratio NOI / annual debt
// service. Zero debt service means unbounded coverage, reported as +Inf;
// averaging operations must exclude non-finite values.
func CalculateDSCR(p domain.RealEstateProperty) float64 {
	ads := CalculateAnnualDebtService(p)
	if ads.IsZero() {
		return math.Inf(1)
	}
	return CalculateNOI(p).Div(ads).InexactFloat64()
}

// CalculateTotalRealEstateValue sums ownership-weighted market values.
func CalculateTotalRealEstateValue(props []domain.RealEstateProperty) decimal.Decimal {
	total := decimal.Zero
	for _, p := range props {
		total = total.Add(p.MarketValue.Mul(OwnershipFraction(p.OwnerShares)))
	}
	return total
}

// CalculateTotalMortgageBalance sums mortgage principals across properties.
func CalculateTotalMortgageBalance(props []domain.RealEstateProperty) decimal.Decimal {
	total := decimal.Zero
	for _, p := range props {
		total = total.Add(CalculateMortgagePrincipal(p))
	}
	return total
}

// CalculateTotalRealEstateEquity is total value minus total mortgage debt.
func CalculateTotalRealEstateEquity(props []domain.RealEstateProperty) decimal.Decimal {
	return CalculateTotalRealEstateValue(props).Sub(CalculateTotalMortgageBalance(props))
}

// CalculateTotalNOI sums annual net operating income across properties.
func CalculateTotalNOI(props []domain.RealEstateProperty) decimal.Decimal {
	total := decimal.Zero
	for _, p := range props {
		total = total.Add(CalculateNOI(p))
	}
	return total
}

// CalculateAverageLTV is the arithmetic mean of per-property LTVs, 0 for an
// empty portfolio.
func CalculateAverageLTV(props []domain.RealEstateProperty) float64 {
	if len(props) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range props {
		sum += CalculateLTV(p)
	}
	return sum / float64(len(props))
}

// CalculateAverageDSCR averages only the finite per-property DSCRs. A
// portfolio with no finite DSCR averages to 0, never Inf or NaN.
func CalculateAverageDSCR(props []domain.RealEstateProperty) float64 {
	sum := 0.0
	count := 0
	for _, p := range props {
		dscr := CalculateDSCR(p)
		if !isFinite(dscr) {
			continue
		}
		sum += dscr
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// CalculateHoldingValue values one position: an explicit current value wins,
// otherwise shares x (current price, falling back to average cost).
func CalculateHoldingValue(h domain.StockHolding) decimal.Decimal {
	if h.CurrentValue != nil {
		return *h.CurrentValue
	}
	price := h.AverageCost
	if h.CurrentPrice != nil {
		price = *h.CurrentPrice
	}
	return h.Shares.Mul(price)
}

// CalculateInvestmentAccountValue sums the values of an account's holdings.
func CalculateInvestmentAccountValue(a domain.InvestmentAccount) decimal.Decimal {
	total := decimal.Zero
	for _, h := range a.Holdings {
		total = total.Add(CalculateHoldingValue(h))
	}
	return total
}

// CalculateTotalInvestments sums ownership-weighted investment account
// values. Relies on each account's holdings, not the cached TotalValue.
func CalculateTotalInvestments(accounts []domain.InvestmentAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(CalculateInvestmentAccountValue(a).Mul(percentageFraction(a.OwnershipPercentage)))
	}
	return total
}

// CalculateTotalCash sums bank account balances.
func CalculateTotalCash(accounts []domain.BankAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// CalculateBusinessTotalAssets sums a business's asset line items.
func CalculateBusinessTotalAssets(b domain.BusinessEntity) decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.AssetLines {
		total = total.Add(line.Amount)
	}
	return total
}

// CalculateBusinessTotalLiabilities sums a business's liability line items.
func CalculateBusinessTotalLiabilities(b domain.BusinessEntity) decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.LiabilityLines {
		total = total.Add(line.Amount)
	}
	return total
}

// CalculateBusinessEquity is a business's assets minus liabilities, from its
// line items.
func CalculateBusinessEquity(b domain.BusinessEntity) decimal.Decimal {
	return CalculateBusinessTotalAssets(b).Sub(CalculateBusinessTotalLiabilities(b))
}

// CalculateTotalBusinessEquity sums ownership-weighted business equity.
func CalculateTotalBusinessEquity(businesses []domain.BusinessEntity) decimal.Decimal {
	total := decimal.Zero
	for _, b := range businesses {
		total = total.Add(CalculateBusinessEquity(b).Mul(percentageFraction(b.OwnershipPercentage)))
	}
	return total
}

// CalculateAvailableCredit is the unused portion of a revolving facility.
func CalculateAvailableCredit(creditLimit, currentBalance decimal.Decimal) decimal.Decimal {
	return creditLimit.Sub(currentBalance)
}

// CalculateAnnualIncome annualises a monthly income amount.
func CalculateAnnualIncome(monthlyAmount decimal.Decimal) decimal.Decimal {
	return monthlyAmount.Mul(twelve)
}

// CalculateNetWorth is total assets minus total liabilities.
func CalculateNetWorth(totalAssets, totalLiabilities decimal.Decimal) decimal.Decimal {
	return totalAssets.Sub(totalLiabilities)
}

// CalculateDebtToAssetRatio is total debt over total assets as a whole
// percentage, defined as 0 when total assets is zero.
func CalculateDebtToAssetRatio(totalDebt, totalAssets decimal.Decimal) float64 {
	if totalAssets.IsZero() {
		return 0
	}
	return totalDebt.Div(totalAssets).Mul(hundred).InexactFloat64()
}

// CalculatePFSSummaries folds every entity collection into the single
// summary aggregate. This is the canonical source of truth for the numbers
// shown anywhere in the system; display surfaces derive from it rather than
// recomputing totals independently.
func CalculatePFSSummaries(c domain.EntityCollections) domain.PFSSummaries {
	s := domain.PFSSummaries{}

	s.TotalCash = CalculateTotalCash(c.BankAccounts)
	s.TotalInvestments = CalculateTotalInvestments(c.InvestmentAccounts)
	s.TotalRealEstateValue = CalculateTotalRealEstateValue(c.Properties)
	s.TotalRealEstateEquity = CalculateTotalRealEstateEquity(c.Properties)
	s.TotalBusinessEquity = CalculateTotalBusinessEquity(c.BusinessEntities)

	s.TotalLifeInsuranceCashValue = decimal.Zero
	for _, p := range c.LifeInsurancePolicies {
		s.TotalLifeInsuranceCashValue = s.TotalLifeInsuranceCashValue.Add(p.CashValue)
	}
	s.TotalOtherAssets = decimal.Zero
	for _, a := range c.OtherAssets {
		s.TotalOtherAssets = s.TotalOtherAssets.Add(a.Value)
	}

	s.TotalAssets = s.TotalCash.
		Add(s.TotalInvestments).
		Add(s.TotalRealEstateValue).
		Add(s.TotalBusinessEquity).
		Add(s.TotalLifeInsuranceCashValue).
		Add(s.TotalOtherAssets)

	s.TotalMortgageBalance = CalculateTotalMortgageBalance(c.Properties)
	s.TotalPersonalLoanBalance = decimal.Zero
	for _, l := range c.PersonalLoans {
		s.TotalPersonalLoanBalance = s.TotalPersonalLoanBalance.Add(l.CurrentBalance)
	}
	s.TotalCreditLineBalance = decimal.Zero
	s.TotalAvailableCredit = decimal.Zero
	for _, l := range c.CreditLines {
		s.TotalCreditLineBalance = s.TotalCreditLineBalance.Add(l.CurrentBalance)
		s.TotalAvailableCredit = s.TotalAvailableCredit.Add(CalculateAvailableCredit(l.CreditLimit, l.CurrentBalance))
	}
	s.TotalCreditCardBalance = decimal.Zero
	for _, card := range c.CreditCards {
		s.TotalCreditCardBalance = s.TotalCreditCardBalance.Add(card.CurrentBalance)
		s.TotalAvailableCredit = s.TotalAvailableCredit.Add(CalculateAvailableCredit(card.CreditLimit, card.CurrentBalance))
	}
	s.TotalOtherLiabilities = decimal.Zero
	for _, l := range c.OtherLiabilities {
		s.TotalOtherLiabilities = s.TotalOtherLiabilities.Add(l.CurrentBalance)
	}

	s.TotalLiabilities = s.TotalMortgageBalance.
		Add(s.TotalPersonalLoanBalance).
		Add(s.TotalCreditLineBalance).
		Add(s.TotalCreditCardBalance).
		Add(s.TotalOtherLiabilities)

	s.NetWorth = CalculateNetWorth(s.TotalAssets, s.TotalLiabilities)
	s.Liquidity = s.TotalCash.Add(s.TotalInvestments)

	s.TotalMonthlyIncome = decimal.Zero
	for _, src := range c.IncomeSources {
		s.TotalMonthlyIncome = s.TotalMonthlyIncome.Add(src.MonthlyAmount)
	}
	s.TotalAnnualIncome = s.TotalMonthlyIncome.Mul(twelve)

	s.TotalNOI = CalculateTotalNOI(c.Properties)
	s.DebtToAssetRatio = CalculateDebtToAssetRatio(s.TotalLiabilities, s.TotalAssets)
	s.AverageLTV = CalculateAverageLTV(c.Properties)
	s.AverageDSCR = CalculateAverageDSCR(c.Properties)

	return s
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
