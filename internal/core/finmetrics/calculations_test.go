package finmetrics_test

import (
	"math"
	"testing"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/finmetrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func twoPropertyPortfolio() []domain.RealEstateProperty {
	return []domain.RealEstateProperty{
		{
			Nickname:    "Duplex",
			MarketValue: dec(500000),
			Mortgages: []domain.Mortgage{
				{Lender: "Bank A", PrincipalBalance: dec(300000), MonthlyPayment: dec(2000)},
			},
			MonthlyRentalIncome: dec(4000),
			MonthlyExpenses:     dec(1000),
		},
		{
			Nickname:    "Cabin",
			MarketValue: dec(300000),
			Mortgages: []domain.Mortgage{
				{Lender: "Bank B", PrincipalBalance: dec(100000), MonthlyPayment: dec(800)},
			},
			MonthlyRentalIncome: dec(1500),
			MonthlyExpenses:     dec(500),
		},
	}
}

func TestRealEstateTotals(t *testing.T) {
	props := twoPropertyPortfolio()

	assert.True(t, finmetrics.CalculateTotalRealEstateValue(props).Equal(dec(800000)))
	assert.True(t, finmetrics.CalculateTotalMortgageBalance(props).Equal(dec(400000)))
	assert.True(t, finmetrics.CalculateTotalRealEstateEquity(props).Equal(dec(400000)))
}

func TestOwnershipFraction(t *testing.T) {
	tests := []struct {
		name   string
		shares []domain.OwnerShare
		want   string
	}{
		{"no shares means sole ownership", nil, "1"},
		{"single half share", []domain.OwnerShare{{OwnerName: "A", Percentage: dec(50)}}, "0.5"},
		{"two shares sum", []domain.OwnerShare{{Percentage: dec(30)}, {Percentage: dec(20)}}, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finmetrics.OwnershipFraction(tt.shares)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestOwnershipWeightedRealEstateValue(t *testing.T) {
	props := []domain.RealEstateProperty{
		{
			MarketValue: dec(1000000),
			OwnerShares: []domain.OwnerShare{{OwnerName: "Subject", Percentage: dec(25)}},
		},
	}
	assert.True(t, finmetrics.CalculateTotalRealEstateValue(props).Equal(dec(250000)))
}

func TestCalculateLTV(t *testing.T) {
	tests := []struct {
		name string
		prop domain.RealEstateProperty
		want float64
	}{
		{
			name: "standard 60 percent",
			prop: domain.RealEstateProperty{
				MarketValue: dec(500000),
				Mortgages:   []domain.Mortgage{{PrincipalBalance: dec(300000)}},
			},
			want: 60,
		},
		{
			name: "zero market value is defined as zero, not a division error",
			prop: domain.RealEstateProperty{
				Mortgages: []domain.Mortgage{{PrincipalBalance: dec(300000)}},
			},
			want: 0,
		},
		{
			name: "no mortgages",
			prop: domain.RealEstateProperty{MarketValue: dec(500000)},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, finmetrics.CalculateLTV(tt.prop), 1e-9)
		})
	}
}

func TestCalculateNOI(t *testing.T) {
	prop := domain.RealEstateProperty{
		MonthlyRentalIncome: dec(4000),
		MonthlyExpenses:     dec(1000),
	}
	assert.True(t, finmetrics.CalculateNOI(prop).Equal(dec(36000)))
}

func TestCalculateDSCR(t *testing.T) {
	withDebt := domain.RealEstateProperty{
		MonthlyRentalIncome: dec(4000),
		MonthlyExpenses:     dec(1000),
		Mortgages:           []domain.Mortgage{{MonthlyPayment: dec(2000)}},
	}
	// NOI 36000 / ADS 24000
	assert.InDelta(t, 1.5, finmetrics.CalculateDSCR(withDebt), 1e-9)

	debtFree := domain.RealEstateProperty{MonthlyRentalIncome: dec(4000)}
	assert.True(t, math.IsInf(finmetrics.CalculateDSCR(debtFree), 1), "zero debt service is unbounded coverage")
}

func TestCalculateAverageDSCR_ExcludesNonFinite(t *testing.T) {
	props := []domain.RealEstateProperty{
		{
			MonthlyRentalIncome: dec(4000),
			MonthlyExpenses:     dec(1000),
			Mortgages:           []domain.Mortgage{{MonthlyPayment: dec(2000)}},
		},
		{MonthlyRentalIncome: dec(9000)}, // debt-free, DSCR is +Inf
	}

	assert.InDelta(t, 1.5, finmetrics.CalculateAverageDSCR(props), 1e-9, "infinite DSCR is excluded, not averaged")
	assert.Equal(t, 0.0, finmetrics.CalculateAverageDSCR([]domain.RealEstateProperty{{MonthlyRentalIncome: dec(100)}}), "all-infinite portfolio averages to 0")
	assert.Equal(t, 0.0, finmetrics.CalculateAverageDSCR(nil))
}

func TestCalculateAverageLTV(t *testing.T) {
	props := twoPropertyPortfolio() // LTVs 60 and 33.33..
	assert.InDelta(t, (60.0+100.0/3.0)/2, finmetrics.CalculateAverageLTV(props), 1e-9)
	assert.Equal(t, 0.0, finmetrics.CalculateAverageLTV(nil))
}

func TestCalculateHoldingValue(t *testing.T) {
	price := dec(150)
	value := dec(9999)

	tests := []struct {
		name    string
		holding domain.StockHolding
		want    int64
	}{
		{"explicit current value wins", domain.StockHolding{Shares: dec(10), AverageCost: dec(100), CurrentPrice: &price, CurrentValue: &value}, 9999},
		{"current price", domain.StockHolding{Shares: dec(10), AverageCost: dec(100), CurrentPrice: &price}, 1500},
		{"average cost fallback", domain.StockHolding{Shares: dec(10), AverageCost: dec(100)}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, finmetrics.CalculateHoldingValue(tt.holding).Equal(dec(tt.want)))
		})
	}
}

func TestCalculateTotalInvestments_OwnershipWeighted(t *testing.T) {
	accounts := []domain.InvestmentAccount{
		{
			Holdings:            []domain.StockHolding{{Shares: dec(100), AverageCost: dec(50)}},
			OwnershipPercentage: dec(50),
		},
		{
			// Unset ownership means sole ownership.
			Holdings: []domain.StockHolding{{Shares: dec(10), AverageCost: dec(100)}},
		},
	}
	assert.True(t, finmetrics.CalculateTotalInvestments(accounts).Equal(dec(3500)))
}

func TestBusinessCalculations(t *testing.T) {
	b := domain.BusinessEntity{
		OwnershipPercentage: dec(40),
		AssetLines:          []domain.BusinessLine{{Amount: dec(200000)}, {Amount: dec(50000)}},
		LiabilityLines:      []domain.BusinessLine{{Amount: dec(100000)}},
	}

	assert.True(t, finmetrics.CalculateBusinessTotalAssets(b).Equal(dec(250000)))
	assert.True(t, finmetrics.CalculateBusinessTotalLiabilities(b).Equal(dec(100000)))
	assert.True(t, finmetrics.CalculateBusinessEquity(b).Equal(dec(150000)))
	assert.True(t, finmetrics.CalculateTotalBusinessEquity([]domain.BusinessEntity{b}).Equal(dec(60000)))
}

func TestCalculateAvailableCredit(t *testing.T) {
	assert.True(t, finmetrics.CalculateAvailableCredit(dec(10000), dec(3000)).Equal(dec(7000)))
	assert.True(t, finmetrics.CalculateAvailableCredit(dec(10000), dec(12000)).Equal(dec(-2000)), "over-limit balances go negative rather than clamping")
}

func TestCalculateAnnualIncome(t *testing.T) {
	assert.True(t, finmetrics.CalculateAnnualIncome(dec(5000)).Equal(dec(60000)))
}

func TestCalculateDebtToAssetRatio(t *testing.T) {
	assert.InDelta(t, 40, finmetrics.CalculateDebtToAssetRatio(dec(400000), dec(1000000)), 1e-9)
	assert.Equal(t, 0.0, finmetrics.CalculateDebtToAssetRatio(dec(400000), decimal.Zero), "zero assets is defined as zero")
}

func TestCalculatePFSSummaries(t *testing.T) {
	cols := domain.EntityCollections{
		Properties: twoPropertyPortfolio(),
		BankAccounts: []domain.BankAccount{
			{Balance: dec(20000)},
			{Balance: dec(5000)},
		},
		InvestmentAccounts: []domain.InvestmentAccount{
			{Holdings: []domain.StockHolding{{Shares: dec(100), AverageCost: dec(50)}}},
		},
		BusinessEntities: []domain.BusinessEntity{
			{AssetLines: []domain.BusinessLine{{Amount: dec(100000)}}, LiabilityLines: []domain.BusinessLine{{Amount: dec(40000)}}},
		},
		PersonalLoans: []domain.PersonalLoan{{CurrentBalance: dec(15000)}},
		CreditLines:   []domain.CreditLine{{CreditLimit: dec(10000), CurrentBalance: dec(3000)}},
		CreditCards:   []domain.CreditCard{{CreditLimit: dec(5000), CurrentBalance: dec(2000)}},
		IncomeSources: []domain.IncomeSource{{MonthlyAmount: dec(5000)}},
		LifeInsurancePolicies: []domain.LifeInsurancePolicy{
			{FaceAmount: dec(1000000), CashValue: dec(25000)},
		},
		OtherAssets:      []domain.OtherAsset{{Value: dec(30000)}},
		OtherLiabilities: []domain.OtherLiability{{CurrentBalance: dec(8000)}},
	}

	s := finmetrics.CalculatePFSSummaries(cols)

	assert.True(t, s.TotalCash.Equal(dec(25000)))
	assert.True(t, s.TotalInvestments.Equal(dec(5000)))
	assert.True(t, s.TotalRealEstateValue.Equal(dec(800000)))
	assert.True(t, s.TotalRealEstateEquity.Equal(dec(400000)))
	assert.True(t, s.TotalBusinessEquity.Equal(dec(60000)))
	assert.True(t, s.TotalLifeInsuranceCashValue.Equal(dec(25000)))
	assert.True(t, s.TotalOtherAssets.Equal(dec(30000)))
	// 25000 + 5000 + 800000 + 60000 + 25000 + 30000
	assert.True(t, s.TotalAssets.Equal(dec(945000)), "got %s", s.TotalAssets)

	assert.True(t, s.TotalMortgageBalance.Equal(dec(400000)))
	assert.True(t, s.TotalPersonalLoanBalance.Equal(dec(15000)))
	assert.True(t, s.TotalCreditLineBalance.Equal(dec(3000)))
	assert.True(t, s.TotalCreditCardBalance.Equal(dec(2000)))
	assert.True(t, s.TotalOtherLiabilities.Equal(dec(8000)))
	// 400000 + 15000 + 3000 + 2000 + 8000
	assert.True(t, s.TotalLiabilities.Equal(dec(428000)), "got %s", s.TotalLiabilities)

	assert.True(t, s.NetWorth.Equal(dec(517000)))
	assert.True(t, s.Liquidity.Equal(dec(30000)))
	// 7000 from the line plus 3000 from the card.
	assert.True(t, s.TotalAvailableCredit.Equal(dec(10000)))
	assert.True(t, s.TotalMonthlyIncome.Equal(dec(5000)))
	assert.True(t, s.TotalAnnualIncome.Equal(dec(60000)))
	assert.True(t, s.TotalNOI.Equal(dec(48000)))
	assert.InDelta(t, 428000.0/945000.0*100, s.DebtToAssetRatio, 1e-9)
}

func TestCalculatePFSSummaries_EmptyPortfolio(t *testing.T) {
	s := finmetrics.CalculatePFSSummaries(domain.EntityCollections{})

	assert.True(t, s.TotalAssets.IsZero())
	assert.True(t, s.TotalLiabilities.IsZero())
	assert.True(t, s.NetWorth.IsZero())
	assert.Equal(t, 0.0, s.DebtToAssetRatio)
	assert.Equal(t, 0.0, s.AverageLTV)
	assert.Equal(t, 0.0, s.AverageDSCR)
}
