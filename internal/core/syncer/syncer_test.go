package syncer_test

import (
	"testing"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/syncer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSyncInvestmentAccount(t *testing.T) {
	account := domain.InvestmentAccount{
		Holdings: []domain.StockHolding{
			{Shares: dec(100), AverageCost: dec(50)},
			{Shares: dec(10), AverageCost: dec(200)},
		},
		TotalValue: dec(1), // stale value gets overwritten
	}

	syncer.SyncInvestmentAccount(&account)
	assert.True(t, account.TotalValue.Equal(dec(7000)))
}

func TestSyncBusinessEntity(t *testing.T) {
	b := domain.BusinessEntity{
		AssetLines:     []domain.BusinessLine{{Amount: dec(250000)}},
		LiabilityLines: []domain.BusinessLine{{Amount: dec(100000)}},
	}

	syncer.SyncBusinessEntity(&b)
	assert.True(t, b.TotalAssets.Equal(dec(250000)))
	assert.True(t, b.TotalLiabilities.Equal(dec(100000)))
	assert.True(t, b.NetEquity.Equal(dec(150000)))
}

func TestSyncCreditLineAndCard(t *testing.T) {
	line := domain.CreditLine{CreditLimit: dec(10000), CurrentBalance: dec(3000)}
	syncer.SyncCreditLine(&line)
	assert.True(t, line.AvailableCredit.Equal(dec(7000)))
	assert.True(t, line.AvailableCredit.Add(line.CurrentBalance).Equal(line.CreditLimit))

	card := domain.CreditCard{CreditLimit: dec(5000), CurrentBalance: dec(2000)}
	syncer.SyncCreditCard(&card)
	assert.True(t, card.AvailableCredit.Equal(dec(3000)))
}

func TestSyncIncomeSource(t *testing.T) {
	src := domain.IncomeSource{MonthlyAmount: dec(5000)}
	syncer.SyncIncomeSource(&src)
	assert.True(t, src.AnnualAmount.Equal(dec(60000)))
}

func TestSyncAll_PartialBag(t *testing.T) {
	cols := domain.EntityCollections{
		CreditLines:   []domain.CreditLine{{CreditLimit: dec(10000), CurrentBalance: dec(4000)}},
		IncomeSources: []domain.IncomeSource{{MonthlyAmount: dec(1000)}},
	}

	syncer.SyncAll(&cols)

	assert.True(t, cols.CreditLines[0].AvailableCredit.Equal(dec(6000)))
	assert.True(t, cols.IncomeSources[0].AnnualAmount.Equal(dec(12000)))
	assert.Nil(t, cols.Properties, "unsupplied collections stay nil")
	assert.Nil(t, cols.BankAccounts)
}

func TestRealEstatePortfolioMetrics(t *testing.T) {
	props := []domain.RealEstateProperty{
		{
			MarketValue:         dec(500000),
			MonthlyRentalIncome: dec(4000),
			MonthlyExpenses:     dec(1000),
			Mortgages:           []domain.Mortgage{{PrincipalBalance: dec(300000), MonthlyPayment: dec(2000)}},
		},
	}

	m := syncer.RealEstatePortfolioMetrics(props)
	assert.InDelta(t, 60, m.AverageLTV, 1e-9)
	assert.InDelta(t, 1.5, m.AverageDSCR, 1e-9)
	assert.True(t, m.TotalNOI.Equal(dec(36000)))
	assert.True(t, m.TotalEquity.Equal(dec(200000)))
}
