// Package syncer is the synchronization engine: after any primitive field of
// an entity changes, it recomputes that entity's derived fields before the
// calculation engine aggregates across entities. Derived fields are written
// exclusively here; nothing else may set them.
package syncer

import (
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/finmetrics"
	"github.com/shopspring/decimal"
)

// SyncRealEstateProperty is a no-op: a property's LTV, NOI and DSCR are
// computed on demand by finmetrics and never stored on the entity.
func SyncRealEstateProperty(p *domain.RealEstateProperty) {}

// SyncBankAccount is a no-op: bank accounts carry no derived fields.
func SyncBankAccount(a *domain.BankAccount) {}

// SyncInvestmentAccount recomputes the account's total value from its
// holdings.
func SyncInvestmentAccount(a *domain.InvestmentAccount) {
	a.TotalValue = finmetrics.CalculateInvestmentAccountValue(*a)
}

// SyncBusinessEntity recomputes asset/liability totals and net equity from
// the line items.
func SyncBusinessEntity(b *domain.BusinessEntity) {
	b.TotalAssets = finmetrics.CalculateBusinessTotalAssets(*b)
	b.TotalLiabilities = finmetrics.CalculateBusinessTotalLiabilities(*b)
	b.NetEquity = b.TotalAssets.Sub(b.TotalLiabilities)
}

// SyncPersonalLoan is a no-op: personal loans carry no derived fields.
func SyncPersonalLoan(l *domain.PersonalLoan) {}

// SyncCreditLine recomputes available credit.
func SyncCreditLine(l *domain.CreditLine) {
	l.AvailableCredit = finmetrics.CalculateAvailableCredit(l.CreditLimit, l.CurrentBalance)
}

// SyncCreditCard recomputes available credit.
func SyncCreditCard(c *domain.CreditCard) {
	c.AvailableCredit = finmetrics.CalculateAvailableCredit(c.CreditLimit, c.CurrentBalance)
}

// SyncIncomeSource recomputes the annualised amount.
func SyncIncomeSource(s *domain.IncomeSource) {
	s.AnnualAmount = finmetrics.CalculateAnnualIncome(s.MonthlyAmount)
}

// SyncLifeInsurancePolicy is a no-op: policies carry no derived fields.
func SyncLifeInsurancePolicy(p *domain.LifeInsurancePolicy) {}

// SyncOtherAsset is a no-op.
func SyncOtherAsset(a *domain.OtherAsset) {}

// SyncOtherLiability is a no-op.
func SyncOtherLiability(l *domain.OtherLiability) {}

// SyncAll recomputes derived fields across every collection supplied in the
// bag. Nil collections were not supplied by the caller and stay nil; they
// are never defaulted to empty in a way that would erase data.
func SyncAll(c *domain.EntityCollections) {
	for i := range c.Properties {
		SyncRealEstateProperty(&c.Properties[i])
	}
	for i := range c.BankAccounts {
		SyncBankAccount(&c.BankAccounts[i])
	}
	for i := range c.InvestmentAccounts {
		SyncInvestmentAccount(&c.InvestmentAccounts[i])
	}
	for i := range c.BusinessEntities {
		SyncBusinessEntity(&c.BusinessEntities[i])
	}
	for i := range c.PersonalLoans {
		SyncPersonalLoan(&c.PersonalLoans[i])
	}
	for i := range c.CreditLines {
		SyncCreditLine(&c.CreditLines[i])
	}
	for i := range c.CreditCards {
		SyncCreditCard(&c.CreditCards[i])
	}
	for i := range c.IncomeSources {
		SyncIncomeSource(&c.IncomeSources[i])
	}
	for i := range c.LifeInsurancePolicies {
		SyncLifeInsurancePolicy(&c.LifeInsurancePolicies[i])
	}
	for i := range c.OtherAssets {
		SyncOtherAsset(&c.OtherAssets[i])
	}
	for i := range c.OtherLiabilities {
		SyncOtherLiability(&c.OtherLiabilities[i])
	}
}

// RealEstateMetrics bundles the portfolio-level aggregates recomputed over a
// freshly synced property collection.
type RealEstateMetrics struct {
	AverageLTV  float64         `json:"averageLTV"`
	AverageDSCR float64         `json:"averageDSCR"`
	TotalNOI    decimal.Decimal `json:"totalNOI"`
	TotalEquity decimal.Decimal `json:"totalEquity"`
}

// RealEstatePortfolioMetrics recomputes the aggregate real estate metrics
// for a property collection.
func RealEstatePortfolioMetrics(props []domain.RealEstateProperty) RealEstateMetrics {
	return RealEstateMetrics{
		AverageLTV:  finmetrics.CalculateAverageLTV(props),
		AverageDSCR: finmetrics.CalculateAverageDSCR(props),
		TotalNOI:    finmetrics.CalculateTotalNOI(props),
		TotalEquity: finmetrics.CalculateTotalRealEstateEquity(props),
	}
}
