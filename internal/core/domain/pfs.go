package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityKind names one of the eleven entity collections making up a personal
// financial statement. Kinds key persistence tables and staleness reasons.
type EntityKind string

const (
	KindRealEstateProperty  EntityKind = "realEstateProperty"
	KindBankAccount         EntityKind = "bankAccount"
	KindInvestmentAccount   EntityKind = "investmentAccount"
	KindBusinessEntity      EntityKind = "businessEntity"
	KindPersonalLoan        EntityKind = "personalLoan"
	KindCreditLine          EntityKind = "creditLine"
	KindCreditCard          EntityKind = "creditCard"
	KindIncomeSource        EntityKind = "incomeSource"
	KindLifeInsurancePolicy EntityKind = "lifeInsurancePolicy"
	KindOtherAsset          EntityKind = "otherAsset"
	KindOtherLiability      EntityKind = "otherLiability"
)

// EntityCollections is the bag of all entity collections for one subject.
// A nil slice means "collection not supplied"; the synchronization engine
// leaves nil collections untouched rather than defaulting them to empty.
type EntityCollections struct {
	Properties            []RealEstateProperty  `json:"properties,omitempty"`
	BankAccounts          []BankAccount         `json:"bankAccounts,omitempty"`
	InvestmentAccounts    []InvestmentAccount   `json:"investmentAccounts,omitempty"`
	BusinessEntities      []BusinessEntity      `json:"businessEntities,omitempty"`
	PersonalLoans         []PersonalLoan        `json:"personalLoans,omitempty"`
	CreditLines           []CreditLine          `json:"creditLines,omitempty"`
	CreditCards           []CreditCard          `json:"creditCards,omitempty"`
	IncomeSources         []IncomeSource        `json:"incomeSources,omitempty"`
	LifeInsurancePolicies []LifeInsurancePolicy `json:"lifeInsurancePolicies,omitempty"`
	OtherAssets           []OtherAsset          `json:"otherAssets,omitempty"`
	OtherLiabilities      []OtherLiability      `json:"otherLiabilities,omitempty"`
}

// PFSSummaries is the flat aggregate of every portfolio-level metric. It is
// a pure function of the entity collections and is never persisted as
// primitive state; every display surface derives from it. Percentage metrics
// are whole percentages (0-100); AverageDSCR is a plain ratio.
type PFSSummaries struct {
	TotalCash                   decimal.Decimal `json:"totalCash"`
	TotalInvestments            decimal.Decimal `json:"totalInvestments"`
	TotalRealEstateValue        decimal.Decimal `json:"totalRealEstateValue"`
	TotalRealEstateEquity       decimal.Decimal `json:"totalRealEstateEquity"`
	TotalBusinessEquity         decimal.Decimal `json:"totalBusinessEquity"`
	TotalLifeInsuranceCashValue decimal.Decimal `json:"totalLifeInsuranceCashValue"`
	TotalOtherAssets            decimal.Decimal `json:"totalOtherAssets"`
	TotalAssets                 decimal.Decimal `json:"totalAssets"`
	TotalMortgageBalance        decimal.Decimal `json:"totalMortgageBalance"`
	TotalPersonalLoanBalance    decimal.Decimal `json:"totalPersonalLoanBalance"`
	TotalCreditLineBalance      decimal.Decimal `json:"totalCreditLineBalance"`
	TotalCreditCardBalance      decimal.Decimal `json:"totalCreditCardBalance"`
	TotalOtherLiabilities       decimal.Decimal `json:"totalOtherLiabilities"`
	TotalLiabilities            decimal.Decimal `json:"totalLiabilities"`
	NetWorth                    decimal.Decimal `json:"netWorth"`
	Liquidity                   decimal.Decimal `json:"liquidity"`
	TotalAvailableCredit        decimal.Decimal `json:"totalAvailableCredit"`
	TotalMonthlyIncome          decimal.Decimal `json:"totalMonthlyIncome"`
	TotalAnnualIncome           decimal.Decimal `json:"totalAnnualIncome"`
	TotalNOI                    decimal.Decimal `json:"totalNOI"`
	DebtToAssetRatio            float64         `json:"debtToAssetRatio"`
	AverageLTV                  float64         `json:"averageLTV"`
	AverageDSCR                 float64         `json:"averageDSCR"`
}

// FullPFS bundles one subject's entity collections with the summaries
// computed from exactly those collections. The two are always produced
// together, never from different data revisions.
type FullPFS struct {
	ID          string            `json:"id"`
	SubjectID   string            `json:"subjectID"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Collections EntityCollections `json:"collections"`
	Summaries   PFSSummaries      `json:"summaries"`
}

// PFSSnapshot is an immutable, timestamped capture of a full summary set
// plus naming metadata. Captured totals never change after creation; only
// the staleness flag and reason are writable, and only by the staleness
// tracker. Once outdated, a snapshot never returns to current.
type PFSSnapshot struct {
	ID             string       `json:"id"`
	SubjectID      string       `json:"subjectID"`
	Name           string       `json:"name"`
	TemplateName   string       `json:"templateName,omitempty"`
	LenderName     string       `json:"lenderName,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	Summaries      PFSSummaries `json:"summaries"`
	IsOutdated     bool         `json:"isOutdated"`
	OutdatedReason string       `json:"outdatedReason,omitempty"`
}
