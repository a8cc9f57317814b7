package domain

import (
	"github.com/shopspring/decimal"
)

// BankAccountType distinguishes deposit account flavours.
type BankAccountType string

const (
	Checking    BankAccountType = "CHECKING"
	Savings     BankAccountType = "SAVINGS"
	MoneyMarket BankAccountType = "MONEY_MARKET"
	CD          BankAccountType = "CD"
)

// BankAccount is a deposit account. Balance is the single primitive input.
type BankAccount struct {
	VersionMeta
	SubjectID   string          `json:"subjectID"`
	Institution string          `json:"institution"`
	AccountType BankAccountType `json:"accountType"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}

// StockHolding is one position line inside an investment account. When
// CurrentValue is set it wins; otherwise the position is valued at
// Shares x (CurrentPrice, falling back to AverageCost).
type StockHolding struct {
	Symbol       string           `json:"symbol"`
	Shares       decimal.Decimal  `json:"shares"`
	AverageCost  decimal.Decimal  `json:"averageCost"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
	CurrentValue *decimal.Decimal `json:"currentValue,omitempty"`
}

// InvestmentAccount is a brokerage or retirement account. TotalValue is a
// derived field, recomputed from holdings by the synchronization engine and
// never user-edited. OwnershipPercentage is a whole percentage (0-100).
type InvestmentAccount struct {
	VersionMeta
	SubjectID           string          `json:"subjectID"`
	Institution         string          `json:"institution"`
	AccountName         string          `json:"accountName"`
	Holdings            []StockHolding  `json:"holdings"`
	OwnershipPercentage decimal.Decimal `json:"ownershipPercentage"`
	TotalValue          decimal.Decimal `json:"totalValue"`
}
