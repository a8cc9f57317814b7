package domain

import (
	"github.com/shopspring/decimal"
)

// PersonalLoan is an unsecured or secured personal obligation. Interest rate
// is a whole percentage (0-100).
type PersonalLoan struct {
	VersionMeta
	SubjectID      string          `json:"subjectID"`
	Lender         string          `json:"lender"`
	Purpose        string          `json:"purpose"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
}

// CreditLine is a revolving line of credit. AvailableCredit is a derived
// field (creditLimit - currentBalance) owned by the synchronization engine.
type CreditLine struct {
	VersionMeta
	SubjectID       string          `json:"subjectID"`
	Lender          string          `json:"lender"`
	Secured         bool            `json:"secured"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
}

// CreditCard is a revolving card account. AvailableCredit is derived exactly
// as for CreditLine.
type CreditCard struct {
	VersionMeta
	SubjectID       string          `json:"subjectID"`
	Issuer          string          `json:"issuer"`
	CardName        string          `json:"cardName"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
}
