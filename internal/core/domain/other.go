package domain

import (
	"github.com/shopspring/decimal"
)

// LifeInsurancePolicy is a life insurance schedule entry; only the cash
// surrender value counts toward assets.
type LifeInsurancePolicy struct {
	VersionMeta
	SubjectID   string          `json:"subjectID"`
	Insurer     string          `json:"insurer"`
	PolicyType  string          `json:"policyType"`
	FaceAmount  decimal.Decimal `json:"faceAmount"`
	CashValue   decimal.Decimal `json:"cashValue"`
	Beneficiary string          `json:"beneficiary"`
}

// OtherAsset is a catch-all personal property line (vehicles, collectibles,
// receivables).
type OtherAsset struct {
	VersionMeta
	SubjectID   string          `json:"subjectID"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// OtherLiability is a catch-all obligation line (taxes payable, judgments,
// anything not covered by the loan schedules).
type OtherLiability struct {
	VersionMeta
	SubjectID      string          `json:"subjectID"`
	Description    string          `json:"description"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
}
