package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeSourceType classifies an income stream.
type IncomeSourceType string

const (
	Salary      IncomeSourceType = "SALARY"
	Rental      IncomeSourceType = "RENTAL"
	Business    IncomeSourceType = "BUSINESS"
	Investment  IncomeSourceType = "INVESTMENT"
	OtherIncome IncomeSourceType = "OTHER"
)

// IncomeSource is one recurring income stream. AnnualAmount is a derived
// field (monthlyAmount x 12) owned by the synchronization engine.
type IncomeSource struct {
	VersionMeta
	SubjectID     string           `json:"subjectID"`
	Description   string           `json:"description"`
	SourceType    IncomeSourceType `json:"sourceType"`
	MonthlyAmount decimal.Decimal  `json:"monthlyAmount"`
	AnnualAmount  decimal.Decimal  `json:"annualAmount"`
}
