package domain

import (
	"github.com/shopspring/decimal"
)

// PropertyType classifies a real estate holding.
type PropertyType string

const (
	PrimaryResidence PropertyType = "PRIMARY_RESIDENCE"
	Residential      PropertyType = "RESIDENTIAL"
	Commercial       PropertyType = "COMMERCIAL"
	Land             PropertyType = "LAND"
)

// Mortgage is one loan secured against a property. Interest rate is a whole
// percentage (5.25 means 5.25%).
type Mortgage struct {
	Lender           string          `json:"lender"`
	PrincipalBalance decimal.Decimal `json:"principalBalance"`
	InterestRate     decimal.Decimal `json:"interestRate"`
	MonthlyPayment   decimal.Decimal `json:"monthlyPayment"`
	MaturityDate     string          `json:"maturityDate,omitempty"`
}

// OwnerShare is one owner's stake in a property, as a whole percentage
// (0-100). Shares are not validated to sum to 100 or less; aggregates simply
// multiply by the summed fraction.
type OwnerShare struct {
	OwnerName  string          `json:"ownerName"`
	Percentage decimal.Decimal `json:"percentage"`
}

// RealEstateProperty is a real estate holding with its embedded mortgages and
// ownership shares. LTV, NOI and DSCR are computed on demand by the
// calculation engine and are never stored on the entity.
type RealEstateProperty struct {
	VersionMeta
	SubjectID           string          `json:"subjectID"`
	Nickname            string          `json:"nickname"`
	Address             string          `json:"address"`
	PropertyType        PropertyType    `json:"propertyType"`
	MarketValue         decimal.Decimal `json:"marketValue"`
	PurchasePrice       decimal.Decimal `json:"purchasePrice"`
	MonthlyRentalIncome decimal.Decimal `json:"monthlyRentalIncome"`
	MonthlyExpenses     decimal.Decimal `json:"monthlyExpenses"`
	Mortgages           []Mortgage      `json:"mortgages"`
	OwnerShares         []OwnerShare    `json:"ownerShares"`
}
