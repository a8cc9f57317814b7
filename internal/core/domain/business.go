package domain

import (
	"github.com/shopspring/decimal"
)

// BusinessLine is one asset or liability line item on a business balance
// sheet.
type BusinessLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// BusinessEntity is a privately held business interest. TotalAssets,
// TotalLiabilities and NetEquity are derived fields owned by the
// synchronization engine. OwnershipPercentage is a whole percentage (0-100).
type BusinessEntity struct {
	VersionMeta
	SubjectID           string          `json:"subjectID"`
	LegalName           string          `json:"legalName"`
	EntityType          string          `json:"entityType"`
	OwnershipPercentage decimal.Decimal `json:"ownershipPercentage"`
	AssetLines          []BusinessLine  `json:"assetLines"`
	LiabilityLines      []BusinessLine  `json:"liabilityLines"`
	TotalAssets         decimal.Decimal `json:"totalAssets"`
	TotalLiabilities    decimal.Decimal `json:"totalLiabilities"`
	NetEquity           decimal.Decimal `json:"netEquity"`
}
