package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/services"
)

// RegisterHandlers mounts the full API surface under /api/v1.
func RegisterHandlers(r *gin.Engine, svcs *services.ServicesContainer) {
	r.GET("/health", GetHome)

	v1 := r.Group("/api/v1")

	registerEntityRoutes[domain.RealEstateProperty](v1, "properties", svcs.Properties)
	registerEntityRoutes[domain.BankAccount](v1, "bank-accounts", svcs.BankAccounts)
	registerEntityRoutes[domain.InvestmentAccount](v1, "investment-accounts", svcs.InvestmentAccounts)
	registerEntityRoutes[domain.BusinessEntity](v1, "business-entities", svcs.BusinessEntities)
	registerEntityRoutes[domain.PersonalLoan](v1, "personal-loans", svcs.PersonalLoans)
	registerEntityRoutes[domain.CreditLine](v1, "credit-lines", svcs.CreditLines)
	registerEntityRoutes[domain.CreditCard](v1, "credit-cards", svcs.CreditCards)
	registerEntityRoutes[domain.IncomeSource](v1, "income-sources", svcs.IncomeSources)
	registerEntityRoutes[domain.LifeInsurancePolicy](v1, "life-insurance-policies", svcs.LifeInsurancePolicies)
	registerEntityRoutes[domain.OtherAsset](v1, "other-assets", svcs.OtherAssets)
	registerEntityRoutes[domain.OtherLiability](v1, "other-liabilities", svcs.OtherLiabilities)

	registerPFSRoutes(v1, svcs.Assembler)
	registerSnapshotRoutes(v1, svcs.Snapshots)
}
