package memory

import (
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/services"
)

// NewRepositories builds a full in-memory repository set, one store per
// entity kind plus snapshots.
func NewRepositories() services.Repositories {
	return services.Repositories{
		Properties:            NewEntityRepository[domain.RealEstateProperty](),
		BankAccounts:          NewEntityRepository[domain.BankAccount](),
		InvestmentAccounts:    NewEntityRepository[domain.InvestmentAccount](),
		BusinessEntities:      NewEntityRepository[domain.BusinessEntity](),
		PersonalLoans:         NewEntityRepository[domain.PersonalLoan](),
		CreditLines:           NewEntityRepository[domain.CreditLine](),
		CreditCards:           NewEntityRepository[domain.CreditCard](),
		IncomeSources:         NewEntityRepository[domain.IncomeSource](),
		LifeInsurancePolicies: NewEntityRepository[domain.LifeInsurancePolicy](),
		OtherAssets:           NewEntityRepository[domain.OtherAsset](),
		OtherLiabilities:      NewEntityRepository[domain.OtherLiability](),
		Snapshots:             NewSnapshotRepository(),
	}
}
