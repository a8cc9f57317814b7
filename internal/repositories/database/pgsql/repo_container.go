package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/services"
)

// NewRepositories instantiates the generic entity repository for every
// collection kind plus the snapshot repository, all over one pool.
func NewRepositories(pool *pgxpool.Pool) services.Repositories {
	return services.Repositories{
		Properties:            NewEntityRepository[domain.RealEstateProperty](pool, domain.KindRealEstateProperty),
		BankAccounts:          NewEntityRepository[domain.BankAccount](pool, domain.KindBankAccount),
		InvestmentAccounts:    NewEntityRepository[domain.InvestmentAccount](pool, domain.KindInvestmentAccount),
		BusinessEntities:      NewEntityRepository[domain.BusinessEntity](pool, domain.KindBusinessEntity),
		PersonalLoans:         NewEntityRepository[domain.PersonalLoan](pool, domain.KindPersonalLoan),
		CreditLines:           NewEntityRepository[domain.CreditLine](pool, domain.KindCreditLine),
		CreditCards:           NewEntityRepository[domain.CreditCard](pool, domain.KindCreditCard),
		IncomeSources:         NewEntityRepository[domain.IncomeSource](pool, domain.KindIncomeSource),
		LifeInsurancePolicies: NewEntityRepository[domain.LifeInsurancePolicy](pool, domain.KindLifeInsurancePolicy),
		OtherAssets:           NewEntityRepository[domain.OtherAsset](pool, domain.KindOtherAsset),
		OtherLiabilities:      NewEntityRepository[domain.OtherLiability](pool, domain.KindOtherLiability),
		Snapshots:             NewSnapshotRepository(pool),
	}
}
