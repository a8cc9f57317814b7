package services

import (
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	portsrepo "github.com/pfsuite/pfs_backend/internal/core/ports/repositories"
	"github.com/pfsuite/pfs_backend/internal/core/syncer"
)

// Repositories groups the persistence collaborators the services need: one
// generic entity repository per collection plus the snapshot repository.
type Repositories struct {
	Properties            portsrepo.EntityRepository[domain.RealEstateProperty]
	BankAccounts          portsrepo.EntityRepository[domain.BankAccount]
	InvestmentAccounts    portsrepo.EntityRepository[domain.InvestmentAccount]
	BusinessEntities      portsrepo.EntityRepository[domain.BusinessEntity]
	PersonalLoans         portsrepo.EntityRepository[domain.PersonalLoan]
	CreditLines           portsrepo.EntityRepository[domain.CreditLine]
	CreditCards           portsrepo.EntityRepository[domain.CreditCard]
	IncomeSources         portsrepo.EntityRepository[domain.IncomeSource]
	LifeInsurancePolicies portsrepo.EntityRepository[domain.LifeInsurancePolicy]
	OtherAssets           portsrepo.EntityRepository[domain.OtherAsset]
	OtherLiabilities      portsrepo.EntityRepository[domain.OtherLiability]
	Snapshots             portsrepo.SnapshotRepository
}

// ServicesContainer bundles every service the handlers consume.
type ServicesContainer struct {
	Properties            *EntityService[domain.RealEstateProperty, *domain.RealEstateProperty]
	BankAccounts          *EntityService[domain.BankAccount, *domain.BankAccount]
	InvestmentAccounts    *EntityService[domain.InvestmentAccount, *domain.InvestmentAccount]
	BusinessEntities      *EntityService[domain.BusinessEntity, *domain.BusinessEntity]
	PersonalLoans         *EntityService[domain.PersonalLoan, *domain.PersonalLoan]
	CreditLines           *EntityService[domain.CreditLine, *domain.CreditLine]
	CreditCards           *EntityService[domain.CreditCard, *domain.CreditCard]
	IncomeSources         *EntityService[domain.IncomeSource, *domain.IncomeSource]
	LifeInsurancePolicies *EntityService[domain.LifeInsurancePolicy, *domain.LifeInsurancePolicy]
	OtherAssets           *EntityService[domain.OtherAsset, *domain.OtherAsset]
	OtherLiabilities      *EntityService[domain.OtherLiability, *domain.OtherLiability]
	Assembler             *AssemblerService
	Snapshots             *SnapshotService
}

// NewServicesContainer wires assembler, snapshot tracker and the per-kind
// entity services over the given repositories. Entity mutations feed the
// snapshot staleness tracker, which in turn reads snapshots from the same
// store the snapshot service writes to.
func NewServicesContainer(repos Repositories) *ServicesContainer {
	assembler := NewAssemblerService(PFSDataFetchers{
		Properties:            repos.Properties.ListBySubject,
		BankAccounts:          repos.BankAccounts.ListBySubject,
		InvestmentAccounts:    repos.InvestmentAccounts.ListBySubject,
		BusinessEntities:      repos.BusinessEntities.ListBySubject,
		PersonalLoans:         repos.PersonalLoans.ListBySubject,
		CreditLines:           repos.CreditLines.ListBySubject,
		CreditCards:           repos.CreditCards.ListBySubject,
		IncomeSources:         repos.IncomeSources.ListBySubject,
		LifeInsurancePolicies: repos.LifeInsurancePolicies.ListBySubject,
		OtherAssets:           repos.OtherAssets.ListBySubject,
		OtherLiabilities:      repos.OtherLiabilities.ListBySubject,
	})

	snapshots := NewSnapshotService(repos.Snapshots, assembler)

	return &ServicesContainer{
		Properties:            NewEntityService(domain.KindRealEstateProperty, repos.Properties, syncer.SyncRealEstateProperty, snapshots),
		BankAccounts:          NewEntityService(domain.KindBankAccount, repos.BankAccounts, syncer.SyncBankAccount, snapshots),
		InvestmentAccounts:    NewEntityService(domain.KindInvestmentAccount, repos.InvestmentAccounts, syncer.SyncInvestmentAccount, snapshots),
		BusinessEntities:      NewEntityService(domain.KindBusinessEntity, repos.BusinessEntities, syncer.SyncBusinessEntity, snapshots),
		PersonalLoans:         NewEntityService(domain.KindPersonalLoan, repos.PersonalLoans, syncer.SyncPersonalLoan, snapshots),
		CreditLines:           NewEntityService(domain.KindCreditLine, repos.CreditLines, syncer.SyncCreditLine, snapshots),
		CreditCards:           NewEntityService(domain.KindCreditCard, repos.CreditCards, syncer.SyncCreditCard, snapshots),
		IncomeSources:         NewEntityService(domain.KindIncomeSource, repos.IncomeSources, syncer.SyncIncomeSource, snapshots),
		LifeInsurancePolicies: NewEntityService(domain.KindLifeInsurancePolicy, repos.LifeInsurancePolicies, syncer.SyncLifeInsurancePolicy, snapshots),
		OtherAssets:           NewEntityService(domain.KindOtherAsset, repos.OtherAssets, syncer.SyncOtherAsset, snapshots),
		OtherLiabilities:      NewEntityService(domain.KindOtherLiability, repos.OtherLiabilities, syncer.SyncOtherLiability, snapshots),
		Assembler:             assembler,
		Snapshots:             snapshots,
	}
}
