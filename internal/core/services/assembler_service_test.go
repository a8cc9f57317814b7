package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// emptyFetchers returns a fetcher set where every collection resolves empty;
// tests override individual fields.
func emptyFetchers() services.PFSDataFetchers {
	return services.PFSDataFetchers{
		Properties: func(ctx context.Context, subjectID string) ([]domain.RealEstateProperty, error) {
			return nil, nil
		},
		BankAccounts: func(ctx context.Context, subjectID string) ([]domain.BankAccount, error) {
			return nil, nil
		},
		InvestmentAccounts: func(ctx context.Context, subjectID string) ([]domain.InvestmentAccount, error) {
			return nil, nil
		},
		BusinessEntities: func(ctx context.Context, subjectID string) ([]domain.BusinessEntity, error) {
			return nil, nil
		},
		PersonalLoans: func(ctx context.Context, subjectID string) ([]domain.PersonalLoan, error) {
			return nil, nil
		},
		CreditLines: func(ctx context.Context, subjectID string) ([]domain.CreditLine, error) {
			return nil, nil
		},
		CreditCards: func(ctx context.Context, subjectID string) ([]domain.CreditCard, error) {
			return nil, nil
		},
		IncomeSources: func(ctx context.Context, subjectID string) ([]domain.IncomeSource, error) {
			return nil, nil
		},
		LifeInsurancePolicies: func(ctx context.Context, subjectID string) ([]domain.LifeInsurancePolicy, error) {
			return nil, nil
		},
		OtherAssets: func(ctx context.Context, subjectID string) ([]domain.OtherAsset, error) {
			return nil, nil
		},
		OtherLiabilities: func(ctx context.Context, subjectID string) ([]domain.OtherLiability, error) {
			return nil, nil
		},
	}
}

func TestAssemblePFS_Success(t *testing.T) {
	fetchers := emptyFetchers()
	fetchers.BankAccounts = func(ctx context.Context, subjectID string) ([]domain.BankAccount, error) {
		return []domain.BankAccount{{SubjectID: subjectID, Balance: dec(25000)}}, nil
	}
	fetchers.CreditLines = func(ctx context.Context, subjectID string) ([]domain.CreditLine, error) {
		return []domain.CreditLine{{SubjectID: subjectID, CreditLimit: dec(10000), CurrentBalance: dec(3000)}}, nil
	}

	svc := services.NewAssemblerService(fetchers)
	pfs, err := svc.AssemblePFS(context.Background(), "subject-1")

	require.NoError(t, err)
	require.NotNil(t, pfs)
	assert.NotEmpty(t, pfs.ID)
	assert.Equal(t, "subject-1", pfs.SubjectID)
	assert.False(t, pfs.GeneratedAt.IsZero())
	require.Len(t, pfs.Collections.BankAccounts, 1)
	assert.True(t, pfs.Summaries.TotalCash.Equal(dec(25000)))
	assert.True(t, pfs.Collections.CreditLines[0].AvailableCredit.Equal(dec(7000)), "derived fields synced during assembly")
	assert.True(t, pfs.Summaries.TotalAvailableCredit.Equal(dec(7000)))
}

func TestAssemblePFS_FailFast(t *testing.T) {
	fetchers := emptyFetchers()
	fetchErr := fmt.Errorf("bank accounts table unreachable")
	fetchers.BankAccounts = func(ctx context.Context, subjectID string) ([]domain.BankAccount, error) {
		return nil, fetchErr
	}

	svc := services.NewAssemblerService(fetchers)
	pfs, err := svc.AssemblePFS(context.Background(), "subject-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.Nil(t, pfs, "no partial PFS is ever returned")
}

func TestAssemblePFS_FetchesConcurrently(t *testing.T) {
	// Every fetcher blocks on a shared barrier sized to the number of
	// collections; the test only completes if all eleven run at once.
	var barrier sync.WaitGroup
	barrier.Add(11)
	rendezvous := func() {
		barrier.Done()
		barrier.Wait()
	}

	fetchers := services.PFSDataFetchers{
		Properties: func(ctx context.Context, subjectID string) ([]domain.RealEstateProperty, error) {
			rendezvous()
			return nil, nil
		},
		BankAccounts: func(ctx context.Context, subjectID string) ([]domain.BankAccount, error) {
			rendezvous()
			return nil, nil
		},
		InvestmentAccounts: func(ctx context.Context, subjectID string) ([]domain.InvestmentAccount, error) {
			rendezvous()
			return nil, nil
		},
		BusinessEntities: func(ctx context.Context, subjectID string) ([]domain.BusinessEntity, error) {
			rendezvous()
			return nil, nil
		},
		PersonalLoans: func(ctx context.Context, subjectID string) ([]domain.PersonalLoan, error) {
			rendezvous()
			return nil, nil
		},
		CreditLines: func(ctx context.Context, subjectID string) ([]domain.CreditLine, error) {
			rendezvous()
			return nil, nil
		},
		CreditCards: func(ctx context.Context, subjectID string) ([]domain.CreditCard, error) {
			rendezvous()
			return nil, nil
		},
		IncomeSources: func(ctx context.Context, subjectID string) ([]domain.IncomeSource, error) {
			rendezvous()
			return nil, nil
		},
		LifeInsurancePolicies: func(ctx context.Context, subjectID string) ([]domain.LifeInsurancePolicy, error) {
			rendezvous()
			return nil, nil
		},
		OtherAssets: func(ctx context.Context, subjectID string) ([]domain.OtherAsset, error) {
			rendezvous()
			return nil, nil
		},
		OtherLiabilities: func(ctx context.Context, subjectID string) ([]domain.OtherLiability, error) {
			rendezvous()
			return nil, nil
		},
	}

	svc := services.NewAssemblerService(fetchers)
	pfs, err := svc.AssemblePFS(context.Background(), "subject-1")

	require.NoError(t, err)
	assert.NotNil(t, pfs)
}

func TestAssemblePFSFromData_FiltersSoftDeleted(t *testing.T) {
	active := domain.NewVersioned[domain.BankAccount](domain.BankAccount{SubjectID: "subject-1", Balance: dec(100)})
	deleted, err := domain.SoftDelete[domain.BankAccount](
		domain.NewVersioned[domain.BankAccount](domain.BankAccount{SubjectID: "subject-1", Balance: dec(900)}))
	require.NoError(t, err)

	pfs := services.AssemblePFSFromData("subject-1", domain.EntityCollections{
		BankAccounts: []domain.BankAccount{active, deleted},
	})

	require.Len(t, pfs.Collections.BankAccounts, 1)
	assert.True(t, pfs.Summaries.TotalCash.Equal(dec(100)), "soft-deleted balances never reach the summaries")
}
