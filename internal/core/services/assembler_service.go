package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/core/finmetrics"
	"github.com/pfsuite/pfs_backend/internal/core/syncer"
	"github.com/pfsuite/pfs_backend/internal/middleware"
	"golang.org/x/sync/errgroup"
)

// PFSDataFetchers is the assembler's boundary with the persistence
// collaborator: one getter per entity collection, keyed by subject id.
type PFSDataFetchers struct {
	Properties            func(ctx context.Context, subjectID string) ([]domain.RealEstateProperty, error)
	BankAccounts          func(ctx context.Context, subjectID string) ([]domain.BankAccount, error)
	InvestmentAccounts    func(ctx context.Context, subjectID string) ([]domain.InvestmentAccount, error)
	BusinessEntities      func(ctx context.Context, subjectID string) ([]domain.BusinessEntity, error)
	PersonalLoans         func(ctx context.Context, subjectID string) ([]domain.PersonalLoan, error)
	CreditLines           func(ctx context.Context, subjectID string) ([]domain.CreditLine, error)
	CreditCards           func(ctx context.Context, subjectID string) ([]domain.CreditCard, error)
	IncomeSources         func(ctx context.Context, subjectID string) ([]domain.IncomeSource, error)
	LifeInsurancePolicies func(ctx context.Context, subjectID string) ([]domain.LifeInsurancePolicy, error)
	OtherAssets           func(ctx context.Context, subjectID string) ([]domain.OtherAsset, error)
	OtherLiabilities      func(ctx context.Context, subjectID string) ([]domain.OtherLiability, error)
}

// AssemblerService fetches every entity collection for a subject
// concurrently and assembles one consistent FullPFS.
type AssemblerService struct {
	fetchers PFSDataFetchers
}

// NewAssemblerService creates the assembler over a fetcher set.
func NewAssemblerService(fetchers PFSDataFetchers) *AssemblerService {
	return &AssemblerService{fetchers: fetchers}
}

// AssemblePFS fans out the eleven collection fetches concurrently and waits
// for all of them. A single failing fetch aborts the whole assembly; no
// partial PFS is ever returned.
func (s *AssemblerService) AssemblePFS(ctx context.Context, subjectID string) (*domain.FullPFS, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	g, gctx := errgroup.WithContext(ctx)
	var cols domain.EntityCollections

	// Each goroutine writes a distinct field of cols, so no locking is
	// needed beyond the errgroup barrier.
	g.Go(func() (err error) { cols.Properties, err = s.fetchers.Properties(gctx, subjectID); return })
	g.Go(func() (err error) { cols.BankAccounts, err = s.fetchers.BankAccounts(gctx, subjectID); return })
	g.Go(func() (err error) { cols.InvestmentAccounts, err = s.fetchers.InvestmentAccounts(gctx, subjectID); return })
	g.Go(func() (err error) { cols.BusinessEntities, err = s.fetchers.BusinessEntities(gctx, subjectID); return })
	g.Go(func() (err error) { cols.PersonalLoans, err = s.fetchers.PersonalLoans(gctx, subjectID); return })
	g.Go(func() (err error) { cols.CreditLines, err = s.fetchers.CreditLines(gctx, subjectID); return })
	g.Go(func() (err error) { cols.CreditCards, err = s.fetchers.CreditCards(gctx, subjectID); return })
	g.Go(func() (err error) { cols.IncomeSources, err = s.fetchers.IncomeSources(gctx, subjectID); return })
	g.Go(func() (err error) { cols.LifeInsurancePolicies, err = s.fetchers.LifeInsurancePolicies(gctx, subjectID); return })
	g.Go(func() (err error) { cols.OtherAssets, err = s.fetchers.OtherAssets(gctx, subjectID); return })
	g.Go(func() (err error) { cols.OtherLiabilities, err = s.fetchers.OtherLiabilities(gctx, subjectID); return })

	if err := g.Wait(); err != nil {
		logger.Error("PFS assembly aborted", slog.String("subject_id", subjectID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("pfs assembly for subject %s failed: %w", subjectID, err)
	}

	pfs := AssemblePFSFromData(subjectID, cols)
	logger.Debug("PFS assembled", slog.String("subject_id", subjectID), slog.String("pfs_id", pfs.ID))
	return pfs, nil
}

// AssemblePFSFromData is the pure assembly path over already-fetched
// collections, used by tests and by the snapshot/export pipeline. Soft
// deleted entities are dropped, derived fields are synced, and the summaries
// are computed from exactly the returned collections so the two can never
// come from different data revisions.
func AssemblePFSFromData(subjectID string, cols domain.EntityCollections) *domain.FullPFS {
	active := domain.EntityCollections{
		Properties:            domain.FilterActive[domain.RealEstateProperty](cols.Properties),
		BankAccounts:          domain.FilterActive[domain.BankAccount](cols.BankAccounts),
		InvestmentAccounts:    domain.FilterActive[domain.InvestmentAccount](cols.InvestmentAccounts),
		BusinessEntities:      domain.FilterActive[domain.BusinessEntity](cols.BusinessEntities),
		PersonalLoans:         domain.FilterActive[domain.PersonalLoan](cols.PersonalLoans),
		CreditLines:           domain.FilterActive[domain.CreditLine](cols.CreditLines),
		CreditCards:           domain.FilterActive[domain.CreditCard](cols.CreditCards),
		IncomeSources:         domain.FilterActive[domain.IncomeSource](cols.IncomeSources),
		LifeInsurancePolicies: domain.FilterActive[domain.LifeInsurancePolicy](cols.LifeInsurancePolicies),
		OtherAssets:           domain.FilterActive[domain.OtherAsset](cols.OtherAssets),
		OtherLiabilities:      domain.FilterActive[domain.OtherLiability](cols.OtherLiabilities),
	}

	syncer.SyncAll(&active)

	return &domain.FullPFS{
		ID:          uuid.NewString(),
		SubjectID:   subjectID,
		GeneratedAt: time.Now().UTC(),
		Collections: active,
		Summaries:   finmetrics.CalculatePFSSummaries(active),
	}
}
