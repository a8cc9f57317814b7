package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/pfsuite/pfs_backend/internal/apperrors"
	"github.com/pfsuite/pfs_backend/internal/core/domain"
	"github.com/pfsuite/pfs_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(subjectID string, balance int64) domain.BankAccount {
	return domain.NewVersioned[domain.BankAccount](domain.BankAccount{
		SubjectID: subjectID,
		Balance:   decimal.NewFromInt(balance),
	})
}

func TestEntityRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEntityRepository[domain.BankAccount]()

	account := newAccount("subject-1", 1000)
	require.NoError(t, repo.Create(ctx, account))

	assert.ErrorIs(t, repo.Create(ctx, account), apperrors.ErrDuplicate)

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, found.Balance.Equal(decimal.NewFromInt(1000)))

	found.Balance = decimal.NewFromInt(2000)
	require.NoError(t, repo.Update(ctx, *found))

	updated, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(2000)))

	require.NoError(t, repo.Delete(ctx, account.ID))
	_, err = repo.FindByID(ctx, account.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEntityRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEntityRepository[domain.BankAccount]()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newAccount("subject-1", 1)), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), apperrors.ErrNotFound)
}

func TestEntityRepository_ListBySubject(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEntityRepository[domain.BankAccount]()

	first := newAccount("subject-1", 100)
	second := newAccount("subject-1", 200)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	other := newAccount("subject-2", 300)

	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, other))

	listed, err := repo.ListBySubject(ctx, "subject-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID, listed[0].ID, "ordered by creation time regardless of insertion order")
	assert.Equal(t, second.ID, listed[1].ID)

	empty, err := repo.ListBySubject(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEntityRepository_KeepsSoftDeleted(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEntityRepository[domain.BankAccount]()

	account := newAccount("subject-1", 100)
	require.NoError(t, repo.Create(ctx, account))

	deleted, err := domain.SoftDelete[domain.BankAccount](account)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, deleted))

	// Soft-deleted entities stay both findable and listed; filtering is the
	// service layer's job.
	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.DeletedAt)

	listed, err := repo.ListBySubject(ctx, "subject-1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()

	snapshot := domain.PFSSnapshot{
		ID:        "snap-1",
		SubjectID: "subject-1",
		Name:      "Baseline",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot))
	assert.ErrorIs(t, repo.SaveSnapshot(ctx, snapshot), apperrors.ErrDuplicate)

	later := domain.PFSSnapshot{
		ID:        "snap-2",
		SubjectID: "subject-1",
		Name:      "After refinance",
		CreatedAt: snapshot.CreatedAt.Add(time.Hour),
	}
	require.NoError(t, repo.SaveSnapshot(ctx, later))

	listed, err := repo.ListSnapshotsBySubject(ctx, "subject-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "snap-2", listed[0].ID, "newest first")

	require.NoError(t, repo.MarkSnapshotOutdated(ctx, "snap-1", "property p1 was updated"))

	marked, err := repo.FindSnapshotByID(ctx, "snap-1")
	require.NoError(t, err)
	assert.True(t, marked.IsOutdated)
	assert.Equal(t, "property p1 was updated", marked.OutdatedReason)

	// Marking again keeps the original reason.
	require.NoError(t, repo.MarkSnapshotOutdated(ctx, "snap-1", "a different reason"))
	remarked, err := repo.FindSnapshotByID(ctx, "snap-1")
	require.NoError(t, err)
	assert.Equal(t, "property p1 was updated", remarked.OutdatedReason)

	assert.ErrorIs(t, repo.MarkSnapshotOutdated(ctx, "missing", "x"), apperrors.ErrNotFound)
}
