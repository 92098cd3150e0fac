package budget

import (
	"context"
	"testing"
	"time"

	"github.com/budgetace/budgetace/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetRepoImpl_Upsert(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	testUser := test_utils.CreateTestUser(t, db, "repo@example.com")
	ctx := context.Background()
	month := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	// when
	created, err := repo.Upsert(ctx, testUser.Id, MonthlyBudget{
		Month:     month,
		Income:    decimal.NewFromInt(1000),
		CreatedAt: time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC),
	})

	// then
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// when the same month is upserted again with a new income and pay date
	updated, err := repo.Upsert(ctx, testUser.Id, MonthlyBudget{
		Month:     month,
		PayDate:   time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Income:    decimal.NewFromInt(2500),
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})

	// then the row is overwritten, not duplicated, and keeps its creation time
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	stored, err := repo.Find(ctx, testUser.Id, month)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
	assert.Equal(t, "2500", stored.Income.String())
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), stored.PayDate)
}

func TestBudgetRepoImpl_Find(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	testUser := test_utils.CreateTestUser(t, db, "repo@example.com")
	ctx := context.Background()

	// when no budget exists for the month
	_, err := repo.Find(ctx, testUser.Id, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	// then
	assert.ErrorIs(t, err, ErrBudgetNotFound)

	// given a stored budget without a pay date
	month := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err = repo.Upsert(ctx, testUser.Id, MonthlyBudget{
		Month:     month,
		Income:    decimal.RequireFromString("1234.56"),
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// when
	stored, err := repo.Find(ctx, testUser.Id, month)

	// then
	require.NoError(t, err)
	assert.Equal(t, month, stored.Month)
	assert.True(t, stored.PayDate.IsZero())
	assert.Equal(t, "1234.56", stored.Income.String())
}

func TestBudgetRepoImpl_Allocations(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	testUser := test_utils.CreateTestUser(t, db, "repo@example.com")
	ctx := context.Background()

	budget, err := repo.Upsert(ctx, testUser.Id, MonthlyBudget{
		Month:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Income:    decimal.NewFromInt(900),
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// when
	err = repo.StoreAllocations(ctx, budget.ID, []Allocation{
		{CategoryName: "Rent", Amount: decimal.NewFromInt(800)},
		{CategoryName: "Groceries", Amount: decimal.NewFromInt(100)},
	})
	require.NoError(t, err)

	// then they come back in insertion order
	allocations, err := repo.GetAllocations(ctx, budget.ID)
	require.NoError(t, err)
	require.Len(t, allocations, 2)
	assert.Equal(t, "Rent", allocations[0].CategoryName)
	assert.Equal(t, "800", allocations[0].Amount.String())
	assert.Equal(t, "Groceries", allocations[1].CategoryName)
	assert.Equal(t, "100", allocations[1].Amount.String())

	// when the allocations are deleted
	err = repo.DeleteAllocations(ctx, budget.ID)
	require.NoError(t, err)

	// then nothing is left
	allocations, err = repo.GetAllocations(ctx, budget.ID)
	require.NoError(t, err)
	assert.Empty(t, allocations)
}
