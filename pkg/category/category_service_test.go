package category

import (
	"context"
	"testing"

	"github.com/budgetace/budgetace/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Email: "test@example.com"})

var categoryRepoStub = NewStubCategoryRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewCategoryService(categoryRepoStub, DefaultCategories())
	return func() {
		t.Log("Teardown after test")
		categoryRepoStub.Cleanup()
	}
}

func TestCategoryServiceImpl_SeedDefaults(t *testing.T) {
	t.Run("should create the fixed default set for a new user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		categories, err := service.SeedDefaults(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, categories, 6)
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, c.Name)
			assert.True(t, c.DefaultAmount.IsZero())
		}
		assert.Equal(t, []string{"Rent", "Groceries", "Bills", "Savings", "Transport", "Entertainment"}, names)
	})

	t.Run("should be a no-op when categories already exist", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.UpsertDefaults(ctx, []Entry{{Name: "Rent", DefaultAmount: decimal.NewFromInt(800)}})
		require.NoError(t, err)

		// when
		categories, err := service.SeedDefaults(ctx)

		// then the single existing category is untouched
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Rent", categories[0].Name)
		assert.Equal(t, "800", categories[0].DefaultAmount.String())
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.SeedDefaults(context.Background())

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestCategoryServiceImpl_UpsertDefaults(t *testing.T) {
	t.Run("should create missing categories and update existing ones", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.UpsertDefaults(ctx, []Entry{{Name: "Rent", DefaultAmount: decimal.NewFromInt(700)}})
		require.NoError(t, err)

		// when
		categories, err := service.UpsertDefaults(ctx, []Entry{
			{Name: "Rent", DefaultAmount: decimal.NewFromInt(800)},
			{Name: "Groceries", DefaultAmount: decimal.NewFromInt(250)},
		})

		// then
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Rent", categories[0].Name)
		assert.Equal(t, "800", categories[0].DefaultAmount.String())
		assert.Equal(t, "Groceries", categories[1].Name)
		assert.Equal(t, "250", categories[1].DefaultAmount.String())
	})

	t.Run("should trim names and skip blank entries", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		categories, err := service.UpsertDefaults(ctx, []Entry{
			{Name: "  Rent  ", DefaultAmount: decimal.NewFromInt(800)},
			{Name: "", DefaultAmount: decimal.NewFromInt(100)},
			{Name: "   ", DefaultAmount: decimal.NewFromInt(100)},
		})

		// then only the trimmed Rent entry was stored
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Rent", categories[0].Name)
	})

	t.Run("should match names case-sensitively", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.UpsertDefaults(ctx, []Entry{{Name: "Rent", DefaultAmount: decimal.NewFromInt(800)}})
		require.NoError(t, err)

		// when a differently-cased name is upserted
		categories, err := service.UpsertDefaults(ctx, []Entry{{Name: "rent", DefaultAmount: decimal.NewFromInt(100)}})

		// then a second category is created instead of updating the first
		require.NoError(t, err)
		assert.Len(t, categories, 2)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.UpsertDefaults(context.Background(), nil)

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}
