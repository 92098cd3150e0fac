package category

import (
	"context"

	"github.com/shopspring/decimal"
)

// Category is a per-user spending category with a baseline amount used to
// seed monthly allocations. Names are unique per user; listing order is
// creation order.
type Category struct {
	ID            int
	Name          string
	DefaultAmount decimal.Decimal
}

// DefaultCategories returns the fixed seed set applied to users who have no
// categories yet. Order matters: allocations are funded first-come.
func DefaultCategories() []Category {
	names := []string{"Rent", "Groceries", "Bills", "Savings", "Transport", "Entertainment"}
	categories := make([]Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, Category{Name: name, DefaultAmount: decimal.Zero})
	}
	return categories
}

// Seed stores the given defaults for a user and returns the stored list.
// Callers are responsible for checking that the user has no categories yet.
func Seed(ctx context.Context, repo Repo, userId int, defaults []Category) ([]Category, error) {
	for _, c := range defaults {
		if _, err := repo.Store(ctx, userId, c); err != nil {
			return nil, err
		}
	}
	return repo.GetAll(ctx, userId)
}
