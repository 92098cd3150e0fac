package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/budgetace/budgetace/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Entry is a (name, default amount) pair submitted by the user.
type Entry struct {
	Name          string
	DefaultAmount decimal.Decimal
}

type Service interface {
	GetAll(ctx context.Context) ([]Category, error)
	// SeedDefaults creates the fixed default set when the user has no
	// categories yet. It is a no-op otherwise.
	SeedDefaults(ctx context.Context) ([]Category, error)
	// UpsertDefaults creates or updates categories by name. Entries with
	// blank names are skipped.
	UpsertDefaults(ctx context.Context, entries []Entry) ([]Category, error)
}

type CategoryServiceImpl struct {
	repo     Repo
	defaults []Category
}

func NewCategoryService(repo Repo, defaults []Category) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo, defaults: defaults}
}

func (s *CategoryServiceImpl) GetAll(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *CategoryServiceImpl) SeedDefaults(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	log.Debugf("seeding %d default categories for user %d", len(s.defaults), userId)
	return Seed(ctx, s.repo, userId, s.defaults)
}

func (s *CategoryServiceImpl) UpsertDefaults(ctx context.Context, entries []Entry) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		updated, err := s.repo.UpdateAmount(ctx, userId, name, entry.DefaultAmount)
		if err != nil {
			return nil, err
		}
		if !updated {
			if _, err := s.repo.Store(ctx, userId, Category{Name: name, DefaultAmount: entry.DefaultAmount}); err != nil {
				return nil, err
			}
		}
	}

	return s.repo.GetAll(ctx, userId)
}
