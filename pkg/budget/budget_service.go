package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/budgetace/budgetace/internal/event_bus"
	"github.com/budgetace/budgetace/internal/utils"
	"github.com/budgetace/budgetace/pkg/category"
	"github.com/budgetace/budgetace/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrNegativeIncome = errors.New("income must not be negative")

// AllocationLine is one allocation together with its share of the income.
type AllocationLine struct {
	CategoryName string
	Amount       decimal.Decimal
	Percent      decimal.Decimal
}

// AllocationResult is the outcome of setting a month's income.
type AllocationResult struct {
	Budget         MonthlyBudget
	AllocatedTotal decimal.Decimal
	Remaining      decimal.Decimal
	Lines          []AllocationLine
	// Improvement is nil for a user's first budgeted month and when the
	// previous month had no income.
	Improvement *Improvement
}

// Summary is a stored budget with its allocations, as persisted.
type Summary struct {
	Budget      MonthlyBudget
	Allocations []Allocation
}

type Service interface {
	// SetIncome stores the income (and optional pay date) for a month and
	// rebuilds the month's allocations from the category defaults.
	SetIncome(ctx context.Context, month time.Time, payDate time.Time, income decimal.Decimal) (AllocationResult, error)
	GetSummary(ctx context.Context, month time.Time) (Summary, error)
}

type BudgetServiceImpl struct {
	db           *sql.DB
	repo         BudgetRepo
	categoryRepo category.Repo
	defaults     []category.Category
	bus          *event_bus.EventBus
	clock        utils.Clock
}

func NewBudgetService(
	db *sql.DB,
	repo BudgetRepo,
	categoryRepo category.Repo,
	defaults []category.Category,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *BudgetServiceImpl {
	return &BudgetServiceImpl{
		db:           db,
		repo:         repo,
		categoryRepo: categoryRepo,
		defaults:     defaults,
		bus:          bus,
		clock:        clock,
	}
}

// SetIncome runs the whole rebuild in a single transaction: budget upsert,
// category seeding when the user has none, allocation delete and recreate.
// A failure anywhere rolls everything back.
func (s *BudgetServiceImpl) SetIncome(ctx context.Context, month time.Time, payDate time.Time, income decimal.Decimal) (AllocationResult, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return AllocationResult{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if income.IsNegative() {
		return AllocationResult{}, ErrNegativeIncome
	}
	month = NormalizeMonth(month)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AllocationResult{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	categoryRepo := s.categoryRepo.WithTx(tx)

	categories, err := categoryRepo.GetAll(ctx, userId)
	if err != nil {
		return AllocationResult{}, err
	}
	if len(categories) == 0 {
		categories, err = category.Seed(ctx, categoryRepo, userId, s.defaults)
		if err != nil {
			return AllocationResult{}, err
		}
	}

	budget := MonthlyBudget{Month: month, PayDate: payDate, Income: income, CreatedAt: s.clock.Now()}
	budget, err = repo.Upsert(ctx, userId, budget)
	if err != nil {
		return AllocationResult{}, err
	}

	// Allocations are a derived projection: always rebuilt, never merged.
	if err := repo.DeleteAllocations(ctx, budget.ID); err != nil {
		return AllocationResult{}, err
	}
	plan := BuildPlan(categories, income)
	if err := repo.StoreAllocations(ctx, budget.ID, plan.Allocations); err != nil {
		return AllocationResult{}, err
	}

	improvement, err := s.compareWithPreviousMonth(ctx, repo, userId, budget, plan)
	if err != nil {
		return AllocationResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return AllocationResult{}, fmt.Errorf("could not commit transaction: %w", err)
	}

	if s.bus != nil {
		err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.EventMonthAllocated, event_bus.MonthAllocated{
			UserId:         userId,
			Month:          budget.Month,
			Income:         income,
			AllocatedTotal: plan.AllocatedTotal,
			Remaining:      plan.Remaining,
		}))
		if err != nil {
			log.Warnf("failed to publish allocation event: %v", err)
		}
	}

	lines := make([]AllocationLine, 0, len(plan.Allocations))
	for _, allocation := range plan.Allocations {
		lines = append(lines, AllocationLine{
			CategoryName: allocation.CategoryName,
			Amount:       allocation.Amount,
			Percent:      PercentOf(allocation.Amount, income),
		})
	}

	return AllocationResult{
		Budget:         budget,
		AllocatedTotal: plan.AllocatedTotal,
		Remaining:      plan.Remaining,
		Lines:          lines,
		Improvement:    improvement,
	}, nil
}

func (s *BudgetServiceImpl) compareWithPreviousMonth(ctx context.Context, repo BudgetRepo, userId int, budget MonthlyBudget, plan Plan) (*Improvement, error) {
	previous, err := repo.Find(ctx, userId, PreviousMonth(budget.Month))
	if errors.Is(err, ErrBudgetNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	previousAllocations, err := repo.GetAllocations(ctx, previous.ID)
	if err != nil {
		return nil, err
	}
	previousTotal := decimal.Zero
	for _, allocation := range previousAllocations {
		previousTotal = previousTotal.Add(allocation.Amount)
	}

	improvement, ok := CompareSavings(previous.Month, previous.Income, previousTotal, budget.Month, budget.Income, plan.AllocatedTotal)
	if !ok {
		return nil, nil
	}
	return &improvement, nil
}

func (s *BudgetServiceImpl) GetSummary(ctx context.Context, month time.Time) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}

	budget, err := s.repo.Find(ctx, userId, NormalizeMonth(month))
	if err != nil {
		return Summary{}, err
	}
	allocations, err := s.repo.GetAllocations(ctx, budget.ID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Budget: budget, Allocations: allocations}, nil
}
