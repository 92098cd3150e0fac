package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/budgetace/budgetace/internal/database"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrBudgetNotFound = errors.New("no budget found for this month")

const dateLayout = "2006-01-02"

type BudgetRepo interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sql.Tx) BudgetRepo
	// Upsert creates the budget for (user, month) or overwrites its income
	// and pay date. The returned budget carries the stored ID and the
	// original creation time.
	Upsert(ctx context.Context, userId int, budget MonthlyBudget) (MonthlyBudget, error)
	Find(ctx context.Context, userId int, month time.Time) (MonthlyBudget, error)
	DeleteAllocations(ctx context.Context, budgetId int) error
	StoreAllocations(ctx context.Context, budgetId int, allocations []Allocation) error
	GetAllocations(ctx context.Context, budgetId int) ([]Allocation, error)
}

type BudgetRepoImpl struct {
	db database.DBTX
}

func NewBudgetRepo(db database.DBTX) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (r *BudgetRepoImpl) WithTx(tx *sql.Tx) BudgetRepo {
	return &BudgetRepoImpl{db: tx}
}

func (r *BudgetRepoImpl) Upsert(ctx context.Context, userId int, budget MonthlyBudget) (MonthlyBudget, error) {
	query := `INSERT INTO monthly_budgets (user_id, month, pay_date, income, created_at)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (user_id, month) DO UPDATE SET income = excluded.income, pay_date = excluded.pay_date
				RETURNING id, created_at`

	var payDateParam interface{}
	if !budget.PayDate.IsZero() {
		payDateParam = budget.PayDate.Format(dateLayout)
	}

	var createdAt string
	err := r.db.QueryRowContext(ctx, query,
		userId,
		budget.Month.Format(dateLayout),
		payDateParam,
		budget.Income.String(),
		budget.CreatedAt.UTC().Format(time.RFC3339),
	).Scan(&budget.ID, &createdAt)
	if err != nil {
		err := fmt.Errorf("could not upsert monthly budget: %w", err)
		log.Error(err)
		return MonthlyBudget{}, err
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		budget.CreatedAt = parsed
	}
	return budget, nil
}

func (r *BudgetRepoImpl) Find(ctx context.Context, userId int, month time.Time) (MonthlyBudget, error) {
	query := `SELECT id, month, pay_date, income, created_at FROM monthly_budgets WHERE user_id = ? AND month = ?`

	var budget MonthlyBudget
	var monthString, income, createdAt string
	var payDate sql.NullString
	err := r.db.QueryRowContext(ctx, query, userId, month.Format(dateLayout)).
		Scan(&budget.ID, &monthString, &payDate, &income, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return MonthlyBudget{}, ErrBudgetNotFound
	} else if err != nil {
		err := fmt.Errorf("could not query monthly budget: %w", err)
		log.Error(err)
		return MonthlyBudget{}, err
	}

	budget.Month, err = time.ParseInLocation(dateLayout, monthString, time.UTC)
	if err != nil {
		err := fmt.Errorf("could not parse month %q: %w", monthString, err)
		log.Error(err)
		return MonthlyBudget{}, err
	}
	if payDate.Valid {
		budget.PayDate, err = time.ParseInLocation(dateLayout, payDate.String, time.UTC)
		if err != nil {
			err := fmt.Errorf("could not parse pay date %q: %w", payDate.String, err)
			log.Error(err)
			return MonthlyBudget{}, err
		}
	}
	budget.Income, err = decimal.NewFromString(income)
	if err != nil {
		err := fmt.Errorf("could not parse income %q: %w", income, err)
		log.Error(err)
		return MonthlyBudget{}, err
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		budget.CreatedAt = parsed
	}
	return budget, nil
}

func (r *BudgetRepoImpl) DeleteAllocations(ctx context.Context, budgetId int) error {
	query := `DELETE FROM allocations WHERE monthly_budget_id = ?`
	if _, err := r.db.ExecContext(ctx, query, budgetId); err != nil {
		err := fmt.Errorf("could not delete allocations: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *BudgetRepoImpl) StoreAllocations(ctx context.Context, budgetId int, allocations []Allocation) error {
	query := `INSERT INTO allocations (monthly_budget_id, category_name, amount) VALUES (?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, allocation := range allocations {
		if _, err := stmt.ExecContext(ctx, budgetId, allocation.CategoryName, allocation.Amount.String()); err != nil {
			err := fmt.Errorf("could not store allocation for %q: %w", allocation.CategoryName, err)
			log.Error(err)
			return err
		}
	}
	return nil
}

func (r *BudgetRepoImpl) GetAllocations(ctx context.Context, budgetId int) ([]Allocation, error) {
	query := `SELECT id, monthly_budget_id, category_name, amount FROM allocations WHERE monthly_budget_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query allocations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var allocations []Allocation
	for rows.Next() {
		var allocation Allocation
		var amount string
		if err := rows.Scan(&allocation.ID, &allocation.BudgetID, &allocation.CategoryName, &amount); err != nil {
			err := fmt.Errorf("could not scan allocation: %w", err)
			log.Error(err)
			return nil, err
		}
		allocation.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			err := fmt.Errorf("could not parse allocation amount %q: %w", amount, err)
			log.Error(err)
			return nil, err
		}
		allocations = append(allocations, allocation)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return allocations, nil
}
