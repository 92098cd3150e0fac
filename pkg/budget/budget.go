package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyBudget is one user's budget for one calendar month. Month is always
// the first day of the month in UTC; there is at most one budget per
// (user, month).
type MonthlyBudget struct {
	ID int
	// Month is the first day of the budgeted month, UTC.
	Month time.Time
	// PayDate is optional; the zero value means no pay date was given.
	PayDate   time.Time
	Income    decimal.Decimal
	CreatedAt time.Time
}

// Allocation is the portion of a month's income assigned to one category.
// CategoryName is a snapshot taken when the allocation is built, so later
// category edits do not rewrite history.
type Allocation struct {
	ID           int
	BudgetID     int
	CategoryName string
	Amount       decimal.Decimal
}
