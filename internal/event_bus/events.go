package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventMonthAllocated EventType = "budget.month_allocated"

// MonthAllocated is published after a month's income has been set and its
// allocations rebuilt.
type MonthAllocated struct {
	UserId int
	// Month is the first day of the allocated month.
	Month          time.Time
	Income         decimal.Decimal
	AllocatedTotal decimal.Decimal
	Remaining      decimal.Decimal
}
