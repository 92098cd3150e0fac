package budget

import (
	"time"

	"github.com/budgetace/budgetace/pkg/category"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Messages attached to the month-over-month saving comparison.
const (
	MessageImproving = "You are improving! Saving more than last month."
	MessageDeclining = "You saved less than last month. Try reducing non-essentials."
	MessageUnchanged = "Same saving rate as last month."
)

// Plan is the result of distributing a month's income across categories.
type Plan struct {
	Allocations    []Allocation
	AllocatedTotal decimal.Decimal
	Remaining      decimal.Decimal
}

// BuildPlan distributes income across the given categories greedily, in list
// order: each category receives min(default amount, income not yet allocated),
// floored at zero. Once income is exhausted later categories receive zero.
// This first-come policy is the business rule; there is no proportional
// scaling.
func BuildPlan(categories []category.Category, income decimal.Decimal) Plan {
	allocations := make([]Allocation, 0, len(categories))
	total := decimal.Zero

	for _, c := range categories {
		amount := c.DefaultAmount
		if left := income.Sub(total); amount.GreaterThan(left) {
			amount = left
		}
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		allocations = append(allocations, Allocation{CategoryName: c.Name, Amount: amount})
		total = total.Add(amount)
	}

	remaining := income.Sub(total)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Plan{Allocations: allocations, AllocatedTotal: total, Remaining: remaining}
}

// PercentOf returns amount/income*100 rounded to two decimal places with
// half-up semantics, or zero when income is zero.
func PercentOf(amount, income decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(hundred).DivRound(income, 2)
}

// savingPercent returns max(0, income-allocated)/income*100, unrounded so
// comparisons between months do not accumulate rounding error.
func savingPercent(income, allocated decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	remaining := income.Sub(allocated)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return remaining.Mul(hundred).Div(income)
}

// Improvement compares saving rates between consecutive months.
type Improvement struct {
	PreviousMonth         time.Time
	PreviousSavingPercent decimal.Decimal
	CurrentMonth          time.Time
	CurrentSavingPercent  decimal.Decimal
	// Difference is current minus previous saving percent, in percentage points.
	Difference decimal.Decimal
	Message    string
}

// CompareSavings builds the saving-rate comparison between the previous and
// the current month. It reports ok=false when the previous month's income is
// not positive, in which case no comparison is meaningful.
func CompareSavings(prevMonth time.Time, prevIncome, prevAllocated decimal.Decimal,
	month time.Time, income, allocated decimal.Decimal) (Improvement, bool) {

	if !prevIncome.IsPositive() {
		return Improvement{}, false
	}

	prevPercent := savingPercent(prevIncome, prevAllocated)
	currentPercent := savingPercent(income, allocated)
	difference := currentPercent.Sub(prevPercent)

	message := MessageUnchanged
	switch {
	case difference.IsPositive():
		message = MessageImproving
	case difference.IsNegative():
		message = MessageDeclining
	}

	return Improvement{
		PreviousMonth:         prevMonth,
		PreviousSavingPercent: prevPercent.Round(2),
		CurrentMonth:          month,
		CurrentSavingPercent:  currentPercent.Round(2),
		Difference:            difference.Round(2),
		Message:               message,
	}, true
}
