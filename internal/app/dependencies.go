package app

import (
	"database/sql"

	"github.com/budgetace/budgetace/internal/event_bus"
	"github.com/budgetace/budgetace/internal/utils"
	"github.com/budgetace/budgetace/pkg/budget"
	"github.com/budgetace/budgetace/pkg/category"
	"github.com/budgetace/budgetace/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	CategoryRepo    category.Repo
	CategoryService category.Service
	CategoryHandler *category.Handler

	BudgetRepo    budget.BudgetRepo
	BudgetService budget.Service
	BudgetHandler *budget.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Clock)
	deps.UserHandler = user.NewHandler(deps.UserService)

	defaults := category.DefaultCategories()
	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo, defaults)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(db, deps.BudgetRepo, deps.CategoryRepo, defaults, deps.EventBus, deps.Clock)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	registerSubscribers(deps.EventBus)

	return deps
}

// registerSubscribers attaches in-process event handlers. Currently a single
// audit log entry per allocated month.
func registerSubscribers(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.MonthAllocated](bus, event_bus.EventMonthAllocated,
		func(e event_bus.EventT[event_bus.MonthAllocated]) error {
			log.WithFields(log.Fields{
				"userId":    e.Data.UserId,
				"month":     e.Data.Month.Format("2006-01"),
				"income":    e.Data.Income.String(),
				"allocated": e.Data.AllocatedTotal.String(),
				"remaining": e.Data.Remaining.String(),
			}).Info("monthly budget allocated")
			return nil
		})
}
