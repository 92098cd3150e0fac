package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Category defaults
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category/defaults/init", deps.CategoryHandler.SeedDefaults).Methods("POST")
	r.HandleFunc("/api/category/defaults", deps.CategoryHandler.UpsertDefaults).Methods("PUT")

	// Monthly budget
	r.HandleFunc("/api/budget/income", deps.BudgetHandler.SetIncome).Methods("POST")
	r.HandleFunc("/api/budget/summary", deps.BudgetHandler.GetSummary).Queries("month", "{month}").Methods("GET")
}
