package test_utils

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/budgetace/budgetace/pkg/user"
	"github.com/google/uuid"
)

// CreateTestUser inserts a user row and returns it with its assigned ID.
func CreateTestUser(t *testing.T, db *sql.DB, email string) user.User {
	t.Helper()

	u := user.User{
		Uid:         uuid.NewString(),
		Email:       email,
		DisplayName: "Test User",
		CreatedAt:   time.Now().UTC(),
	}
	id, err := user.NewUserRepo(db).CreateUser(context.Background(), u)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	u.Id = id
	return u
}
