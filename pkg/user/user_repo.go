package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/budgetace/budgetace/internal/database"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
}

type UserRepoImpl struct {
	db database.DBTX
}

func NewUserRepo(db database.DBTX) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, email, display_name, created_at) VALUES (?, ?, ?, ?) RETURNING id`
	var id int
	err := u.db.QueryRowContext(ctx, query,
		user.Uid,
		user.Email,
		user.DisplayName,
		user.CreatedAt.UTC().Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.getUser(ctx, "id = ?", id)
}

func (u *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return u.getUser(ctx, "email = ?", email)
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.getUser(ctx, "uid = ?", uid)
}

func (u *UserRepoImpl) getUser(ctx context.Context, where string, arg any) (User, error) {
	query := `SELECT id, uid, email, display_name, created_at FROM users WHERE ` + where

	var user User
	var createdAt string
	err := u.db.QueryRowContext(ctx, query, arg).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Email,
			&user.DisplayName,
			&createdAt,
		)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debugf("user (%v) not found", arg)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		user.CreatedAt = parsed
	}
	return user, nil
}
