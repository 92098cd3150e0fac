package category

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/budgetace/budgetace/internal/database"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *sql.Tx) Repo
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Store(ctx context.Context, userId int, category Category) (int, error)
	UpdateAmount(ctx context.Context, userId int, name string, amount decimal.Decimal) (bool, error)
}

type CategoryRepoImpl struct {
	db database.DBTX
}

func NewCategoryRepo(db database.DBTX) *CategoryRepoImpl {
	return &CategoryRepoImpl{db: db}
}

func (r *CategoryRepoImpl) WithTx(tx *sql.Tx) Repo {
	return &CategoryRepoImpl{db: tx}
}

func (r *CategoryRepoImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, default_amount FROM categories WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		var amount string
		if err := rows.Scan(&category.ID, &category.Name, &amount); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		category.DefaultAmount, err = decimal.NewFromString(amount)
		if err != nil {
			err := fmt.Errorf("could not parse default amount %q: %w", amount, err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return categories, nil
}

func (r *CategoryRepoImpl) Store(ctx context.Context, userId int, category Category) (int, error) {
	query := `INSERT INTO categories (user_id, name, default_amount) VALUES (?, ?, ?) RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query, userId, category.Name, category.DefaultAmount.String()).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *CategoryRepoImpl) UpdateAmount(ctx context.Context, userId int, name string, amount decimal.Decimal) (bool, error) {
	query := `UPDATE categories SET default_amount = ? WHERE user_id = ? AND name = ?`
	result, err := r.db.ExecContext(ctx, query, amount.String(), userId, name)
	if err != nil {
		err := fmt.Errorf("could not update category: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
