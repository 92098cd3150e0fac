package category

import (
	"context"
	"database/sql"
	"sort"

	"github.com/shopspring/decimal"
)

type StubCategoryRepo struct {
	nextId int
	data   map[int]map[int]Category // userId -> categoryId -> Category
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{data: map[int]map[int]Category{}}
}

func (s *StubCategoryRepo) WithTx(tx *sql.Tx) Repo {
	return s
}

func (s *StubCategoryRepo) GetAll(ctx context.Context, userId int) ([]Category, error) {
	categories := make([]Category, 0, len(s.data[userId]))
	for _, c := range s.data[userId] {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (s *StubCategoryRepo) Store(ctx context.Context, userId int, category Category) (int, error) {
	s.nextId++
	category.ID = s.nextId
	if s.data[userId] == nil {
		s.data[userId] = map[int]Category{}
	}
	s.data[userId][category.ID] = category
	return category.ID, nil
}

func (s *StubCategoryRepo) UpdateAmount(ctx context.Context, userId int, name string, amount decimal.Decimal) (bool, error) {
	for id, c := range s.data[userId] {
		if c.Name == name {
			c.DefaultAmount = amount
			s.data[userId][id] = c
			return true, nil
		}
	}
	return false, nil
}

func (s *StubCategoryRepo) Cleanup() {
	s.data = map[int]map[int]Category{}
	s.nextId = 0
}
