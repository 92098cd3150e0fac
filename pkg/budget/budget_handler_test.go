package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBudgetService struct {
	result  AllocationResult
	summary Summary
	err     error
}

func (s *stubBudgetService) SetIncome(_ context.Context, _ time.Time, _ time.Time, _ decimal.Decimal) (AllocationResult, error) {
	return s.result, s.err
}

func (s *stubBudgetService) GetSummary(_ context.Context, _ time.Time) (Summary, error) {
	return s.summary, s.err
}

func TestHandler_SetIncome(t *testing.T) {
	t.Run("should return the allocation result as JSON", func(t *testing.T) {
		// given
		handler := NewHandler(&stubBudgetService{result: AllocationResult{
			Budget: MonthlyBudget{
				ID:     1,
				Month:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				Income: decimal.NewFromInt(900),
			},
			AllocatedTotal: decimal.NewFromInt(900),
			Remaining:      decimal.Zero,
			Lines: []AllocationLine{
				{CategoryName: "Rent", Amount: decimal.NewFromInt(800), Percent: decimal.RequireFromString("88.89")},
				{CategoryName: "Groceries", Amount: decimal.NewFromInt(100), Percent: decimal.RequireFromString("11.11")},
			},
		}})

		body := `{"month": "2026-02", "income": 900}`
		request := httptest.NewRequest(http.MethodPost, "/api/budget/income", strings.NewReader(body))
		response := httptest.NewRecorder()

		// when
		handler.SetIncome(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)

		var dto AllocationResultDTO
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &dto))
		assert.Equal(t, "2026-02", dto.Month)
		assert.Nil(t, dto.PayDate)
		assert.Equal(t, 900.0, dto.Income)
		assert.Equal(t, 900.0, dto.AllocatedTotal)
		assert.Equal(t, 0.0, dto.Remaining)
		require.Len(t, dto.Allocations, 2)
		assert.Equal(t, "Rent", dto.Allocations[0].Category)
		assert.Equal(t, 800.0, dto.Allocations[0].Amount)
		assert.Equal(t, 88.89, dto.Allocations[0].Percent)
		assert.Nil(t, dto.Improvement)
	})

	t.Run("should include the improvement block when present", func(t *testing.T) {
		// given
		handler := NewHandler(&stubBudgetService{result: AllocationResult{
			Budget: MonthlyBudget{
				Month:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				Income: decimal.NewFromInt(1000),
			},
			Improvement: &Improvement{
				PreviousMonth:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				PreviousSavingPercent: decimal.RequireFromString("30.00"),
				CurrentMonth:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				CurrentSavingPercent:  decimal.RequireFromString("20.00"),
				Difference:            decimal.RequireFromString("-10.00"),
				Message:               MessageDeclining,
			},
		}})

		request := httptest.NewRequest(http.MethodPost, "/api/budget/income", strings.NewReader(`{"month": "2026-02", "income": 1000}`))
		response := httptest.NewRecorder()

		// when
		handler.SetIncome(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)

		var dto AllocationResultDTO
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &dto))
		require.NotNil(t, dto.Improvement)
		assert.Equal(t, "2026-01", dto.Improvement.PreviousMonth)
		assert.Equal(t, 30.0, dto.Improvement.PreviousSavingPercent)
		assert.Equal(t, -10.0, dto.Improvement.DifferencePercentPoints)
		assert.Equal(t, MessageDeclining, dto.Improvement.Message)
	})

	t.Run("should reject a malformed month", func(t *testing.T) {
		handler := NewHandler(&stubBudgetService{})
		request := httptest.NewRequest(http.MethodPost, "/api/budget/income", strings.NewReader(`{"month": "February", "income": 900}`))
		response := httptest.NewRecorder()

		// when
		handler.SetIncome(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("should reject a malformed pay date", func(t *testing.T) {
		handler := NewHandler(&stubBudgetService{})
		request := httptest.NewRequest(http.MethodPost, "/api/budget/income", strings.NewReader(`{"month": "2026-02", "payDate": "03.02.2026", "income": 900}`))
		response := httptest.NewRecorder()

		// when
		handler.SetIncome(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("should map negative income to bad request", func(t *testing.T) {
		handler := NewHandler(&stubBudgetService{err: ErrNegativeIncome})
		request := httptest.NewRequest(http.MethodPost, "/api/budget/income", strings.NewReader(`{"month": "2026-02", "income": -1}`))
		response := httptest.NewRecorder()

		// when
		handler.SetIncome(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func TestHandler_GetSummary(t *testing.T) {
	t.Run("should return the stored budget with its allocations", func(t *testing.T) {
		// given
		payDate := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
		handler := NewHandler(&stubBudgetService{summary: Summary{
			Budget: MonthlyBudget{
				ID:      7,
				Month:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				PayDate: payDate,
				Income:  decimal.NewFromInt(900),
			},
			Allocations: []Allocation{
				{ID: 1, CategoryName: "Rent", Amount: decimal.NewFromInt(800)},
			},
		}})

		request := httptest.NewRequest(http.MethodGet, "/api/budget/summary?month=2026-02", nil)
		response := httptest.NewRecorder()

		// when
		handler.GetSummary(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)

		var dto SummaryDTO
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &dto))
		assert.Equal(t, 7, dto.ID)
		assert.Equal(t, "2026-02", dto.Month)
		require.NotNil(t, dto.PayDate)
		assert.Equal(t, "2026-02-03", *dto.PayDate)
		assert.Equal(t, 900.0, dto.Income)
		require.Len(t, dto.Allocations, 1)
		assert.Equal(t, "Rent", dto.Allocations[0].Category)
	})

	t.Run("should map a missing budget to not found", func(t *testing.T) {
		handler := NewHandler(&stubBudgetService{err: ErrBudgetNotFound})
		request := httptest.NewRequest(http.MethodGet, "/api/budget/summary?month=2026-02", nil)
		response := httptest.NewRecorder()

		// when
		handler.GetSummary(response, request)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("should reject a missing month parameter", func(t *testing.T) {
		handler := NewHandler(&stubBudgetService{})
		request := httptest.NewRequest(http.MethodGet, "/api/budget/summary", nil)
		response := httptest.NewRecorder()

		// when
		handler.GetSummary(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}
