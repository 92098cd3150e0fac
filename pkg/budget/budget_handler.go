package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/budgetace/budgetace/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type SetIncomeDTO struct {
	Month   string      `json:"month"`
	PayDate string      `json:"payDate,omitempty"`
	Income  json.Number `json:"income"`
}

type AllocationLineDTO struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

type ImprovementDTO struct {
	PreviousMonth           string  `json:"previousMonth"`
	PreviousSavingPercent   float64 `json:"previousSavingPercent"`
	CurrentMonth            string  `json:"currentMonth"`
	CurrentSavingPercent    float64 `json:"currentSavingPercent"`
	DifferencePercentPoints float64 `json:"differencePercentPoints"`
	Message                 string  `json:"message"`
}

type AllocationResultDTO struct {
	Month          string              `json:"month"`
	PayDate        *string             `json:"payDate,omitempty"`
	Income         float64             `json:"income"`
	AllocatedTotal float64             `json:"allocatedTotal"`
	Remaining      float64             `json:"remaining"`
	Allocations    []AllocationLineDTO `json:"allocations"`
	Improvement    *ImprovementDTO     `json:"improvement,omitempty"`
}

type AllocationDTO struct {
	ID       int     `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type SummaryDTO struct {
	ID          int             `json:"id"`
	Month       string          `json:"month"`
	PayDate     *string         `json:"payDate,omitempty"`
	Income      float64         `json:"income"`
	Allocations []AllocationDTO `json:"allocations"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) SetIncome(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting monthly income")
	w.Header().Set("Content-Type", "application/json")

	var dto SetIncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	month, err := ParseMonth(dto.Month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payDate time.Time
	if dto.PayDate != "" {
		payDate, err = time.ParseInLocation(dateLayout, dto.PayDate, time.UTC)
		if err != nil {
			http.Error(w, "invalid payDate, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	income := decimal.Zero
	if dto.Income != "" {
		income, err = decimal.NewFromString(dto.Income.String())
		if err != nil {
			http.Error(w, "invalid income", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.SetIncome(r.Context(), month, payDate, income)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	month, err := ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.service.GetSummary(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrBudgetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNegativeIncome), errors.Is(err, ErrInvalidMonth):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func resultToDTO(result AllocationResult) AllocationResultDTO {
	lines := make([]AllocationLineDTO, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, AllocationLineDTO{
			Category: line.CategoryName,
			Amount:   line.Amount.InexactFloat64(),
			Percent:  line.Percent.InexactFloat64(),
		})
	}

	var improvement *ImprovementDTO
	if result.Improvement != nil {
		improvement = &ImprovementDTO{
			PreviousMonth:           FormatMonth(result.Improvement.PreviousMonth),
			PreviousSavingPercent:   result.Improvement.PreviousSavingPercent.InexactFloat64(),
			CurrentMonth:            FormatMonth(result.Improvement.CurrentMonth),
			CurrentSavingPercent:    result.Improvement.CurrentSavingPercent.InexactFloat64(),
			DifferencePercentPoints: result.Improvement.Difference.InexactFloat64(),
			Message:                 result.Improvement.Message,
		}
	}

	return AllocationResultDTO{
		Month:          FormatMonth(result.Budget.Month),
		PayDate:        formatPayDate(result.Budget.PayDate),
		Income:         result.Budget.Income.InexactFloat64(),
		AllocatedTotal: result.AllocatedTotal.InexactFloat64(),
		Remaining:      result.Remaining.InexactFloat64(),
		Allocations:    lines,
		Improvement:    improvement,
	}
}

func summaryToDTO(summary Summary) SummaryDTO {
	allocations := make([]AllocationDTO, 0, len(summary.Allocations))
	for _, allocation := range summary.Allocations {
		allocations = append(allocations, AllocationDTO{
			ID:       allocation.ID,
			Category: allocation.CategoryName,
			Amount:   allocation.Amount.InexactFloat64(),
		})
	}
	return SummaryDTO{
		ID:          summary.Budget.ID,
		Month:       FormatMonth(summary.Budget.Month),
		PayDate:     formatPayDate(summary.Budget.PayDate),
		Income:      summary.Budget.Income.InexactFloat64(),
		Allocations: allocations,
	}
}

func formatPayDate(payDate time.Time) *string {
	if payDate.IsZero() {
		return nil
	}
	formatted := payDate.Format(dateLayout)
	return &formatted
}
