package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/budgetace/budgetace/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	DefaultAmount float64 `json:"defaultAmount"`
}

// EntryDTO carries amounts as json.Number so values are handed to the decimal
// parser verbatim, without a float64 round trip.
type EntryDTO struct {
	Name          string      `json:"name"`
	DefaultAmount json.Number `json:"defaultAmount"`
}

type UpsertRequestDTO struct {
	Categories []EntryDTO `json:"categories"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesToDTO(categories)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	log.Debug("Seeding default categories")
	w.Header().Set("Content-Type", "application/json")

	categories, err := h.service.SeedDefaults(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesToDTO(categories)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpsertDefaults(w http.ResponseWriter, r *http.Request) {
	log.Debug("Upserting category defaults")
	w.Header().Set("Content-Type", "application/json")

	var request UpsertRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries := make([]Entry, 0, len(request.Categories))
	for _, dto := range request.Categories {
		amount := decimal.Zero
		if dto.DefaultAmount != "" {
			parsed, err := decimal.NewFromString(dto.DefaultAmount.String())
			if err != nil {
				http.Error(w, "invalid defaultAmount for category "+dto.Name, http.StatusBadRequest)
				return
			}
			amount = parsed
		}
		entries = append(entries, Entry{Name: dto.Name, DefaultAmount: amount})
	}

	categories, err := h.service.UpsertDefaults(r.Context(), entries)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesToDTO(categories)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, user.ErrNoUser) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func categoriesToDTO(categories []Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{
			ID:            c.ID,
			Name:          c.Name,
			DefaultAmount: c.DefaultAmount.InexactFloat64(),
		})
	}
	return dtos
}
