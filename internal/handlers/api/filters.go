package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobhunter/internal/db"
	"jobhunter/internal/middleware"
	"jobhunter/internal/models"
	"jobhunter/internal/validation"
)

// FilterHandler serves saved search filters.
type FilterHandler struct {
	db *db.DB
}

// NewFilterHandler creates a filter handler.
func NewFilterHandler(database *db.DB) *FilterHandler {
	return &FilterHandler{db: database}
}

// List returns the user's saved filters.
func (h *FilterHandler) List(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	filters, err := h.db.GetSearchFilters(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch filters")
	}

	return jsonSuccess(c, filters)
}

// Create saves a new search filter. Marking it default clears the flag
// on the user's other filters.
func (h *FilterHandler) Create(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Name              string   `json:"name"`
		Keywords          []string `json:"keywords"`
		Locations         []string `json:"locations"`
		Sources           []string `json:"sources"`
		MinRelevanceScore int      `json:"min_relevance_score"`
		MaxPostingAge     int      `json:"max_posting_age"`
		IsDefault         bool     `json:"is_default"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	filter := &models.SearchFilter{
		UserID:            user.ID,
		Name:              body.Name,
		Keywords:          validation.NormalizeKeywords(body.Keywords),
		Locations:         body.Locations,
		Sources:           body.Sources,
		MinRelevanceScore: body.MinRelevanceScore,
		MaxPostingAge:     body.MaxPostingAge,
		IsDefault:         body.IsDefault,
	}

	if valid, msg := validation.ValidateSearchFilter(filter); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	if err := h.db.SaveSearchFilter(c.Context(), filter); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save filter")
	}

	return jsonSuccess(c, filter)
}

// Delete removes a filter owned by the user.
func (h *FilterHandler) Delete(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid filter id")
	}

	if err := h.db.DeleteSearchFilter(c.Context(), id, user.ID); err != nil {
		if errors.Is(err, db.ErrFilterNotFound) {
			return jsonError(c, fiber.StatusNotFound, "filter not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete filter")
	}

	return jsonSuccess(c, fiber.Map{"message": "filter deleted"})
}
