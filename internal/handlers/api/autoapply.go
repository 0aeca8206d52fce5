package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobhunter/internal/autoapply"
	"jobhunter/internal/db"
	"jobhunter/internal/middleware"
)

// AutoApplyHandler exposes the auto-apply engine.
type AutoApplyHandler struct {
	db        *db.DB
	autoapply *autoapply.Engine
}

// NewAutoApplyHandler creates an auto-apply handler.
func NewAutoApplyHandler(database *db.DB, aa *autoapply.Engine) *AutoApplyHandler {
	return &AutoApplyHandler{db: database, autoapply: aa}
}

// Run executes one auto-apply pass for the user.
func (h *AutoApplyHandler) Run(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.autoapply.ProcessAutoApply(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "auto-apply run failed")
	}

	return jsonSuccess(c, result)
}

// Candidates previews the jobs the engine is currently considering.
func (h *AutoApplyHandler) Candidates(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	candidates, err := h.autoapply.GetCandidates(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch candidates")
	}

	return jsonSuccess(c, candidates)
}

// Patterns returns the user's active application patterns.
func (h *AutoApplyHandler) Patterns(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	patterns, err := h.db.GetApplicationPatterns(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch patterns")
	}

	return jsonSuccess(c, patterns)
}

// DeactivatePattern retires a pattern from matching. Patterns are never
// deleted, so the learning history stays intact.
func (h *AutoApplyHandler) DeactivatePattern(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid pattern id")
	}

	// Ownership check before mutating.
	patterns, err := h.db.GetApplicationPatterns(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch patterns")
	}
	owned := false
	for _, p := range patterns {
		if p.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		return jsonError(c, fiber.StatusNotFound, "pattern not found")
	}

	if err := h.db.DeactivatePattern(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrPatternNotFound) {
			return jsonError(c, fiber.StatusNotFound, "pattern not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to deactivate pattern")
	}

	return jsonSuccess(c, fiber.Map{"message": "pattern deactivated"})
}
