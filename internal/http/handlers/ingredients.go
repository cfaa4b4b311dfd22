package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/mealplan-be/internal/apperr"
	"github.com/hongminglow/mealplan-be/internal/auth"
	"github.com/hongminglow/mealplan-be/internal/http/respond"
	"github.com/hongminglow/mealplan-be/internal/middleware"
	"github.com/hongminglow/mealplan-be/internal/models"
	"github.com/hongminglow/mealplan-be/internal/models/dto"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

// IngredientHandler serves the shared ingredient catalogue. Any signed-in
// user may read or extend it.
type IngredientHandler struct {
	ingredients storage.IngredientStore
	logger      *zap.Logger
}

func NewIngredientHandler(ingredients storage.IngredientStore, logger *zap.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, logger: logger}
}

func (h *IngredientHandler) Register(mux *http.ServeMux, guard *middleware.Guard) {
	mux.HandleFunc("GET /ingredients", guard.User(h.list))
	mux.HandleFunc("POST /ingredients", guard.User(h.create))
}

func (h *IngredientHandler) list(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	ingredients, err := h.ingredients.List(r.Context())
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to fetch ingredients", err))
		return
	}
	respond.JSON(w, http.StatusOK, ingredients)
}

func (h *IngredientHandler) create(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	var req dto.CreateIngredientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	name, unit := strings.TrimSpace(req.Name), strings.TrimSpace(req.Unit)
	if name == "" || unit == "" {
		respond.Fail(w, h.logger, apperr.Validationf("name and unit are required"))
		return
	}

	created, err := h.ingredients.Create(r.Context(), models.Ingredient{Name: name, Unit: unit, Category: req.Category})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Fail(w, h.logger, apperr.Wrap(apperr.Duplicate, "an ingredient with this name already exists", err))
			return
		}
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to create ingredient", err))
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
