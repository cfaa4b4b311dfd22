package handlers

import (
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

// MealHandler serves the caller's recipes.
type MealHandler struct {
	meals  storage.MealStore
	logger *zap.Logger
}

func NewMealHandler(meals storage.MealStore, logger *zap.Logger) *MealHandler {
	return &MealHandler{meals: meals, logger: logger}
}

func (h *MealHandler) Register(mux *http.ServeMux, guard *middleware.Guard) {
	mux.HandleFunc("GET /meals", guard.User(h.list))
	mux.HandleFunc("POST /meals", guard.User(h.create))
	mux.HandleFunc("GET /meals/{id}", guard.User(h.get))
	mux.HandleFunc("DELETE /meals/{id}", guard.User(h.delete))
}

func (h *MealHandler) list(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	meals, err := h.meals.ListOwned(r.Context(), caller.ID)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to fetch meals", err))
		return
	}
	respond.JSON(w, http.StatusOK, meals)
}

func (h *MealHandler) create(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	var req dto.CreateMealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respond.Fail(w, h.logger, apperr.Validationf("name is required"))
		return
	}
	servings := 1
	if req.Servings != nil && *req.Servings > 0 {
		servings = *req.Servings
	}

	meal, err := h.meals.CreateOwned(r.Context(), caller.ID, models.Meal{
		Name:         name,
		Description:  req.Description,
		Instructions: req.Instructions,
		Servings:     servings,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
	})
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to create meal", err))
		return
	}
	respond.JSON(w, http.StatusCreated, meal)
}

func (h *MealHandler) get(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Fail(w, h.logger, apperr.NotFoundf("meal not found"))
		return
	}
	meal, err := h.meals.FindOwnedByID(r.Context(), caller.ID, id)
	if err != nil {
		respond.Fail(w, h.logger, storeError(err, "meal not found", "failed to fetch meal"))
		return
	}
	respond.JSON(w, http.StatusOK, meal)
}

func (h *MealHandler) delete(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Fail(w, h.logger, apperr.NotFoundf("meal not found"))
		return
	}
	if err := h.meals.DeleteOwned(r.Context(), caller.ID, id); err != nil {
		respond.Fail(w, h.logger, storeError(err, "meal not found", "failed to delete meal"))
		return
	}
	respond.Message(w, http.StatusOK, "meal deleted")
}
