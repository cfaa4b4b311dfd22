package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hongminglow/mealplan-be/internal/apperr"
	"github.com/hongminglow/mealplan-be/internal/auth"
	"github.com/hongminglow/mealplan-be/internal/http/respond"
	"github.com/hongminglow/mealplan-be/internal/middleware"
	"github.com/hongminglow/mealplan-be/internal/models"
	"github.com/hongminglow/mealplan-be/internal/models/dto"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

const mealNotFound = "meal not found"

// PlannedMealHandler serves the caller's meal calendar.
type PlannedMealHandler struct {
	planned storage.PlannedMealStore
	meals   storage.MealStore
	logger  *zap.Logger
}

func NewPlannedMealHandler(planned storage.PlannedMealStore, meals storage.MealStore, logger *zap.Logger) *PlannedMealHandler {
	return &PlannedMealHandler{planned: planned, meals: meals, logger: logger}
}

func (h *PlannedMealHandler) Register(mux *http.ServeMux, guard *middleware.Guard) {
	mux.HandleFunc("GET /planned-meals", guard.User(h.list))
	mux.HandleFunc("POST /planned-meals", guard.User(h.create))
	mux.HandleFunc("DELETE /planned-meals/{id}", guard.User(h.delete))
}

func (h *PlannedMealHandler) list(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	planned, err := h.planned.ListOwned(r.Context(), caller.ID)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to fetch planned meals", err))
		return
	}
	respond.JSON(w, http.StatusOK, planned)
}

func (h *PlannedMealHandler) create(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	var req dto.CreatePlannedMealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	if strings.TrimSpace(req.MealID) == "" || strings.TrimSpace(req.PlannedDate) == "" || strings.TrimSpace(req.MealType) == "" {
		respond.Fail(w, h.logger, apperr.Validationf("meal, date and type are required"))
		return
	}
	plannedDate, err := parseDate(req.PlannedDate)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Validation, "plannedDate must be a date (YYYY-MM-DD) or RFC 3339 timestamp", err))
		return
	}
	mealType := models.MealType(strings.ToLower(strings.TrimSpace(req.MealType)))
	if !mealType.Valid() {
		respond.Fail(w, h.logger, apperr.Validationf("mealType must be breakfast, lunch or dinner"))
		return
	}

	// Another user's meal and a malformed id are reported the same way.
	mealID, err := uuid.Parse(strings.TrimSpace(req.MealID))
	if err != nil {
		respond.Fail(w, h.logger, apperr.NotFoundf(mealNotFound))
		return
	}
	meal, err := h.meals.FindOwnedByID(r.Context(), caller.ID, mealID)
	if err != nil {
		respond.Fail(w, h.logger, storeError(err, mealNotFound, "failed to plan meal"))
		return
	}

	servings := meal.Servings
	if req.Servings != nil && *req.Servings > 0 {
		servings = *req.Servings
	}

	created, err := h.planned.CreateOwned(r.Context(), caller.ID, models.PlannedMeal{
		MealID:      meal.ID,
		PlannedDate: plannedDate,
		MealType:    mealType,
		Servings:    servings,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Fail(w, h.logger, apperr.Wrap(apperr.NotFound, mealNotFound, err))
			return
		}
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to plan meal", err))
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *PlannedMealHandler) delete(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Fail(w, h.logger, apperr.NotFoundf("planned meal not found"))
		return
	}
	if err := h.planned.DeleteOwned(r.Context(), caller.ID, id); err != nil {
		respond.Fail(w, h.logger, storeError(err, "planned meal not found", "failed to delete planned meal"))
		return
	}
	respond.Message(w, http.StatusOK, "planned meal deleted")
}
