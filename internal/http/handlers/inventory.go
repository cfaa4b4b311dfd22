package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

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

const unknownIngredient = "ingredientId must reference an existing ingredient"

// InventoryHandler serves the caller's pantry.
type InventoryHandler struct {
	inventory   storage.InventoryStore
	ingredients storage.IngredientStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewInventoryHandler(inventory storage.InventoryStore, ingredients storage.IngredientStore, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, ingredients: ingredients, logger: logger, now: time.Now}
}

func (h *InventoryHandler) Register(mux *http.ServeMux, guard *middleware.Guard) {
	mux.HandleFunc("GET /inventory", guard.User(h.list))
	mux.HandleFunc("GET /inventory/summary", guard.User(h.summary))
	mux.HandleFunc("POST /inventory", guard.User(h.create))
	mux.HandleFunc("DELETE /inventory/{id}", guard.User(h.delete))
}

func (h *InventoryHandler) fetch(r *http.Request, owner uuid.UUID) ([]models.InventoryItem, error) {
	items, err := h.inventory.ListOwned(r.Context(), owner)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch inventory", err)
	}
	models.SortInventory(items)
	return items, nil
}

func (h *InventoryHandler) list(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	items, err := h.fetch(r, caller.ID)
	if err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	now := h.now()
	for i := range items {
		if days, ok := models.DaysUntilExpiration(items[i], now); ok {
			items[i].DaysLeft = &days
		}
	}
	respond.JSON(w, http.StatusOK, items)
}

// summary counts the expiring-soon and reserved views over a single fetch.
func (h *InventoryHandler) summary(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	items, err := h.fetch(r, caller.ID)
	if err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, models.Summarize(items, h.now()))
}

func (h *InventoryHandler) create(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	var req dto.CreateInventoryItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	ingredientID, err := uuid.Parse(strings.TrimSpace(req.IngredientID))
	if err != nil {
		respond.Fail(w, h.logger, apperr.Validationf(unknownIngredient))
		return
	}
	if req.Quantity <= 0 {
		respond.Fail(w, h.logger, apperr.Validationf("quantity must be greater than zero"))
		return
	}
	if _, err := h.ingredients.FindByID(r.Context(), ingredientID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Fail(w, h.logger, apperr.Wrap(apperr.Validation, unknownIngredient, err))
			return
		}
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to add inventory item", err))
		return
	}
	item := models.InventoryItem{
		IngredientID: ingredientID,
		Quantity:     req.Quantity,
		Location:     req.Location,
		Notes:        req.Notes,
		IsReserved:   req.IsReserved,
	}
	if req.ExpirationDate != nil && strings.TrimSpace(*req.ExpirationDate) != "" {
		exp, err := parseDate(*req.ExpirationDate)
		if err != nil {
			respond.Fail(w, h.logger, apperr.Wrap(apperr.Validation, "expirationDate must be a date (YYYY-MM-DD) or RFC 3339 timestamp", err))
			return
		}
		item.ExpirationDate = &exp
	}

	created, err := h.inventory.CreateOwned(r.Context(), caller.ID, item)
	if err != nil {
		// The ingredient can still vanish between the lookup and the insert.
		if errors.Is(err, storage.ErrInvalidReference) {
			respond.Fail(w, h.logger, apperr.Wrap(apperr.Validation, unknownIngredient, err))
			return
		}
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to add inventory item", err))
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *InventoryHandler) delete(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Fail(w, h.logger, apperr.NotFoundf("inventory item not found"))
		return
	}
	if err := h.inventory.DeleteOwned(r.Context(), caller.ID, id); err != nil {
		respond.Fail(w, h.logger, storeError(err, "inventory item not found", "failed to delete inventory item"))
		return
	}
	respond.Message(w, http.StatusOK, "inventory item deleted")
}
