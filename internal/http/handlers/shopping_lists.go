package handlers

import (
	"context"
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

// ShoppingListGenerator derives a shopping list for owner from their planned
// meals and current inventory, and persists it.
type ShoppingListGenerator interface {
	Generate(ctx context.Context, owner uuid.UUID) (models.ShoppingList, error)
}

// ShoppingListHandler serves the caller's shopping lists.
type ShoppingListHandler struct {
	lists     storage.ShoppingListStore
	generator ShoppingListGenerator
	logger    *zap.Logger
}

// NewShoppingListHandler constructs the handler. A nil generator makes the
// generate endpoint answer 501.
func NewShoppingListHandler(lists storage.ShoppingListStore, generator ShoppingListGenerator, logger *zap.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{lists: lists, generator: generator, logger: logger}
}

func (h *ShoppingListHandler) Register(mux *http.ServeMux, guard *middleware.Guard) {
	mux.HandleFunc("GET /shopping-lists", guard.User(h.list))
	mux.HandleFunc("POST /shopping-lists", guard.User(h.create))
	mux.HandleFunc("POST /shopping-lists/generate", guard.User(h.generate))
	mux.HandleFunc("DELETE /shopping-lists/{id}", guard.User(h.delete))
	mux.HandleFunc("PATCH /shopping-lists/{id}/items/{itemId}", guard.User(h.setPurchased))
}

func withCompletion(list models.ShoppingList) models.ShoppingList {
	list.CompletionPercent = list.Completion()
	return list
}

func (h *ShoppingListHandler) list(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	lists, err := h.lists.ListOwned(r.Context(), caller.ID)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to fetch shopping lists", err))
		return
	}
	for i := range lists {
		lists[i] = withCompletion(lists[i])
	}
	respond.JSON(w, http.StatusOK, lists)
}

func (h *ShoppingListHandler) create(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	var req dto.CreateShoppingListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respond.Fail(w, h.logger, apperr.Validationf("name is required"))
		return
	}

	list := models.ShoppingList{Name: name}
	for _, in := range req.Items {
		ingredientID, err := uuid.Parse(strings.TrimSpace(in.IngredientID))
		if err != nil {
			respond.Fail(w, h.logger, apperr.Validationf("every item needs an existing ingredientId"))
			return
		}
		if in.Quantity <= 0 {
			respond.Fail(w, h.logger, apperr.Validationf("item quantity must be greater than zero"))
			return
		}
		list.Items = append(list.Items, models.ShoppingListItem{IngredientID: ingredientID, Quantity: in.Quantity, Notes: in.Notes})
	}

	created, err := h.lists.CreateOwned(r.Context(), caller.ID, list)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidReference) {
			respond.Fail(w, h.logger, apperr.Wrap(apperr.Validation, "every item needs an existing ingredientId", err))
			return
		}
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to create shopping list", err))
		return
	}
	respond.JSON(w, http.StatusCreated, withCompletion(created))
}

func (h *ShoppingListHandler) generate(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	if h.generator == nil {
		respond.Error(w, http.StatusNotImplemented, "shopping list generation is not available")
		return
	}
	list, err := h.generator.Generate(r.Context(), caller.ID)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to generate shopping list", err))
		return
	}
	respond.JSON(w, http.StatusCreated, withCompletion(list))
}

func (h *ShoppingListHandler) delete(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Fail(w, h.logger, apperr.NotFoundf("shopping list not found"))
		return
	}
	if err := h.lists.DeleteOwned(r.Context(), caller.ID, id); err != nil {
		respond.Fail(w, h.logger, storeError(err, "shopping list not found", "failed to delete shopping list"))
		return
	}
	respond.Message(w, http.StatusOK, "shopping list deleted")
}

// setPurchased writes the requested state rather than flipping it, so a
// repeated request leaves the item unchanged.
func (h *ShoppingListHandler) setPurchased(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	listID, ok := pathID(r, "id")
	itemID, itemOK := pathID(r, "itemId")
	if !ok || !itemOK {
		respond.Fail(w, h.logger, apperr.NotFoundf("shopping list item not found"))
		return
	}
	var req dto.UpdateShoppingItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	if req.IsPurchased == nil {
		respond.Fail(w, h.logger, apperr.Validationf("isPurchased is required"))
		return
	}

	item, err := h.lists.SetItemPurchased(r.Context(), caller.ID, listID, itemID, *req.IsPurchased)
	if err != nil {
		respond.Fail(w, h.logger, storeError(err, "shopping list item not found", "failed to update shopping list item"))
		return
	}
	respond.JSON(w, http.StatusOK, item)
}
