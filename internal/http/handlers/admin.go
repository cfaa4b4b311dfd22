package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/mealplan-be/internal/apperr"
	"github.com/hongminglow/mealplan-be/internal/auth"
	"github.com/hongminglow/mealplan-be/internal/http/respond"
	"github.com/hongminglow/mealplan-be/internal/middleware"
	"github.com/hongminglow/mealplan-be/internal/models/dto"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

const userNotFound = "user not found"

// AdminHandler manages accounts. Every route requires an admin session.
type AdminHandler struct {
	users  storage.UserStore
	logger *zap.Logger
}

func NewAdminHandler(users storage.UserStore, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, logger: logger}
}

func (h *AdminHandler) Register(mux *http.ServeMux, guard *middleware.Guard) {
	mux.HandleFunc("GET /admin/users", guard.Admin(h.listUsers))
	mux.HandleFunc("PATCH /admin/users/{id}", guard.Admin(h.setAdminFlag))
	mux.HandleFunc("DELETE /admin/users/{id}", guard.Admin(h.deleteUser))
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to fetch users", err))
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

func (h *AdminHandler) setAdminFlag(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Fail(w, h.logger, apperr.NotFoundf(userNotFound))
		return
	}
	var req dto.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	if req.IsAdmin == nil {
		respond.Fail(w, h.logger, apperr.Validationf("isAdmin is required"))
		return
	}
	if id == caller.ID && !*req.IsAdmin {
		respond.Fail(w, h.logger, apperr.New(apperr.InvalidOperation, "you cannot revoke your own admin rights"))
		return
	}

	user, err := h.users.SetAdmin(r.Context(), id, *req.IsAdmin)
	if err != nil {
		respond.Fail(w, h.logger, storeError(err, userNotFound, "failed to update user"))
		return
	}
	h.logger.Info("admin flag changed",
		zap.String("actor", caller.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_admin", user.IsAdmin))
	respond.JSON(w, http.StatusOK, dto.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, IsAdmin: user.IsAdmin})
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Fail(w, h.logger, apperr.NotFoundf(userNotFound))
		return
	}
	if id == caller.ID {
		respond.Fail(w, h.logger, apperr.New(apperr.InvalidOperation, "you cannot delete your own account"))
		return
	}
	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		respond.Fail(w, h.logger, storeError(err, userNotFound, "failed to delete user"))
		return
	}
	h.logger.Info("user deleted", zap.String("actor", caller.ID.String()), zap.String("user_id", id.String()))
	respond.Message(w, http.StatusOK, "user deleted")
}
