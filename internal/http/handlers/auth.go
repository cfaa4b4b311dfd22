package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hongminglow/mealplan-be/internal/apperr"
	"github.com/hongminglow/mealplan-be/internal/auth"
	"github.com/hongminglow/mealplan-be/internal/http/respond"
	"github.com/hongminglow/mealplan-be/internal/middleware"
	"github.com/hongminglow/mealplan-be/internal/models"
	"github.com/hongminglow/mealplan-be/internal/models/dto"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

const (
	minPasswordLength = 6
	// bcrypt only accepts passwords up to 72 bytes.
	maxPasswordBytes = 72
)

// AuthHandler owns registration, login and session lookup.
type AuthHandler struct {
	users  storage.UserStore
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, tokens *auth.TokenManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux, guard *middleware.Guard) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("GET /auth/session", guard.User(h.handleSession))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if err := validateRegistration(name, email, req.Password); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}

	// The unique index still catches a concurrent registration that slips
	// past this check.
	exists, err := h.users.EmailExists(r.Context(), email)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to create account", err))
		return
	}
	if exists {
		respond.Fail(w, h.logger, apperr.New(apperr.Duplicate, "an account with this email already exists"))
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to create account", err))
		return
	}

	created, err := h.users.CreateUser(r.Context(), models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Fail(w, h.logger, apperr.Wrap(apperr.Duplicate, "an account with this email already exists", err))
			return
		}
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to create account", err))
		return
	}

	h.logger.Info("user registered", zap.String("user_id", created.ID.String()))
	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{ID: created.ID, Name: created.Name, Email: created.Email})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, h.logger, err)
		return
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		respond.Fail(w, h.logger, apperr.Validationf("email and password are required"))
		return
	}

	invalid := apperr.Unauthorizedf("invalid credentials")
	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Fail(w, h.logger, invalid)
			return
		}
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to sign in", err))
		return
	}
	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to sign in", err))
		return
	}
	if !ok {
		respond.Fail(w, h.logger, invalid)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respond.Fail(w, h.logger, apperr.Wrap(apperr.Internal, "failed to generate token", err))
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, IsAdmin: user.IsAdmin},
	})
}

func (h *AuthHandler) handleSession(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	respond.JSON(w, http.StatusOK, caller)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return apperr.Validationf("name, email, and password are required")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperr.Validationf("password must be at least 6 characters")
	}
	if len(password) > maxPasswordBytes {
		return apperr.Validationf("password must be at most 72 bytes")
	}
	return nil
}
