package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/mealplan-be/internal/auth"
	"github.com/hongminglow/mealplan-be/internal/config"
	"github.com/hongminglow/mealplan-be/internal/http/handlers"
	"github.com/hongminglow/mealplan-be/internal/middleware"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// Routes builds the full handler tree: every resource route behind the
// authorization guard, wrapped in request logging and CORS.
func Routes(cfg config.Config, store storage.Store, db handlers.Pinger, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	guard := middleware.NewGuard(tokens, logger)

	handlers.NewHealthHandler(time.Now(), db).Register(mux)
	handlers.NewAuthHandler(store.Users(), tokens, logger).Register(mux, guard)
	handlers.NewMealHandler(store.Meals(), logger).Register(mux, guard)
	handlers.NewPlannedMealHandler(store.PlannedMeals(), store.Meals(), logger).Register(mux, guard)
	handlers.NewIngredientHandler(store.Ingredients(), logger).Register(mux, guard)
	handlers.NewInventoryHandler(store.Inventory(), store.Ingredients(), logger).Register(mux, guard)
	// No generator is wired, so POST /shopping-lists/generate answers 501.
	handlers.NewShoppingListHandler(store.ShoppingLists(), nil, logger).Register(mux, guard)
	handlers.NewAdminHandler(store.Users(), logger).Register(mux, guard)

	return middleware.CORS(cfg.CORSOrigins)(middleware.Logging(logger)(mux))
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, db handlers.Pinger, logger *zap.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Routes(cfg, store, db, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
