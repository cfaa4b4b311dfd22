package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/mealplan-be/internal/apperr"
	"github.com/hongminglow/mealplan-be/internal/auth"
	"github.com/hongminglow/mealplan-be/internal/http/respond"
)

// GuardedFunc is a handler body that runs only after the caller is resolved.
type GuardedFunc func(w http.ResponseWriter, r *http.Request, caller auth.Identity)

// TokenParser resolves a raw session token.
type TokenParser interface {
	Parse(raw string) (auth.Identity, error)
}

// GuardOptions parameterizes a single protected route.
type GuardOptions struct {
	RequireAdmin bool
}

// Guard rejects unauthenticated and, where required, non-admin callers
// before any handler body runs.
type Guard struct {
	tokens TokenParser
	logger *zap.Logger
}

func NewGuard(tokens TokenParser, logger *zap.Logger) *Guard {
	return &Guard{tokens: tokens, logger: logger}
}

// Protect wraps next with the session and role checks in opts.
func (g *Guard) Protect(opts GuardOptions, next GuardedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := g.resolve(r)
		if err != nil {
			g.logger.Debug("rejected session", zap.String("path", r.URL.Path), zap.Error(err))
			respond.Fail(w, g.logger, apperr.Wrap(apperr.Unauthorized, "unauthorized", err))
			return
		}
		if opts.RequireAdmin && !caller.IsAdmin {
			respond.Fail(w, g.logger, apperr.Unauthorizedf("unauthorized"))
			return
		}
		next(w, r, caller)
	}
}

// User requires any valid session.
func (g *Guard) User(next GuardedFunc) http.HandlerFunc {
	return g.Protect(GuardOptions{}, next)
}

// Admin requires a session with the administrator flag.
func (g *Guard) Admin(next GuardedFunc) http.HandlerFunc {
	return g.Protect(GuardOptions{RequireAdmin: true}, next)
}

func (g *Guard) resolve(r *http.Request) (auth.Identity, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return g.tokens.Parse(strings.TrimSpace(token))
}
