package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hongminglow/mealplan-be/internal/auth"
	"github.com/hongminglow/mealplan-be/internal/models"
)

func tokenFor(t *testing.T, tm *auth.TokenManager, isAdmin bool) (string, uuid.UUID) {
	t.Helper()
	user := models.User{ID: uuid.New(), Name: "n", Email: "e@example.com", IsAdmin: isAdmin}
	raw, err := tm.Generate(user)
	require.NoError(t, err)
	return raw, user.ID
}

func TestGuard(t *testing.T) {
	tm := auth.NewTokenManager("secret", "test", time.Hour)
	guard := NewGuard(tm, zap.NewNop())

	var seen auth.Identity
	called := false
	body := func(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
		called = true
		seen = caller
		w.WriteHeader(http.StatusNoContent)
	}

	userToken, userID := tokenFor(t, tm, false)
	adminToken, adminID := tokenFor(t, tm, true)

	cases := []struct {
		name   string
		header string
		admin  bool
		status int
		caller uuid.UUID
	}{
		{"NoHeader", "", false, http.StatusUnauthorized, uuid.Nil},
		{"WrongScheme", "Basic " + userToken, false, http.StatusUnauthorized, uuid.Nil},
		{"BadToken", "Bearer nope", false, http.StatusUnauthorized, uuid.Nil},
		{"User", "Bearer " + userToken, false, http.StatusNoContent, userID},
		{"UserOnAdminRoute", "Bearer " + userToken, true, http.StatusUnauthorized, uuid.Nil},
		{"AdminOnAdminRoute", "bearer " + adminToken, true, http.StatusNoContent, adminID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called = false
			seen = auth.Identity{}
			h := guard.User(body)
			if tc.admin {
				h = guard.Admin(body)
			}
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.status == http.StatusNoContent, called)
			assert.Equal(t, tc.caller, seen.ID)
		})
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("AllowedOrigin", func(t *testing.T) {
		h := CORS([]string{"http://app.test"})(next)
		req := httptest.NewRequest(http.MethodGet, "/meals", nil)
		req.Header.Set("Origin", "http://APP.test")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://APP.test", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("DisallowedOrigin", func(t *testing.T) {
		h := CORS([]string{"http://app.test"})(next)
		req := httptest.NewRequest(http.MethodGet, "/meals", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		h := CORS([]string{"*"})(next)
		req := httptest.NewRequest(http.MethodOptions, "/meals", nil)
		req.Header.Set("Origin", "http://any.test")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meals", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/meals", fields["path"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, 2, fields["bytes"])
}
