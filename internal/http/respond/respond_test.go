package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hongminglow/mealplan-be/internal/apperr"
)

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["message"]
}

func TestFailClassified(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, zap.NewNop(), apperr.NotFoundf("meal not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "meal not found", decodeMessage(t, rec))
}

func TestFailHidesInternalDetail(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	rec := httptest.NewRecorder()
	Fail(rec, logger, errors.New(`pq: relation "meals" does not exist`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, genericMessage, decodeMessage(t, rec))
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "relation")
}

func TestFailInternalKeepsSafeMessage(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	rec := httptest.NewRecorder()
	Fail(rec, zap.New(core), apperr.Wrap(apperr.Internal, "failed to create meal", errors.New("conn reset")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to create meal", decodeMessage(t, rec))
	assert.Equal(t, 1, logs.Len())
}
