package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/mealplan-be/internal/apperr"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid JSON payload", err)
	}
	return nil
}

// pathID parses a UUID path segment. A malformed id cannot match any row, so
// callers treat !ok as a lookup miss.
func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	return id, err == nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

// storeError classifies a repository failure for the response.
func storeError(err error, notFoundMessage, internalMessage string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, notFoundMessage, err)
	}
	return apperr.Wrap(apperr.Internal, internalMessage, err)
}
