package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		Unauthorized:     http.StatusUnauthorized,
		Validation:       http.StatusBadRequest,
		InvalidOperation: http.StatusBadRequest,
		Duplicate:        http.StatusBadRequest,
		NotFound:         http.StatusNotFound,
		Internal:         http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	wrapped := fmt.Errorf("handler: %w", Wrap(Duplicate, "email taken", cause))

	assert.Equal(t, Duplicate, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, Internal, KindOf(cause))
	assert.Equal(t, NotFound, KindOf(NotFoundf("meal not found")))
}
