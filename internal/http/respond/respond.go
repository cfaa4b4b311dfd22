package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/mealplan-be/internal/apperr"
	"github.com/hongminglow/mealplan-be/internal/models/dto"
)

const genericMessage = "internal server error"

// JSON writes payload as the response body.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("respond: encode payload failed", zap.Error(err))
	}
}

// Message writes a {"message": ...} body. Errors and confirmations share it.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, dto.MessageResponse{Message: message})
}

// Error writes an error response with the shared message body.
func Error(w http.ResponseWriter, status int, message string) {
	Message(w, status, message)
}

// Fail maps err onto a status and message. Internal failures are logged with
// their cause and answered with a generic message only.
func Fail(w http.ResponseWriter, logger *zap.Logger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.Error("unhandled request error", zap.Error(err))
		Error(w, http.StatusInternalServerError, genericMessage)
		return
	}
	if appErr.Kind == apperr.Internal {
		logger.Error(appErr.Message, zap.Error(appErr.Err))
		msg := appErr.Message
		if msg == "" {
			msg = genericMessage
		}
		Error(w, http.StatusInternalServerError, msg)
		return
	}
	Error(w, appErr.Kind.Status(), appErr.Message)
}
