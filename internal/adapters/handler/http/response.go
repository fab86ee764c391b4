package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

// envelope is the body of every JSON response.
type envelope struct {
	Success bool             `json:"success"`
	Data    any              `json:"data,omitempty"`
	Meta    *domain.PageMeta `json:"meta,omitempty"`
	Message string           `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode JSON response", "module", "http", "error", err)
	}
}

func writeData(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	writeJSON(w, logger, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, logger *slog.Logger, status int, data any, message string) {
	writeJSON(w, logger, status, envelope{Success: true, Data: data, Message: message})
}

func writePage[T any](w http.ResponseWriter, logger *slog.Logger, page *domain.Paged[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	writeJSON(w, logger, http.StatusOK, envelope{Success: true, Data: items, Meta: &page.Meta})
}

var kindStatus = map[domain.ErrorKind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusBadRequest,
	domain.KindInvalidState: http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
}

func statusFor(err error) int {
	if status, ok := kindStatus[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError maps err to its status. Internal failures are logged and the
// caller only sees a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		message = domain.ErrInternal.Message
	}
	writeJSON(w, logger, status, envelope{Success: false, Message: message})
}
