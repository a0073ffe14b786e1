// Package respond writes JSON responses and error envelopes.
package respond

import (
	"encoding/json"
	"net/http"

	"really-simple-feedback/internal/apperrors"
	"really-simple-feedback/internal/logger"
)

type errorBody struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Data    errorData `json:"data"`
}

type errorData struct {
	Status int `json:"status"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Get().Warnw("Failed to encode response", "error", err)
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error translates err into the client error envelope. Internal errors are
// logged with their cause and reported without it.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Get().Errorw("Request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
	}
	JSON(w, appErr.Status, errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    errorData{Status: appErr.Status},
	})
}
