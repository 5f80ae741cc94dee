package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

const errInternalViText = "Lỗi hệ thống, vui lòng thử lại sau"

type ResponseError struct {
	Message string `json:"message"`
}

func sendErr(ctx context.Context, w http.ResponseWriter, code int, err error, msg string) {
	slog.ErrorContext(ctx, msg, "error", err.Error(), "http_code", code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(ResponseError{
		Message: msg,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode error response",
			"error", err.Error(),
			"http_code", http.StatusInternalServerError)
	}
}

func sendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		sendErr(ctx, w, http.StatusInternalServerError, err, errInternalViText)
		return
	}
}
