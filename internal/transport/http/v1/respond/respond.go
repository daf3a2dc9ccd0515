package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/errs"
	"github.com/orderstore/order-svc/internal/service/models/order"
)

// errorResponse is the JSON body every failure path returns.
type errorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// JSON writes v as an application/json response with the given status.
func JSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Error writing response", "error", err)
	}
}

// Error converts a service error into an HTTP error response. Validation
// errors become 400, missing entities 404, invalid transitions 409, media
// type mismatches 415 and unreachable persistence 503; everything else is an
// internal error.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errs.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrAlreadyCancelled):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUnsupportedMedia):
		status = http.StatusUnsupportedMediaType
	case errs.IsConnection(err):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusServiceUnavailable || status == http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Request failed", "status", status, "error", err)
	}

	JSON(ctx, w, status, errorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    err.Error(),
	})
}

// RequireJSON checks that the request carries an application/json body.
func RequireJSON(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return errs.ErrUnsupportedMedia
	}

	return nil
}
