package apikey

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// Header carries the client credential on write operations.
const Header = "X-Api-Key"

var errUnauthorized = errors.New("missing or invalid api key")

// New returns a middleware rejecting requests whose X-Api-Key header does not
// match the configured key. An empty configured key disables the check, which
// is only meant for local development.
func New(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)

				return
			}

			provided := r.Header.Get(Header)

			// Constant-time comparison guards against timing side-channels.
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				slog.WarnContext(r.Context(), "Rejected request with invalid api key",
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeUnauthorized(w, r)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	respond.JSON(r.Context(), w, http.StatusUnauthorized, struct {
		StatusCode int    `json:"status_code"`
		Error      string `json:"error"`
		Message    string `json:"message"`
	}{
		StatusCode: http.StatusUnauthorized,
		Error:      http.StatusText(http.StatusUnauthorized),
		Message:    errUnauthorized.Error(),
	})
}
