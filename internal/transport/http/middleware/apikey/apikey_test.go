package apikey

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, configured, provided string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("POST", "/api/orders", nil)
	if provided != "" {
		r.Header.Set(Header, provided)
	}

	w := httptest.NewRecorder()
	New(configured)(next).ServeHTTP(w, r)

	return w
}

func TestMatchingKeyPasses(t *testing.T) {
	w := run(t, "secret", "secret")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMissingKeyRejected(t *testing.T) {
	w := run(t, "secret", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "api key")
}

func TestWrongKeyRejected(t *testing.T) {
	w := run(t, "secret", "not-the-secret")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEmptyConfiguredKeyDisablesCheck(t *testing.T) {
	w := run(t, "", "")
	require.Equal(t, http.StatusOK, w.Code)
}
