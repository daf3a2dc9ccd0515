package converters

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orderstore/order-svc/internal/service/errs"
)

// PathID extracts a numeric URL parameter. A non-numeric value behaves like a
// missing resource, matching the integer route converters of the API schema.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errs.ErrNotFound
	}

	return id, nil
}
