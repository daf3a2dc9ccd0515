package deleteorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	DeleteOrder(ctx context.Context, id int64) error
}

// DeleteOrder handles the delete order request. The response is 204 whether
// or not the order existed; owned items are removed with it.
//
// @Summary      Delete an order
// @Param        id path int true "Order ID"
// @Success      204
// @Router       /api/orders/{id} [delete]
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := converters.PathID(r, "id")
	if err != nil {
		// A malformed id cannot match any order; deletion is idempotent.
		w.WriteHeader(http.StatusNoContent)

		return
	}

	if err := service.DeleteOrder(r.Context(), id); err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	slog.InfoContext(r.Context(), "Order deleted", "order_id", id)

	w.WriteHeader(http.StatusNoContent)
}
