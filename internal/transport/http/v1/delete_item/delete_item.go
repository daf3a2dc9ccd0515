package deleteitem

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	DeleteItem(ctx context.Context, itemID int64) error
}

// DeleteItem handles the delete order item request. The response is 204
// whether or not the item existed.
//
// @Summary      Delete an order item
// @Param        id path int true "Order ID"
// @Param        item_id path int true "Item ID"
// @Success      204
// @Router       /api/orders/{id}/items/{item_id} [delete]
func DeleteItem(w http.ResponseWriter, r *http.Request, service service) {
	itemID, err := converters.PathID(r, "item_id")
	if err != nil {
		w.WriteHeader(http.StatusNoContent)

		return
	}

	if err := service.DeleteItem(r.Context(), itemID); err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	slog.InfoContext(r.Context(), "Order item deleted", "item_id", itemID)

	w.WriteHeader(http.StatusNoContent)
}
