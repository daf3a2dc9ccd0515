package cancelorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/models/order"
	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	CancelOrder(ctx context.Context, id int64) (order.Order, error)
}

// CancelOrder handles the cancel transition request. Cancelling an already
// cancelled order is a conflict.
//
// @Summary      Cancel an order
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} order.Order
// @Failure      404 {object} respond.errorResponse
// @Failure      409 {object} respond.errorResponse
// @Router       /api/orders/{id}/cancelled [put]
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := converters.PathID(r, "id")
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	cancelled, err := service.CancelOrder(r.Context(), id)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	slog.InfoContext(r.Context(), "Order cancelled", "order_id", cancelled.ID)

	respond.JSON(r.Context(), w, http.StatusOK, cancelled)
}
