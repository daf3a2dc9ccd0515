package updateorder

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
	UpdateOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// UpdateOrder handles the full order update request.
//
// @Summary      Update an order
// @Accept       json
// @Produce      json
// @Param        id path int true "Order ID"
// @Param        order body converters.OrderRequest true "New order contents"
// @Success      200 {object} order.Order
// @Failure      400 {object} respond.errorResponse
// @Failure      404 {object} respond.errorResponse
// @Failure      415 {object} respond.errorResponse
// @Router       /api/orders/{id} [put]
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	if err := respond.RequireJSON(r); err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	id, err := converters.PathID(r, "id")
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	var req converters.OrderRequest
	if err := converters.Decode(r, &req); err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	model, err := req.ToModel()
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	model.ID = id

	updated, err := service.UpdateOrder(r.Context(), *model)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	slog.InfoContext(r.Context(), "Order updated", "order_id", updated.ID)

	respond.JSON(r.Context(), w, http.StatusOK, updated)
}
