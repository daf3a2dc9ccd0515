package updateitem

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/errs"
	"github.com/orderstore/order-svc/internal/service/models/orderitem"
	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	UpdateItem(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
}

// UpdateItem handles the full order item update request.
//
// @Summary      Update an order item
// @Accept       json
// @Produce      json
// @Param        id path int true "Order ID"
// @Param        item_id path int true "Item ID"
// @Param        item body converters.OrderItemRequest true "New item contents"
// @Success      200 {object} orderitem.OrderItem
// @Failure      400 {object} respond.errorResponse
// @Failure      404 {object} respond.errorResponse
// @Failure      415 {object} respond.errorResponse
// @Router       /api/orders/{id}/items/{item_id} [put]
func UpdateItem(w http.ResponseWriter, r *http.Request, service service) {
	if err := respond.RequireJSON(r); err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	orderID, err := converters.PathID(r, "id")
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	itemID, err := converters.PathID(r, "item_id")
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	var req converters.OrderItemRequest
	if err := converters.Decode(r, &req); err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	model, err := req.ToModel()
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	if model.OrderID != 0 && model.OrderID != orderID {
		respond.Error(r.Context(), w,
			errs.NewValidation("order_id %d does not match order %d", model.OrderID, orderID))

		return
	}

	model.ID = itemID
	model.OrderID = orderID

	updated, err := service.UpdateItem(r.Context(), *model)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	slog.InfoContext(r.Context(), "Order item updated",
		"order_id", updated.OrderID,
		"item_id", updated.ID,
	)

	respond.JSON(r.Context(), w, http.StatusOK, updated)
}
