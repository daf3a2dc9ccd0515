package listitems

import (
	"context"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/models/orderitem"
	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	ListOrderItems(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error)
}

// ListItems handles the list order items request.
//
// @Summary      List items of an order
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {array} orderitem.OrderItem
// @Failure      404 {object} respond.errorResponse
// @Router       /api/orders/{id}/items [get]
func ListItems(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := converters.PathID(r, "id")
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	items, err := service.ListOrderItems(r.Context(), orderID)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	respond.JSON(r.Context(), w, http.StatusOK, items)
}
