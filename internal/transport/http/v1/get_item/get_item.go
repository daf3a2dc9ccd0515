package getitem

import (
	"context"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/models/orderitem"
	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	GetItem(ctx context.Context, orderID, itemID int64) (orderitem.OrderItem, error)
}

// GetItem handles the fetch single order item request.
//
// @Summary      Retrieve an order item
// @Produce      json
// @Param        id path int true "Order ID"
// @Param        item_id path int true "Item ID"
// @Success      200 {object} orderitem.OrderItem
// @Failure      404 {object} respond.errorResponse
// @Router       /api/orders/{id}/items/{item_id} [get]
func GetItem(w http.ResponseWriter, r *http.Request, service service) {
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

	item, err := service.GetItem(r.Context(), orderID, itemID)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	respond.JSON(r.Context(), w, http.StatusOK, item)
}
