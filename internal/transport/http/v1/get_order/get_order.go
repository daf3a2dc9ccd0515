package getorder

import (
	"context"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/models/order"
	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id int64) (order.Order, error)
}

// GetOrder handles the fetch single order request.
//
// @Summary      Retrieve an order
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} order.Order
// @Failure      404 {object} respond.errorResponse
// @Router       /api/orders/{id} [get]
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := converters.PathID(r, "id")
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	found, err := service.GetOrder(r.Context(), id)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	respond.JSON(r.Context(), w, http.StatusOK, found)
}
