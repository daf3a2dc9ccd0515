package createorder

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/models/order"
	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// CreateOrder handles the create order request.
//
// @Summary      Create an order
// @Accept       json
// @Produce      json
// @Param        order body converters.OrderRequest true "Order to create"
// @Success      201 {object} order.Order
// @Header       201 {string} Location "URL of the created order"
// @Failure      400 {object} respond.errorResponse
// @Failure      415 {object} respond.errorResponse
// @Router       /api/orders [post]
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	if err := respond.RequireJSON(r); err != nil {
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

	created, err := service.CreateOrder(r.Context(), *model)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	slog.InfoContext(r.Context(), "Order created", "order_id", created.ID)

	w.Header().Set("Location", fmt.Sprintf("/api/orders/%d", created.ID))
	respond.JSON(r.Context(), w, http.StatusCreated, created)
}
