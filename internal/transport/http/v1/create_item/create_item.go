package createitem

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/errs"
	"github.com/orderstore/order-svc/internal/service/models/orderitem"
	"github.com/orderstore/order-svc/internal/transport/http/v1/converters"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	CreateItem(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
}

// CreateItem handles the create order item request. The owning order comes
// from the URL and must exist; a body order_id must agree with it.
//
// @Summary      Add an item to an order
// @Accept       json
// @Produce      json
// @Param        id path int true "Order ID"
// @Param        item body converters.OrderItemRequest true "Item to add"
// @Success      201 {object} orderitem.OrderItem
// @Header       201 {string} Location "URL of the created item"
// @Failure      400 {object} respond.errorResponse
// @Failure      404 {object} respond.errorResponse
// @Failure      415 {object} respond.errorResponse
// @Router       /api/orders/{id}/items [post]
func CreateItem(w http.ResponseWriter, r *http.Request, service service) {
	if err := respond.RequireJSON(r); err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	orderID, err := converters.PathID(r, "id")
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

	model.OrderID = orderID

	created, err := service.CreateItem(r.Context(), *model)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	slog.InfoContext(r.Context(), "Order item created",
		"order_id", created.OrderID,
		"item_id", created.ID,
	)

	w.Header().Set("Location", fmt.Sprintf("/api/orders/%d/items/%d", created.OrderID, created.ID))
	respond.JSON(r.Context(), w, http.StatusCreated, created)
}
