package listorders

import (
	"context"
	"net/http"

	"github.com/orderstore/order-svc/internal/service/errs"
	"github.com/orderstore/order-svc/internal/service/models/order"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	ListOrders(ctx context.Context, model order.QueryOrdersModel) ([]order.Order, error)
}

// ListOrders handles the list orders request. The customer and status query
// filters are applied one at a time, customer taking precedence, mirroring
// the documented API behavior.
//
// @Summary      List orders
// @Produce      json
// @Param        customer query string false "Filter by customer"
// @Param        status query string false "Filter by status" Enums(Open, Closed, Cancelled, Refunded)
// @Success      200 {array} order.Order
// @Failure      400 {object} respond.errorResponse
// @Router       /api/orders [get]
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	model := order.QueryOrdersModel{}

	switch {
	case query.Get("customer") != "":
		model.Customers = []string{query.Get("customer")}
	case query.Get("status") != "":
		status, err := order.ParseStatus(query.Get("status"))
		if err != nil {
			respond.Error(r.Context(), w,
				errs.NewValidation("invalid status %q", query.Get("status")))

			return
		}
		model.Statuses = []order.Status{status}
	}

	orders, err := service.ListOrders(r.Context(), model)
	if err != nil {
		respond.Error(r.Context(), w, err)

		return
	}

	respond.JSON(r.Context(), w, http.StatusOK, orders)
}
