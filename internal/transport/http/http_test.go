package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orderstore/order-svc/internal/service/errs"
	"github.com/orderstore/order-svc/internal/service/models/order"
	"github.com/orderstore/order-svc/internal/service/models/orderitem"
)

type stubService struct {
	createOrderFn func(ctx context.Context, o order.Order) (order.Order, error)
	getOrderFn    func(ctx context.Context, id int64) (order.Order, error)
	listOrdersFn  func(ctx context.Context, model order.QueryOrdersModel) ([]order.Order, error)
	updateOrderFn func(ctx context.Context, o order.Order) (order.Order, error)
	deleteOrderFn func(ctx context.Context, id int64) error
	cancelOrderFn func(ctx context.Context, id int64) (order.Order, error)

	createItemFn func(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
	getItemFn    func(ctx context.Context, orderID, itemID int64) (orderitem.OrderItem, error)
	listItemsFn  func(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error)
	updateItemFn func(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
	deleteItemFn func(ctx context.Context, itemID int64) error
}

func (s *stubService) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	return s.createOrderFn(ctx, o)
}

func (s *stubService) GetOrder(ctx context.Context, id int64) (order.Order, error) {
	return s.getOrderFn(ctx, id)
}

func (s *stubService) ListOrders(
	ctx context.Context,
	model order.QueryOrdersModel,
) ([]order.Order, error) {
	return s.listOrdersFn(ctx, model)
}

func (s *stubService) UpdateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	return s.updateOrderFn(ctx, o)
}

func (s *stubService) DeleteOrder(ctx context.Context, id int64) error {
	return s.deleteOrderFn(ctx, id)
}

func (s *stubService) CancelOrder(ctx context.Context, id int64) (order.Order, error) {
	return s.cancelOrderFn(ctx, id)
}

func (s *stubService) CreateItem(
	ctx context.Context,
	item orderitem.OrderItem,
) (orderitem.OrderItem, error) {
	return s.createItemFn(ctx, item)
}

func (s *stubService) GetItem(
	ctx context.Context,
	orderID, itemID int64,
) (orderitem.OrderItem, error) {
	return s.getItemFn(ctx, orderID, itemID)
}

func (s *stubService) ListOrderItems(
	ctx context.Context,
	orderID int64,
) ([]orderitem.OrderItem, error) {
	return s.listItemsFn(ctx, orderID)
}

func (s *stubService) UpdateItem(
	ctx context.Context,
	item orderitem.OrderItem,
) (orderitem.OrderItem, error) {
	return s.updateItemFn(ctx, item)
}

func (s *stubService) DeleteItem(ctx context.Context, itemID int64) error {
	return s.deleteItemFn(ctx, itemID)
}

func newTestTransport(t *testing.T, svc *stubService, apiKey string) *HTTPTransport {
	t.Helper()

	h := newHTTPTransport(svc, apiKey)
	h.RegisterRoutes()

	return h
}

func serve(h *HTTPTransport, method, target, body, contentType, apiKey string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	if apiKey != "" {
		r.Header.Set("X-Api-Key", apiKey)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, r)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()

	var body struct {
		StatusCode int    `json:"status_code"`
		Error      string `json:"error"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body.StatusCode, body.Message
}

func sampleOrder() order.Order {
	return order.Order{
		ID:       1,
		Customer: "Alice",
		Date:     order.DateOf(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		Total:    42,
		Status:   order.StatusOpen,
	}
}

func TestCreateOrder(t *testing.T) {
	svc := &stubService{
		createOrderFn: func(_ context.Context, o order.Order) (order.Order, error) {
			o.ID = 1

			return o, nil
		},
	}
	h := newTestTransport(t, svc, "")

	w := serve(h, "POST", "/api/orders",
		`{"customer":"Alice","date":"2026-08-01","total":42}`,
		"application/json", "")

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/api/orders/1", w.Header().Get("Location"))

	var got order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, int64(1), got.ID)
	require.Equal(t, "Alice", got.Customer)
	require.Equal(t, order.StatusOpen, got.Status)
}

func TestCreateOrderRequiresJSON(t *testing.T) {
	h := newTestTransport(t, &stubService{}, "")

	w := serve(h, "POST", "/api/orders", "customer=Alice", "application/x-www-form-urlencoded", "")

	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	code, _ := decodeError(t, w)
	require.Equal(t, http.StatusUnsupportedMediaType, code)
}

func TestCreateOrderMissingField(t *testing.T) {
	h := newTestTransport(t, &stubService{}, "")

	w := serve(h, "POST", "/api/orders", `{"date":"2026-08-01","total":42}`, "application/json", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	_, msg := decodeError(t, w)
	require.Contains(t, msg, "customer")
}

func TestAPIKeyGuardsWrites(t *testing.T) {
	svc := &stubService{
		createOrderFn: func(_ context.Context, o order.Order) (order.Order, error) {
			o.ID = 1

			return o, nil
		},
		listOrdersFn: func(context.Context, order.QueryOrdersModel) ([]order.Order, error) {
			return []order.Order{}, nil
		},
	}
	h := newTestTransport(t, svc, "secret")

	body := `{"customer":"Alice","date":"2026-08-01","total":42}`

	w := serve(h, "POST", "/api/orders", body, "application/json", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(h, "POST", "/api/orders", body, "application/json", "wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(h, "POST", "/api/orders", body, "application/json", "secret")
	require.Equal(t, http.StatusCreated, w.Code)

	// Reads stay open.
	w = serve(h, "GET", "/api/orders", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &stubService{
		getOrderFn: func(context.Context, int64) (order.Order, error) {
			return order.Order{}, errs.ErrNotFound
		},
	}
	h := newTestTransport(t, svc, "")

	w := serve(h, "GET", "/api/orders/404", "", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	code, _ := decodeError(t, w)
	require.Equal(t, http.StatusNotFound, code)
}

func TestGetOrderMalformedID(t *testing.T) {
	h := newTestTransport(t, &stubService{
		getOrderFn: func(context.Context, int64) (order.Order, error) {
			return order.Order{}, nil
		},
	}, "")

	w := serve(h, "GET", "/api/orders/abc", "", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersFilters(t *testing.T) {
	var captured order.QueryOrdersModel
	svc := &stubService{
		listOrdersFn: func(_ context.Context, model order.QueryOrdersModel) ([]order.Order, error) {
			captured = model

			return []order.Order{sampleOrder()}, nil
		},
	}
	h := newTestTransport(t, svc, "")

	w := serve(h, "GET", "/api/orders?status=Open", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []order.Status{order.StatusOpen}, captured.Statuses)

	// Customer takes precedence over status.
	w = serve(h, "GET", "/api/orders?customer=Alice&status=Open", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"Alice"}, captured.Customers)
	require.Empty(t, captured.Statuses)
}

func TestListOrdersInvalidStatus(t *testing.T) {
	h := newTestTransport(t, &stubService{}, "")

	w := serve(h, "GET", "/api/orders?status=Bogus", "", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelOrderConflict(t *testing.T) {
	svc := &stubService{
		cancelOrderFn: func(context.Context, int64) (order.Order, error) {
			return order.Order{}, order.ErrAlreadyCancelled
		},
	}
	h := newTestTransport(t, svc, "")

	w := serve(h, "PUT", "/api/orders/1/cancelled", "", "", "")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteOrderAlways204(t *testing.T) {
	svc := &stubService{
		deleteOrderFn: func(context.Context, int64) error { return nil },
	}
	h := newTestTransport(t, svc, "")

	w := serve(h, "DELETE", "/api/orders/1", "", "", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = serve(h, "DELETE", "/api/orders/abc", "", "", "")
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateItem(t *testing.T) {
	svc := &stubService{
		createItemFn: func(_ context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error) {
			item.ID = 11

			return item, nil
		},
	}
	h := newTestTransport(t, svc, "")

	w := serve(h, "POST", "/api/orders/1/items",
		`{"product_id":5,"quantity":2,"price":10,"total":20}`,
		"application/json", "")

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/api/orders/1/items/11", w.Header().Get("Location"))

	var got orderitem.OrderItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, int64(11), got.ID)
	require.Equal(t, int64(1), got.OrderID)
}

func TestCreateItemOrderIDMismatch(t *testing.T) {
	h := newTestTransport(t, &stubService{}, "")

	w := serve(h, "POST", "/api/orders/1/items",
		`{"order_id":2,"product_id":5,"quantity":2,"price":10,"total":20}`,
		"application/json", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemEndToEnd(t *testing.T) {
	item := orderitem.OrderItem{ID: 11, OrderID: 1, ProductID: 5, Quantity: 2, Price: 10, Total: 20}

	svc := &stubService{
		getItemFn: func(_ context.Context, orderID, itemID int64) (orderitem.OrderItem, error) {
			if orderID != 1 || itemID != 11 {
				return orderitem.OrderItem{}, errs.ErrNotFound
			}

			return item, nil
		},
		listItemsFn: func(context.Context, int64) ([]orderitem.OrderItem, error) {
			return []orderitem.OrderItem{item}, nil
		},
		deleteItemFn: func(context.Context, int64) error { return nil },
	}
	h := newTestTransport(t, svc, "")

	w := serve(h, "GET", "/api/orders/1/items/11", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(h, "GET", "/api/orders/2/items/11", "", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, "GET", "/api/orders/1/items", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []orderitem.OrderItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)

	w = serve(h, "DELETE", "/api/orders/1/items/11", "", "", "")
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestIndexAndSwagger(t *testing.T) {
	h := newTestTransport(t, &stubService{}, "")

	w := serve(h, "GET", "/", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Order Demo REST API Service")

	w = serve(h, "GET", "/swagger/doc.json", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"swagger"`)
}
