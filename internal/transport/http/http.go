package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/orderstore/order-svc/docs"
	"github.com/orderstore/order-svc/internal/service/models/order"
	"github.com/orderstore/order-svc/internal/service/models/orderitem"
	"github.com/orderstore/order-svc/internal/transport/http/middleware/apikey"
	cancelorder "github.com/orderstore/order-svc/internal/transport/http/v1/cancel_order"
	createitem "github.com/orderstore/order-svc/internal/transport/http/v1/create_item"
	createorder "github.com/orderstore/order-svc/internal/transport/http/v1/create_order"
	deleteitem "github.com/orderstore/order-svc/internal/transport/http/v1/delete_item"
	deleteorder "github.com/orderstore/order-svc/internal/transport/http/v1/delete_order"
	getitem "github.com/orderstore/order-svc/internal/transport/http/v1/get_item"
	getorder "github.com/orderstore/order-svc/internal/transport/http/v1/get_order"
	listitems "github.com/orderstore/order-svc/internal/transport/http/v1/list_items"
	listorders "github.com/orderstore/order-svc/internal/transport/http/v1/list_orders"
	updateitem "github.com/orderstore/order-svc/internal/transport/http/v1/update_item"
	updateorder "github.com/orderstore/order-svc/internal/transport/http/v1/update_order"
	"github.com/orderstore/order-svc/internal/transport/http/v1/respond"
	tracemw "github.com/orderstore/order-svc/pkg/http/middleware/trace"
	"github.com/orderstore/order-svc/pkg/logger"
)

type service interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
	GetOrder(ctx context.Context, id int64) (order.Order, error)
	ListOrders(ctx context.Context, model order.QueryOrdersModel) ([]order.Order, error)
	UpdateOrder(ctx context.Context, o order.Order) (order.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	CancelOrder(ctx context.Context, id int64) (order.Order, error)

	CreateItem(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
	GetItem(ctx context.Context, orderID, itemID int64) (orderitem.OrderItem, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error)
	UpdateItem(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
	DeleteItem(ctx context.Context, itemID int64) error
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
	apiKey  string
}

func NewHTTPTransport(service service) *HTTPTransport {
	return newHTTPTransport(service, os.Getenv("ORDER_API_KEY"))
}

func newHTTPTransport(service service, apiKey string) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
		apiKey:  apiKey,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport. Reads are open;
// writes sit behind the API key check.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/", h.index)
	h.router.Get("/swagger/doc.json", h.swaggerDoc)
	h.router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Get("/orders/{id}/items", h.listItems)
		r.Get("/orders/{id}/items/{item_id}", h.getItem)

		r.Group(func(r chi.Router) {
			r.Use(apikey.New(h.apiKey))

			r.Post("/orders", h.createOrder)
			r.Put("/orders/{id}", h.updateOrder)
			r.Delete("/orders/{id}", h.deleteOrder)
			r.Put("/orders/{id}/cancelled", h.cancelOrder)

			r.Post("/orders/{id}/items", h.createItem)
			r.Put("/orders/{id}/items/{item_id}", h.updateItem)
			r.Delete("/orders/{id}/items/{item_id}", h.deleteItem)
		})
	})
}

func (h *HTTPTransport) index(w http.ResponseWriter, r *http.Request) {
	respond.JSON(r.Context(), w, http.StatusOK, struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Paths   string `json:"paths"`
	}{
		Name:    "Order Demo REST API Service",
		Version: "1.0",
		Paths:   "/api/orders",
	})
}

func (h *HTTPTransport) swaggerDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(docs.OpenAPI); err != nil {
		slog.ErrorContext(r.Context(), "Error writing swagger document", "error", err)
	}
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.service)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.service)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.service)
}

func (h *HTTPTransport) createItem(w http.ResponseWriter, r *http.Request) {
	createitem.CreateItem(w, r, h.service)
}

func (h *HTTPTransport) getItem(w http.ResponseWriter, r *http.Request) {
	getitem.GetItem(w, r, h.service)
}

func (h *HTTPTransport) listItems(w http.ResponseWriter, r *http.Request) {
	listitems.ListItems(w, r, h.service)
}

func (h *HTTPTransport) updateItem(w http.ResponseWriter, r *http.Request) {
	updateitem.UpdateItem(w, r, h.service)
}

func (h *HTTPTransport) deleteItem(w http.ResponseWriter, r *http.Request) {
	deleteitem.DeleteItem(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(tracemw.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
