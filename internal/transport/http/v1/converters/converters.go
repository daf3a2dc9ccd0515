package converters

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/orderstore/order-svc/internal/service/errs"
	"github.com/orderstore/order-svc/internal/service/models/order"
	"github.com/orderstore/order-svc/internal/service/models/orderitem"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return field.Name
		}

		return name
	})

	return v
}

// OrderRequest is the JSON body accepted when creating or updating an order.
// Required scalars are pointers so that a missing key can be told apart from
// a zero value.
type OrderRequest struct {
	Customer *string            `json:"customer" validate:"required"`
	Date     *string            `json:"date"     validate:"required"`
	Total    *float64           `json:"total"    validate:"required,gte=0"`
	Status   string             `json:"status"   validate:"omitempty,oneof=Open Closed Cancelled Refunded"`
	Items    []OrderItemRequest `json:"items"    validate:"omitempty,dive"`
}

// ToModel converts an OrderRequest to the service layer Order model.
func (req *OrderRequest) ToModel() (*order.Order, error) {
	if err := validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}

	date, err := order.ParseDate(*req.Date)
	if err != nil {
		return nil, errs.NewValidation("invalid date %q, expected YYYY-MM-DD", *req.Date)
	}

	o := &order.Order{
		Customer: *req.Customer,
		Date:     date,
		Total:    *req.Total,
		Status:   order.Status(req.Status),
	}

	for i := range req.Items {
		item, err := req.Items[i].ToModel()
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
	}

	return o, nil
}

// OrderItemRequest is the JSON body accepted when creating or updating an
// order item. The owning order id comes from the URL; a body order_id is
// accepted but must agree with it.
type OrderItemRequest struct {
	OrderID   *int64   `json:"order_id"`
	ProductID *int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  *int     `json:"quantity"   validate:"required,gt=0"`
	Price     *float64 `json:"price"      validate:"required,gte=0"`
	Total     *float64 `json:"total"      validate:"required,gte=0"`
}

// ToModel converts an OrderItemRequest to the service layer OrderItem model.
func (req *OrderItemRequest) ToModel() (*orderitem.OrderItem, error) {
	if err := validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}

	item := &orderitem.OrderItem{
		ProductID: *req.ProductID,
		Quantity:  *req.Quantity,
		Price:     *req.Price,
		Total:     *req.Total,
	}

	if req.OrderID != nil {
		item.OrderID = *req.OrderID
	}

	return item, nil
}

// Decode reads a JSON request body into dst, turning malformed input into a
// validation error.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewValidation("body of request contained bad or no data: %v", err)
	}

	return nil
}

func asValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValidation("%v", err)
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return errs.NewValidation("missing %s", fe.Field())
		}

		return errs.NewValidation("invalid %s", fe.Field())
	}

	return errs.NewValidation("%v", err)
}
