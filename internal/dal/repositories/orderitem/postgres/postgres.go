package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/orderstore/order-svc/internal/dal/pgerr"
	"github.com/orderstore/order-svc/internal/service/models/orderitem"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id        int64     `db:"id"`
	OrderId   int64     `db:"order_id"`
	ProductId int64     `db:"product_id"`
	Quantity  int       `db:"quantity"`
	Price     float64   `db:"price"`
	Total     float64   `db:"total"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:        oi.Id,
		OrderID:   oi.OrderId,
		ProductID: oi.ProductId,
		Quantity:  oi.Quantity,
		Price:     oi.Price,
		Total:     oi.Total,
		CreatedAt: oi.CreatedAt,
		UpdatedAt: oi.UpdatedAt,
	}
}

// OrderItemDalFromModel converts the service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(oi *orderitem.OrderItem) *OrderItemDal {
	return &OrderItemDal{
		Id:        oi.ID,
		OrderId:   oi.OrderID,
		ProductId: oi.ProductID,
		Quantity:  oi.Quantity,
		Price:     oi.Price,
		Total:     oi.Total,
		CreatedAt: oi.CreatedAt,
		UpdatedAt: oi.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores a new order item and returns it with the generated id.
func (r *PostgresOrderItemRepository) Insert(
	ctx context.Context,
	item orderitem.OrderItem,
) (orderitem.OrderItem, error) {
	dal := OrderItemDalFromModel(&item)

	sql, args, err := r.sb.
		Insert("order_items").
		Columns("order_id", "product_id", "quantity", "price", "total", "created_at", "updated_at").
		Values(dal.OrderId, dal.ProductId, dal.Quantity, dal.Price, dal.Total, dal.CreatedAt, dal.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return orderitem.OrderItem{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&item.ID); err != nil {
		return orderitem.OrderItem{}, fmt.Errorf("failed to insert order item: %w", pgerr.Wrap(err))
	}

	return item, nil
}

// Update persists in-place changes to an existing order item.
func (r *PostgresOrderItemRepository) Update(
	ctx context.Context,
	item orderitem.OrderItem,
) (orderitem.OrderItem, error) {
	dal := OrderItemDalFromModel(&item)

	sql, args, err := r.sb.
		Update("order_items").
		Set("product_id", dal.ProductId).
		Set("quantity", dal.Quantity).
		Set("price", dal.Price).
		Set("total", dal.Total).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.Id, "order_id": dal.OrderId}).
		ToSql()
	if err != nil {
		return orderitem.OrderItem{}, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return orderitem.OrderItem{}, fmt.Errorf("failed to update order item: %w", pgerr.Wrap(err))
	}

	if tag.RowsAffected() == 0 {
		return orderitem.OrderItem{}, pgx.ErrNoRows
	}

	return item, nil
}

// Delete removes an order item.
func (r *PostgresOrderItemRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.
		Delete("order_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete order item: %w", pgerr.Wrap(err))
	}

	return nil
}

// DeleteByOrderIDs removes every item owned by the given orders. The database
// enforces the same cascade through the foreign key; this keeps the ownership
// rule visible to callers working against the repository contract alone.
func (r *PostgresOrderItemRepository) DeleteByOrderIDs(
	ctx context.Context,
	orderIDs []int64,
) error {
	if len(orderIDs) == 0 {
		return nil
	}

	sql, args, err := r.sb.
		Delete("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete order items: %w", pgerr.Wrap(err))
	}

	return nil
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select("id", "order_id", "product_id", "quantity", "price", "total", "created_at", "updated_at").
		From("order_items").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	if len(filter.ProductIds) > 0 {
		query = query.Where(sq.Eq{"product_id": filter.ProductIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", pgerr.Wrap(err))
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		var createdAt, updatedAt pgtype.Timestamptz

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.Price,
			&dal.Total,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		dal.UpdatedAt = updatedAt.Time

		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
