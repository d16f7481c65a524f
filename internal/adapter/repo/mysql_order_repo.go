package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/shopspring/decimal"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Create writes order, shipping address and items, then clears the cart's
// items, all in one transaction. A failure anywhere rolls the whole set
// back: no order without items, no cleared cart without an order.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order, cartID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create order: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO orders (id,user_id,status,total_amount,created_at)
VALUES (?,?,?,?,?)`,
		o.ID, o.UserID, o.Status, o.TotalAmount.StringFixed(2), o.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	s := o.Shipping
	if _, err := tx.ExecContext(ctx, `
INSERT INTO shipping_addresses (id,order_id,name,email,phone,address,city,postal_code)
VALUES (?,?,?,?,?,?,?,?)`,
		s.ID, o.ID, s.Name, s.Email, s.Phone, s.Address, s.City, s.PostalCode); err != nil {
		return fmt.Errorf("insert shipping address: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO order_items (id,order_id,product_id,price,quantity,size,product_name,product_image)
VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare order item: %w", err)
	}
	defer stmt.Close()

	for _, it := range o.Items {
		if _, err := stmt.ExecContext(ctx, it.ID, o.ID, it.ProductID,
			it.Price.StringFixed(2), it.Quantity, it.Size,
			it.ProductName, it.ProductImage); err != nil {
			return fmt.Errorf("insert order item (product %s): %w", it.ProductID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id=?`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepo) GetByUser(ctx context.Context, userID, orderID string) (domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,user_id,status,total_amount,created_at
FROM orders WHERE id=? AND user_id=?`, orderID, userID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, usecase.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	if err := r.attachDetails(ctx, []*domain.Order{&o}); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,user_id,status,total_amount,created_at
FROM orders WHERE user_id=?
ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	if err := r.attachDetails(ctx, orders); err != nil {
		return nil, err
	}

	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		out[i] = *o
	}
	return out, nil
}

func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status=? WHERE id=? AND status=?`, to, id, from)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	// rows == 0: not found or status already moved on
	return rows > 0, nil
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o     domain.Order
		total string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &total, &o.CreatedAt); err != nil {
		return domain.Order{}, err
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("parse total for order %s: %w", o.ID, err)
	}
	o.TotalAmount = d
	return o, nil
}

// attachDetails loads items (with denormalized product name/image) and
// shipping addresses for the given orders in two queries.
func (r *MySQLOrderRepo) attachDetails(ctx context.Context, orders []*domain.Order) error {
	byID := make(map[string]*domain.Order, len(orders))
	ids := make([]any, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	ph := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	// Live product name/image when the product still exists, the stored
	// snapshot when it was deleted or renamed.
	itemRows, err := r.db.QueryContext(ctx, `
SELECT oi.id, oi.order_id, oi.product_id, oi.price, oi.quantity, oi.size,
       COALESCE(p.name, oi.product_name), COALESCE(p.image, oi.product_image)
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id IN (`+ph+`)`, ids...)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			it    domain.OrderItem
			price string
		)
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &price,
			&it.Quantity, &it.Size, &it.ProductName, &it.ProductImage); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("parse price for order item %s: %w", it.ID, err)
		}
		it.Price = d
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	addrRows, err := r.db.QueryContext(ctx, `
SELECT id, order_id, name, email, phone, address, city, postal_code
FROM shipping_addresses
WHERE order_id IN (`+ph+`)`, ids...)
	if err != nil {
		return fmt.Errorf("list shipping addresses: %w", err)
	}
	defer addrRows.Close()

	for addrRows.Next() {
		var (
			a       domain.ShippingAddress
			orderID string
		)
		if err := addrRows.Scan(&a.ID, &orderID, &a.Name, &a.Email, &a.Phone,
			&a.Address, &a.City, &a.PostalCode); err != nil {
			return fmt.Errorf("scan shipping address: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Shipping = a
		}
	}
	return addrRows.Err()
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
