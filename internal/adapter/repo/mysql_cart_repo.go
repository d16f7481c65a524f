package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MySQLCartRepo relies on two unique keys: carts(user_id) and
// cart_items(cart_id, product_id, size). Find-or-create and
// increment-or-insert are single upserts, so two racing add-to-cart calls
// cannot produce a second cart or a duplicate row.
type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

func (r *MySQLCartRepo) GetByUser(ctx context.Context, userID string) (domain.Cart, error) {
	cart := domain.Cart{UserID: userID}

	err := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id=?`, userID).Scan(&cart.ID)
	if errors.Is(err, sql.ErrNoRows) {
		// Lazily-created cart: reads report it empty without inserting.
		return cart, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("get cart: %w", err)
	}

	items, err := r.itemsWithProducts(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.Items = items
	return cart, nil
}

func (r *MySQLCartRepo) AddItem(ctx context.Context, userID, productID string, quantity int, size string) (domain.Cart, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("begin add item: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT IGNORE INTO carts (id,user_id,created_at) VALUES (?,?,NOW())`,
		uuid.NewString(), userID); err != nil {
		return domain.Cart{}, fmt.Errorf("ensure cart: %w", err)
	}

	var cartID string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id=?`, userID).Scan(&cartID); err != nil {
		return domain.Cart{}, fmt.Errorf("resolve cart: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO cart_items (id,cart_id,product_id,quantity,size,created_at)
VALUES (?,?,?,?,?,NOW())
ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		uuid.NewString(), cartID, productID, quantity, size); err != nil {
		return domain.Cart{}, fmt.Errorf("upsert cart item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Cart{}, fmt.Errorf("commit add item: %w", err)
	}
	return r.GetByUser(ctx, userID)
}

func (r *MySQLCartRepo) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	// Ownership check before mutation; a foreign item reads the same as a
	// missing one.
	var id string
	err := r.db.QueryRowContext(ctx, `
SELECT ci.id FROM cart_items ci
JOIN carts c ON c.id = ci.cart_id
WHERE ci.id=? AND c.user_id=?`, itemID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return usecase.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("check cart item: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE cart_items SET quantity=? WHERE id=?`, quantity, itemID); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	return nil
}

func (r *MySQLCartRepo) DeleteItem(ctx context.Context, userID, itemID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE ci FROM cart_items ci
JOIN carts c ON c.id = ci.cart_id
WHERE ci.id=? AND c.user_id=?`, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}

func (r *MySQLCartRepo) itemsWithProducts(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT ci.id, ci.product_id, ci.quantity, ci.size,
       p.name, p.description, p.price, p.image
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id=?
ORDER BY ci.created_at`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			it    domain.CartItem
			price string
		)
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.Size,
			&it.Product.Name, &it.Product.Description, &price, &it.Product.Image); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		it.CartID = cartID
		it.Product.ID = it.ProductID
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price for item %s: %w", it.ID, err)
		}
		it.Product.Price = d
		items = append(items, it)
	}
	return items, rows.Err()
}

var _ usecase.CartRepo = (*MySQLCartRepo)(nil)
