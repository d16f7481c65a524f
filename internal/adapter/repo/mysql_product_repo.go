package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/shopspring/decimal"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) List(ctx context.Context, category string) ([]domain.Product, error) {
	q := `
SELECT id,name,description,price,image,category,sizes,created_at
FROM products`
	args := []any{}
	if category != "" {
		q += ` WHERE category=?`
		args = append(args, category)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,description,price,image,category,sizes,created_at
FROM products WHERE id=?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, usecase.ErrProductNotFound
	}
	return p, err
}

type rowScanner interface{ Scan(dest ...any) error }

// sizes is a JSON array column ("[\"S\",\"M\",\"L\"]"); an empty array means
// the product is ONE SIZE.
func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p        domain.Product
		price    string
		sizesRaw []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Image, &p.Category, &sizesRaw, &p.CreatedAt); err != nil {
		return domain.Product{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parse price for product %s: %w", p.ID, err)
	}
	p.Price = d
	if len(sizesRaw) > 0 {
		if err := json.Unmarshal(sizesRaw, &p.Sizes); err != nil {
			return domain.Product{}, fmt.Errorf("decode sizes for product %s: %w", p.ID, err)
		}
	}
	return p, nil
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
