package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

var _ port.ProductsRepository = (*ProductsRepository)(nil)

const productColumns = `product_id, name, price, category_id,
	description, subcategory, stock, image_url, featured`

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

// SearchProducts pushes the set filter clauses into a single SQL predicate
// equivalent to [domain.FilterCriteria.Match]. Rows come back ordered by
// ascending product id.
func (r ProductsRepository) SearchProducts(
	ctx context.Context, c domain.FilterCriteria,
) ([]domain.Product, error) {
	const op = "ProductsRepository.SearchProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query, args := buildSearchQuery(c)

	rows, err := r.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ps, nil
}

func (r ProductsRepository) ProductByID(
	ctx context.Context, productID int,
) (domain.Product, error) {
	const op = "ProductsRepository.ProductByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1;`

	p, err := scanProduct(r.sqldb.QueryRowContext(ctx, query, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r ProductsRepository) InsertProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.InsertProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO products (
			name, price, category_id, description,
			subcategory, stock, image_url, featured
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING product_id;`

	err := r.sqldb.QueryRowContext(ctx, query,
		p.Name, p.Price, p.CategoryID, p.Description,
		p.SubCategory, p.Stock, p.ImageURL, p.Featured,
	).Scan(&p.ProductID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// UpdateProduct overwrites every mutable column of the addressed row with
// the supplied values, blanks included.
func (r ProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) error {
	const op = "ProductsRepository.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE products
		SET name = $2, price = $3, category_id = $4, description = $5,
			subcategory = $6, stock = $7, image_url = $8, featured = $9
		WHERE product_id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query,
		p.ProductID, p.Name, p.Price, p.CategoryID, p.Description,
		p.SubCategory, p.Stock, p.ImageURL, p.Featured,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	return nil
}

// DeleteProduct is idempotent: a nonexistent id is not an error.
func (r ProductsRepository) DeleteProduct(
	ctx context.Context, productID int,
) error {
	const op = "ProductsRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM products WHERE product_id = $1;`

	if _, err := r.sqldb.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// buildSearchQuery appends one predicate per set clause. Unset clauses add
// nothing, so the unset-everything criteria degrades to a plain scan.
func buildSearchQuery(c domain.FilterCriteria) (string, []any) {
	var b strings.Builder
	b.WriteString(`
		SELECT ` + productColumns + `
		FROM products
		WHERE 1 = 1`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if c.CategoryID != 0 {
		b.WriteString(" AND category_id = " + arg(c.CategoryID))
	}
	if c.MinPrice != nil {
		b.WriteString(" AND price >= " + arg(*c.MinPrice))
	}
	if c.MaxPrice != nil {
		b.WriteString(" AND price <= " + arg(*c.MaxPrice))
	}
	if c.SubCategory != "" {
		b.WriteString(" AND subcategory ILIKE " + arg(likePattern(c.SubCategory)))
	}
	if c.Name != "" {
		b.WriteString(" AND name ILIKE " + arg(likePattern(c.Name)))
	}

	b.WriteString(" ORDER BY product_id;")
	return b.String(), args
}

// likePattern wraps s for substring containment, escaping LIKE wildcards so
// user text matches literally.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
	return "%" + s + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID, &p.Name, &p.Price, &p.CategoryID,
		&p.Description, &p.SubCategory, &p.Stock, &p.ImageURL, &p.Featured,
	)
	return p, err
}
