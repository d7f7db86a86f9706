package storage

import (
	"context"
	"fmt"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

var _ port.CartRepository = (*CartRepository)(nil)

type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

func (r CartRepository) CartLines(
	ctx context.Context, userID int,
) ([]domain.CartLine, error) {
	const op = "CartRepository.CartLines"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT product_id, quantity
		FROM shopping_cart
		WHERE user_id = $1
		ORDER BY product_id;`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lines, nil
}

// AddCartLine is a single conditional upsert: insert at quantity 1 or
// increment in place. No check-then-act, so concurrent adds for the same
// (user, product) pair cannot lose increments.
func (r CartRepository) AddCartLine(
	ctx context.Context, userID, productID int,
) error {
	const op = "CartRepository.AddCartLine"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO shopping_cart (user_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = shopping_cart.quantity + 1;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) SetCartLineQuantity(
	ctx context.Context, userID, productID, quantity int,
) (bool, error) {
	const op = "CartRepository.SetCartLineQuantity"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE shopping_cart
		SET quantity = $3
		WHERE user_id = $1 AND product_id = $2;`

	res, err := r.sqldb.ExecContext(ctx, query, userID, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

func (r CartRepository) RemoveCartLine(
	ctx context.Context, userID, productID int,
) error {
	const op = "CartRepository.RemoveCartLine"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		DELETE FROM shopping_cart
		WHERE user_id = $1 AND product_id = $2;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) DeleteCartLines(ctx context.Context, userID int) error {
	const op = "CartRepository.DeleteCartLines"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM shopping_cart WHERE user_id = $1;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
