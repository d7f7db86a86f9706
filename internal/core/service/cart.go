package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

var _ port.CartProvider = (*CartService)(nil)

// A CartService mutates per-user cart lines and assembles the cart view.
type CartService struct {
	cart     port.CartRepository
	products port.ProductResolver
	events   port.ClientEventsProducer
}

func NewCartService(
	cart port.CartRepository,
	products port.ProductResolver,
	events port.ClientEventsProducer,
) CartService {
	return CartService{cart, products, events}
}

// GetCart rebuilds the user's cart view from persisted lines, resolving each
// product by identifier. A line whose product no longer exists is skipped and
// logged; the rest of the cart stays usable.
func (s CartService) GetCart(
	ctx context.Context, user domain.User,
) (domain.ShoppingCart, error) {
	const op = "CartService.GetCart"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.ShoppingCart{}, fmt.Errorf("%s: %w", op, err)
	}

	lines, err := s.cart.CartLines(ctx, user.ID)
	if err != nil {
		return domain.ShoppingCart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart := domain.NewShoppingCart()
	for _, line := range lines {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Warn("skipping orphaned cart line",
					"userID", user.ID, "productID", line.ProductID)
				continue
			}
			return domain.ShoppingCart{}, fmt.Errorf("%s: %w", op, err)
		}

		cart.Items[line.ProductID] = domain.ShoppingCartItem{
			Product:  p,
			Quantity: line.Quantity,
		}
	}

	return cart, nil
}

// AddProduct moves the (user, product) pair from absent to quantity 1, or
// increments the existing quantity by 1. The transition is one atomic
// storage upsert, so concurrent adds never lose increments.
func (s CartService) AddProduct(
	ctx context.Context, user domain.User, productID int,
) error {
	const op = "CartService.AddProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cart.AddCartLine(ctx, user.ID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.ClientEvent{
		Username:  user.Username,
		Event:     domain.EventCartAdd,
		ProductID: productID,
	})

	return nil
}

// SetQuantity overwrites the quantity of an existing line. When the pair is
// absent the call is a no-op and never creates a line. A quantity of zero or
// below removes the line: stored quantities stay >= 1.
func (s CartService) SetQuantity(
	ctx context.Context, user domain.User, productID, quantity int,
) error {
	const op = "CartService.SetQuantity"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if quantity <= 0 {
		if err := s.cart.RemoveCartLine(ctx, user.ID, productID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	updated, err := s.cart.SetCartLineQuantity(ctx, user.ID, productID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !updated {
		log.Warn("quantity mutation on absent cart line",
			"userID", user.ID, "productID", productID)
	}

	return nil
}

// ClearCart removes every line for the user. Clearing an empty cart
// succeeds silently.
func (s CartService) ClearCart(ctx context.Context, user domain.User) error {
	const op = "CartService.ClearCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cart.DeleteCartLines(ctx, user.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) emitEvent(ctx context.Context, evt domain.ClientEvent) {
	const op = "CartService.emitEvent"

	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event", "op", op, "err", err)
	}
}
