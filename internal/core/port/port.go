package port

import (
	"context"

	"github.com/easyup/storeapi/internal/core/domain"
)

// Driving ports: what the service exposes to the transport layer.

type ProductsProvider interface {
	Search(context.Context, domain.FilterCriteria) ([]domain.Product, error)
	GetAll(context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, productID int) (domain.Product, error)
	Create(context.Context, domain.Product) (domain.Product, error)
	Update(context.Context, domain.Product) error
	Delete(ctx context.Context, productID int) error
}

type CartProvider interface {
	GetCart(context.Context, domain.User) (domain.ShoppingCart, error)
	AddProduct(ctx context.Context, user domain.User, productID int) error
	SetQuantity(ctx context.Context, user domain.User, productID, quantity int) error
	ClearCart(context.Context, domain.User) error
}

// Driven ports: what the service requires from adapters.

type ProductsRepository interface {
	SearchProducts(context.Context, domain.FilterCriteria) ([]domain.Product, error)
	ProductByID(ctx context.Context, productID int) (domain.Product, error)
	InsertProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(context.Context, domain.Product) error
	DeleteProduct(ctx context.Context, productID int) error
}

// ProductResolver is the identity-lookup capability the cart aggregator needs.
type ProductResolver interface {
	GetByID(ctx context.Context, productID int) (domain.Product, error)
}

type CartRepository interface {
	CartLines(ctx context.Context, userID int) ([]domain.CartLine, error)

	// AddCartLine inserts a line with quantity 1 or increments an existing
	// one, as a single atomic storage operation.
	AddCartLine(ctx context.Context, userID, productID int) error

	// SetCartLineQuantity overwrites the quantity of an existing line.
	// It never inserts; updated is false when the line is absent.
	SetCartLineQuantity(ctx context.Context, userID, productID, quantity int) (updated bool, err error)

	RemoveCartLine(ctx context.Context, userID, productID int) error
	DeleteCartLines(ctx context.Context, userID int) error
}

// UserDirectory resolves a principal name to the owning user.
// It is the single capability interface for user identity.
type UserDirectory interface {
	UserByUsername(ctx context.Context, username string) (domain.User, error)
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
}
