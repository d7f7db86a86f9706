package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

var _ port.ProductsProvider = (*CatalogService)(nil)

// A CatalogService is the product search engine: it turns normalized
// [domain.FilterCriteria] into a deterministically ordered product list and
// owns all catalog mutations.
type CatalogService struct {
	products port.ProductsRepository
	events   port.ClientEventsProducer
}

func NewCatalogService(
	products port.ProductsRepository,
	events port.ClientEventsProducer,
) CatalogService {
	return CatalogService{products, events}
}

// Search returns every product matching criteria, ordered by ascending
// product id. An empty result is not an error.
func (s CatalogService) Search(
	ctx context.Context, c domain.FilterCriteria,
) ([]domain.Product, error) {
	const op = "CatalogService.Search"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.SearchProducts(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, domain.ClientEvent{
		Event:  domain.EventSearch,
		Filter: c.String(),
	})

	return ps, nil
}

// GetAll is Search with every clause unset.
func (s CatalogService) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.Search(ctx, domain.FilterCriteria{})
}

func (s CatalogService) GetByID(
	ctx context.Context, productID int,
) (domain.Product, error) {
	const op = "CatalogService.GetByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Create inserts p as a new row and returns it with the assigned identifier.
// It is not idempotent: every call inserts.
func (s CatalogService) Create(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "CatalogService.Create"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.products.InsertProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Update overwrites every mutable field of the row addressed by p.ProductID.
// There are no patch semantics: fields are written exactly as supplied.
func (s CatalogService) Update(ctx context.Context, p domain.Product) error {
	const op = "CatalogService.Update"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.products.UpdateProduct(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes the row addressed by productID. Deleting a nonexistent id
// is not an error.
func (s CatalogService) Delete(ctx context.Context, productID int) error {
	const op = "CatalogService.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.products.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// emitEvent sends an activity record best-effort: a broker failure never
// fails the triggering request.
func (s CatalogService) emitEvent(ctx context.Context, evt domain.ClientEvent) {
	const op = "CatalogService.emitEvent"

	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event", "op", op, "err", err)
	}
}
