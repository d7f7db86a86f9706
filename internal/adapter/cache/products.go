package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

var _ port.ProductsRepository = (*ProductsCache)(nil)

const keyPrefix = "product:"

// A ProductsCache decorates a products repository with a cache-aside layer
// for identity lookups. Searches and inserts pass through; updates and
// deletes invalidate the cached entry. A broken cache degrades to the
// underlying repository, it never fails a request.
type ProductsCache struct {
	next port.ProductsRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewProductsCache(
	next port.ProductsRepository, rdb *redis.Client, ttl time.Duration,
) ProductsCache {
	return ProductsCache{next, rdb, ttl}
}

func (c ProductsCache) SearchProducts(
	ctx context.Context, criteria domain.FilterCriteria,
) ([]domain.Product, error) {
	return c.next.SearchProducts(ctx, criteria)
}

func (c ProductsCache) ProductByID(
	ctx context.Context, productID int,
) (domain.Product, error) {
	const op = "ProductsCache.ProductByID"
	log := slog.With("op", op)

	key := cacheKey(productID)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var p domain.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return p, nil
		}
		log.Warn("dropping undecodable cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		log.Warn("cache read failed", "key", key, "err", err)
	}

	p, err := c.next.ProductByID(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}

	c.store(ctx, key, p)
	return p, nil
}

func (c ProductsCache) InsertProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	return c.next.InsertProduct(ctx, p)
}

func (c ProductsCache) UpdateProduct(ctx context.Context, p domain.Product) error {
	if err := c.next.UpdateProduct(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ProductID)
	return nil
}

func (c ProductsCache) DeleteProduct(ctx context.Context, productID int) error {
	if err := c.next.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	c.invalidate(ctx, productID)
	return nil
}

func (c ProductsCache) store(ctx context.Context, key string, p domain.Product) {
	const op = "ProductsCache.store"

	data, err := json.Marshal(p)
	if err != nil {
		slog.Warn("failed to encode product", "op", op, "err", err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "op", op, "key", key, "err", err)
	}
}

func (c ProductsCache) invalidate(ctx context.Context, productID int) {
	const op = "ProductsCache.invalidate"

	key := cacheKey(productID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache invalidation failed", "op", op, "key", key, "err", err)
	}
}

func cacheKey(productID int) string {
	return keyPrefix + strconv.Itoa(productID)
}
