package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

// memProducts is an in-memory products repository filtering with the
// canonical domain.FilterCriteria.Match rule.
type memProducts struct {
	nextID int
	items  map[int]domain.Product
}

var _ port.ProductsRepository = (*memProducts)(nil)

func newMemProducts(ps ...domain.Product) *memProducts {
	m := &memProducts{items: make(map[int]domain.Product)}
	for _, p := range ps {
		m.items[p.ProductID] = p
		if p.ProductID > m.nextID {
			m.nextID = p.ProductID
		}
	}
	return m
}

func (m *memProducts) SearchProducts(
	_ context.Context, c domain.FilterCriteria,
) ([]domain.Product, error) {
	var ps []domain.Product
	for _, p := range m.items {
		if c.Match(p) {
			ps = append(ps, p)
		}
	}
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].ProductID < ps[j].ProductID
	})
	return ps, nil
}

func (m *memProducts) ProductByID(
	_ context.Context, productID int,
) (domain.Product, error) {
	p, ok := m.items[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("memProducts: %w", domain.ErrNotFound)
	}
	return p, nil
}

func (m *memProducts) InsertProduct(
	_ context.Context, p domain.Product,
) (domain.Product, error) {
	m.nextID++
	p.ProductID = m.nextID
	m.items[p.ProductID] = p
	return p, nil
}

func (m *memProducts) UpdateProduct(_ context.Context, p domain.Product) error {
	if _, ok := m.items[p.ProductID]; !ok {
		return fmt.Errorf("memProducts: %w", domain.ErrNotFound)
	}
	m.items[p.ProductID] = p
	return nil
}

func (m *memProducts) DeleteProduct(_ context.Context, productID int) error {
	delete(m.items, productID)
	return nil
}

type cartKey struct {
	userID    int
	productID int
}

// memCart mirrors the storage contract: atomic add-or-increment,
// update-only set, blanket delete.
type memCart struct {
	lines map[cartKey]int
}

var _ port.CartRepository = (*memCart)(nil)

func newMemCart() *memCart {
	return &memCart{lines: make(map[cartKey]int)}
}

func (m *memCart) CartLines(
	_ context.Context, userID int,
) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	for k, q := range m.lines {
		if k.userID == userID {
			lines = append(lines, domain.CartLine{ProductID: k.productID, Quantity: q})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines, nil
}

func (m *memCart) AddCartLine(_ context.Context, userID, productID int) error {
	m.lines[cartKey{userID, productID}]++
	return nil
}

func (m *memCart) SetCartLineQuantity(
	_ context.Context, userID, productID, quantity int,
) (bool, error) {
	k := cartKey{userID, productID}
	if _, ok := m.lines[k]; !ok {
		return false, nil
	}
	m.lines[k] = quantity
	return true, nil
}

func (m *memCart) RemoveCartLine(_ context.Context, userID, productID int) error {
	delete(m.lines, cartKey{userID, productID})
	return nil
}

func (m *memCart) DeleteCartLines(_ context.Context, userID int) error {
	for k := range m.lines {
		if k.userID == userID {
			delete(m.lines, k)
		}
	}
	return nil
}

// eventsRecorder captures produced client events; a non-nil err makes every
// produce call fail.
type eventsRecorder struct {
	events []domain.ClientEvent
	err    error
}

var _ port.ClientEventsProducer = (*eventsRecorder)(nil)

func (r *eventsRecorder) ProduceEvent(
	_ context.Context, evt domain.ClientEvent,
) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, evt)
	return nil
}

var errBrokerDown = errors.New("broker down")

func mustPrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pricePtr(s string) *decimal.Decimal {
	d := mustPrice(s)
	return &d
}
