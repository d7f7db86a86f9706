package domain

import "github.com/shopspring/decimal"

// A CartLine is one persisted (user, product, quantity) record.
// Quantity of a stored line is always >= 1.
type CartLine struct {
	ProductID int
	Quantity  int
}

// A ShoppingCartItem is one cart line with its product resolved.
type ShoppingCartItem struct {
	Product         Product
	Quantity        int
	DiscountPercent decimal.Decimal
}

// LineTotal is price * quantity reduced by the discount percent.
func (i ShoppingCartItem) LineTotal() decimal.Decimal {
	total := i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
	if i.DiscountPercent.IsZero() {
		return total
	}
	discount := total.Mul(i.DiscountPercent).Div(decimal.NewFromInt(100))
	return total.Sub(discount)
}

// A ShoppingCart is the per-user cart view, one item per product.
// It is rebuilt from storage on every read and never cached.
type ShoppingCart struct {
	Items map[int]ShoppingCartItem
}

func NewShoppingCart() ShoppingCart {
	return ShoppingCart{Items: make(map[int]ShoppingCartItem)}
}

func (c ShoppingCart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
