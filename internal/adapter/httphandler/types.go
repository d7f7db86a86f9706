package httphandler

import "github.com/shopspring/decimal"

type (
	Product struct {
		ProductID   int             `json:"product_id"`
		Name        string          `json:"name"`
		Price       decimal.Decimal `json:"price"`
		CategoryID  int             `json:"category_id"`
		Description string          `json:"description"`
		SubCategory string          `json:"subcategory"`
		Stock       int             `json:"stock"`
		ImageURL    string          `json:"image_url"`
		Featured    bool            `json:"featured"`
	}

	ShoppingCartItem struct {
		Product         Product         `json:"product"`
		Quantity        int             `json:"quantity"`
		DiscountPercent decimal.Decimal `json:"discount_percent"`
		LineTotal       decimal.Decimal `json:"line_total"`
	}

	ShoppingCart struct {
		Items map[int]ShoppingCartItem `json:"items"`
		Total decimal.Decimal          `json:"total"`
	}

	QuantityRequest struct {
		Quantity int `json:"quantity"`
	}
)
