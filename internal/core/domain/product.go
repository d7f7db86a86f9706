package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   int
	Name        string
	Price       decimal.Decimal
	CategoryID  int
	Description string
	SubCategory string
	Stock       int
	ImageURL    string
	Featured    bool
}

// ShowAllSubCategory is the legacy catalog sentinel meaning "no sub-category filter".
const ShowAllSubCategory = "show all"

// A FilterCriteria holds normalized optional search parameters.
//
// Zero values mean "clause is unset": 0 for CategoryID, nil for the price
// bounds, "" for SubCategory and Name. Construct it with [NewFilterCriteria],
// which applies the normalization rules.
type FilterCriteria struct {
	CategoryID  int
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	SubCategory string
	Name        string
}

// NewFilterCriteria normalizes raw search parameters.
//
// A zero categoryID means unset (the legacy catalog used 0 for "no category").
// Blank or whitespace-only text means unset, as does the case-insensitive
// [ShowAllSubCategory] sentinel for subCategory. Price bounds pass through
// unchanged; minPrice greater than maxPrice is legal and simply matches
// nothing.
func NewFilterCriteria(
	categoryID int,
	minPrice, maxPrice *decimal.Decimal,
	subCategory, name string,
) FilterCriteria {
	subCategory = strings.TrimSpace(subCategory)
	if strings.EqualFold(subCategory, ShowAllSubCategory) {
		subCategory = ""
	}

	return FilterCriteria{
		CategoryID:  categoryID,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		SubCategory: subCategory,
		Name:        strings.TrimSpace(name),
	}
}

// Match reports whether p satisfies every set clause. An unset clause always
// passes. It is the canonical matching rule; storage push-down predicates
// must agree with it.
func (c FilterCriteria) Match(p Product) bool {
	if c.CategoryID != 0 && p.CategoryID != c.CategoryID {
		return false
	}

	if c.MinPrice != nil && p.Price.LessThan(*c.MinPrice) {
		return false
	}

	if c.MaxPrice != nil && p.Price.GreaterThan(*c.MaxPrice) {
		return false
	}

	if c.SubCategory != "" && !containsFold(p.SubCategory, c.SubCategory) {
		return false
	}

	if c.Name != "" && !containsFold(p.Name, c.Name) {
		return false
	}

	return true
}

// Unset reports whether no clause is set, i.e. the criteria of GetAll.
func (c FilterCriteria) Unset() bool {
	return c.CategoryID == 0 &&
		c.MinPrice == nil &&
		c.MaxPrice == nil &&
		c.SubCategory == "" &&
		c.Name == ""
}

// String renders the set clauses for logging and activity events.
func (c FilterCriteria) String() string {
	var parts []string
	if c.CategoryID != 0 {
		parts = append(parts, "category="+strconv.Itoa(c.CategoryID))
	}
	if c.MinPrice != nil {
		parts = append(parts, "min_price="+c.MinPrice.String())
	}
	if c.MaxPrice != nil {
		parts = append(parts, "max_price="+c.MaxPrice.String())
	}
	if c.SubCategory != "" {
		parts = append(parts, "sub_category="+c.SubCategory)
	}
	if c.Name != "" {
		parts = append(parts, "name="+c.Name)
	}
	return strings.Join(parts, " ")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
