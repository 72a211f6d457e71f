package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func init() {
	// Catalog prices and order totals go on the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrUnknownProduct is returned when a selection references an id outside the catalog
var ErrUnknownProduct = errors.New("unknown product")

// ProductStatus represents catalog availability
type ProductStatus string

const (
	ProductStatusInStock    ProductStatus = "In Stock"
	ProductStatusOutOfStock ProductStatus = "Out of Stock"
)

// Product is a read-only catalog entry. The checkout core only reads ID and Price;
// the remaining fields exist for the storefront grid.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Status   ProductStatus   `json:"status"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Sales    []int           `json:"sales"`
}

// Catalog is an ordered, immutable product list with stable integer ids
type Catalog []Product

// FindByIDs resolves catalog entries for the given ids, preserving catalog order
func (c Catalog) FindByIDs(ids []int64) ([]Product, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	products := make([]Product, 0, len(ids))
	for _, p := range c {
		if wanted[p.ID] {
			products = append(products, p)
			delete(wanted, p.ID)
		}
	}

	for id := range wanted {
		return nil, errors.Wrapf(ErrUnknownProduct, "id %d", id)
	}

	return products, nil
}

// Total sums the prices of the given products with exact decimal arithmetic
func Total(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
