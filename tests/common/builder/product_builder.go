//go:build unit || e2e

package builder

import (
	"pos-terminal/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID            int64
	Name          string
	Price         string
	Barcode       string
	StockQuantity int
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:            1,
		Name:          "Cola",
		Price:         "2.50",
		Barcode:       "00000001",
		StockQuantity: 10,
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ProductBuilder) BuildDomain() catalog.Product {
	return catalog.NewProduct(catalog.ProductID(b.ID), b.Name, decimal.RequireFromString(b.Price), b.Barcode, b.StockQuantity)
}

// Fluent builder methods
func (b *ProductBuilder) WithID(id int64) *ProductBuilder {
	b.ID = id
	return b
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.Name = name
	return b
}

func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.Price = price
	return b
}

func (b *ProductBuilder) WithBarcode(barcode string) *ProductBuilder {
	b.Barcode = barcode
	return b
}

func (b *ProductBuilder) WithStock(qty int) *ProductBuilder {
	b.StockQuantity = qty
	return b
}

func (b *ProductBuilder) AsCola() *ProductBuilder {
	b.ID = 1
	b.Name = "Cola"
	b.Price = "2.50"
	b.Barcode = "7790001000011"
	return b
}

func (b *ProductBuilder) AsChips() *ProductBuilder {
	b.ID = 2
	b.Name = "Chips"
	b.Price = "3.00"
	b.Barcode = "7790001000028"
	return b
}

func (b *ProductBuilder) AsYerba() *ProductBuilder {
	b.ID = 3
	b.Name = "Yerba Mate 1kg"
	b.Price = "4.75"
	b.Barcode = "7790001000035"
	return b
}

// DefaultCatalog is the small product list shared by usecase and handler tests.
func DefaultCatalog() []catalog.Product {
	return []catalog.Product{
		NewProductBuilder().AsCola().BuildDomain(),
		NewProductBuilder().AsChips().BuildDomain(),
		NewProductBuilder().AsYerba().BuildDomain(),
	}
}

func DefaultClients() []catalog.Client {
	return []catalog.Client{
		catalog.NewClient(10, "Kiosco Norte"),
		catalog.NewClient(11, "Almacén Sur"),
	}
}
