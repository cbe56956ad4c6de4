package catalog

import (
	"github.com/shopspring/decimal"
)

type ProductID int64

type ClientID int64

// Product is a read-only snapshot of a backend product. The terminal never mutates it.
type Product struct {
	id            ProductID
	name          string
	price         decimal.Decimal
	barcode       string
	stockQuantity int
}

func NewProduct(id ProductID, name string, price decimal.Decimal, barcode string, stockQuantity int) Product {
	return Product{
		id:            id,
		name:          name,
		price:         price,
		barcode:       barcode,
		stockQuantity: stockQuantity,
	}
}

func (p Product) ID() ProductID          { return p.id }
func (p Product) Name() string           { return p.name }
func (p Product) Price() decimal.Decimal { return p.price }
func (p Product) Barcode() string        { return p.barcode }
func (p Product) StockQuantity() int     { return p.stockQuantity }
func (p Product) HasBarcode() bool       { return p.barcode != "" }

type Client struct {
	id   ClientID
	name string
}

func NewClient(id ClientID, name string) Client {
	return Client{id: id, name: name}
}

func (c Client) ID() ClientID   { return c.id }
func (c Client) Name() string   { return c.name }
func (c Client) Ref() ClientRef { id := c.id; return ClientRef{id: &id, name: c.name} }
