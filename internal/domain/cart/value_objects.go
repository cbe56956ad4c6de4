package cart

import (
	"strconv"
	"strings"

	"pos-terminal/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

// Quantity is always positive. Invalid input collapses to 1, which is what a
// scanner produces while the quantity field is being edited.
type Quantity int

func NewQuantity(n int) Quantity {
	if n <= 0 {
		return 1
	}
	return Quantity(n)
}

func ParseQuantity(raw string) Quantity {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return NewQuantity(n)
}

func (q Quantity) Int() int { return int(q) }

// LineItem keeps the name and unit price seen when the product was first added.
type LineItem struct {
	productID catalog.ProductID
	name      string
	unitPrice decimal.Decimal
	quantity  Quantity
}

func newLineItem(p catalog.Product, q Quantity) LineItem {
	return LineItem{
		productID: p.ID(),
		name:      p.Name(),
		unitPrice: p.Price(),
		quantity:  q,
	}
}

func (l LineItem) ProductID() catalog.ProductID { return l.productID }
func (l LineItem) Name() string                 { return l.name }
func (l LineItem) UnitPrice() decimal.Decimal   { return l.unitPrice }
func (l LineItem) Quantity() Quantity           { return l.quantity }

func (l LineItem) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}
