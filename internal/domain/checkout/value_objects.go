package checkout

import (
	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/pkg/money"

	"github.com/shopspring/decimal"
)

// Draft is the editable content of the payment dialog.
type Draft struct {
	Total      decimal.Decimal
	Client     catalog.ClientRef
	AmountPaid string
}

// Change is amount paid minus total, for display only. ok is false while the
// amount field does not hold a valid number.
func (d Draft) Change() (change decimal.Decimal, ok bool) {
	paid, err := money.ParseAmount(d.AmountPaid)
	if err != nil {
		return decimal.Zero, false
	}
	return paid.Sub(d.Total), true
}

type RequestItem struct {
	ProductID catalog.ProductID
	Quantity  int
}

// Request carries ids and quantities only; the backend is authoritative on price.
type Request struct {
	Items      []RequestItem
	ClientID   *catalog.ClientID
	AmountPaid decimal.Decimal
}

type SaleResult struct {
	ID int64
}

type Snapshot struct {
	State     State
	Draft     Draft
	LastError string
	LastSale  *SaleResult
}
