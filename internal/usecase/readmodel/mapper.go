package readmodel

import (
	"pos-terminal/internal/domain/cart"
	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/domain/checkout"
	"pos-terminal/internal/pkg/money"
)

// Formatter turns domain snapshots into view models. Rounding to cents happens here only.
type Formatter struct {
	Symbol string
}

func NewFormatter(symbol string) Formatter {
	return Formatter{Symbol: symbol}
}

func (f Formatter) ProductCards(products []catalog.Product) []ProductCardRM {
	res := make([]ProductCardRM, len(products))
	for i, p := range products {
		res[i] = ProductCardRM{
			ID:            int64(p.ID()),
			Name:          p.Name(),
			Price:         money.Format(f.Symbol, p.Price()),
			Barcode:       p.Barcode(),
			StockQuantity: p.StockQuantity(),
		}
	}
	return res
}

// ClientOptions always starts with the walk-in option.
func (f Formatter) ClientOptions(clients []catalog.Client) []ClientOptionRM {
	res := make([]ClientOptionRM, 0, len(clients)+1)
	res = append(res, ClientOptionRM{Name: catalog.WalkInName})
	for _, c := range clients {
		id := int64(c.ID())
		res = append(res, ClientOptionRM{ID: &id, Name: c.Name()})
	}
	return res
}

func (f Formatter) CartLine(l cart.LineItem) CartLineRM {
	return CartLineRM{
		ProductID: int64(l.ProductID()),
		Name:      l.Name(),
		Quantity:  l.Quantity().Int(),
		UnitPrice: money.Format(f.Symbol, l.UnitPrice()),
		LineTotal: money.Format(f.Symbol, l.Subtotal()),
	}
}

func (f Formatter) Cart(s cart.Snapshot) CartRM {
	lines := make([]CartLineRM, len(s.Lines))
	count := 0
	for i, l := range s.Lines {
		lines[i] = f.CartLine(l)
		count += l.Quantity().Int()
	}
	return CartRM{
		Lines:     lines,
		ItemCount: count,
		Total:     money.Format(f.Symbol, s.Total),
		Empty:     len(s.Lines) == 0,
	}
}

func (f Formatter) Checkout(s checkout.Snapshot) CheckoutRM {
	rm := CheckoutRM{
		State:          s.State.String(),
		Open:           s.State == checkout.StateReviewing || s.State == checkout.StateSubmitting,
		ConfirmEnabled: s.State == checkout.StateReviewing,
		ConfirmLabel:   ConfirmLabel,
		Error:          s.LastError,
	}
	if s.State.IsLocked() {
		rm.ConfirmLabel = ProcessingLabel
	}
	if s.LastSale != nil {
		id := s.LastSale.ID
		rm.LastSaleID = &id
	}
	if !rm.Open {
		return rm
	}

	rm.Total = money.Format(f.Symbol, s.Draft.Total)
	rm.AmountPaid = s.Draft.AmountPaid
	rm.ClientName = s.Draft.Client.Name()
	if id := s.Draft.Client.ID(); id != nil {
		v := int64(*id)
		rm.ClientID = &v
	}
	if change, ok := s.Draft.Change(); ok {
		rm.Change = money.Format(f.Symbol, change)
	}
	return rm
}
