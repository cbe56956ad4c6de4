package response

import (
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/usecase/readmodel"

	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Barcode       string `json:"barcode,omitempty"`
	StockQuantity int    `json:"stock_quantity"`
}

type ClientOptionResponse struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type CartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Total     string             `json:"total"`
	Empty     bool               `json:"empty"`
}

type CheckoutResponse struct {
	State          string `json:"state"`
	Open           bool   `json:"open"`
	Total          string `json:"total,omitempty"`
	ClientID       *int64 `json:"client_id"`
	ClientName     string `json:"client_name,omitempty"`
	AmountPaid     string `json:"amount_paid,omitempty"`
	Change         string `json:"change,omitempty"`
	ConfirmEnabled bool   `json:"confirm_enabled"`
	ConfirmLabel   string `json:"confirm_label"`
	Error          string `json:"error,omitempty"`
	LastSaleID     *int64 `json:"last_sale_id,omitempty"`
}

type TerminalResponse struct {
	TerminalID string                 `json:"terminal_id"`
	Products   []ProductResponse      `json:"products"`
	Clients    []ClientOptionResponse `json:"clients"`
	Cart       CartResponse           `json:"cart"`
	Checkout   CheckoutResponse       `json:"checkout"`
}

type SearchResponse struct {
	Term      string            `json:"term"`
	ClearTerm bool              `json:"clear_term"`
	Added     *CartLineResponse `json:"added,omitempty"`
	Products  []ProductResponse `json:"products"`
	Cart      CartResponse      `json:"cart"`
}

type SettlementResponse struct {
	SaleID     int64            `json:"sale_id"`
	AmountPaid string           `json:"amount_paid"`
	Total      string           `json:"total"`
	Change     string           `json:"change"`
	ReceiptURL string           `json:"receipt_url"`
	Cart       CartResponse     `json:"cart"`
	Checkout   CheckoutResponse `json:"checkout"`
}

func FromTerminalRM(rm *readmodel.TerminalRM) (*TerminalResponse, error) {
	return mapInto[TerminalResponse](rm)
}

func FromSearchRM(rm *readmodel.SearchRM) (*SearchResponse, error) {
	return mapInto[SearchResponse](rm)
}

func FromCartRM(rm *readmodel.CartRM) (*CartResponse, error) {
	return mapInto[CartResponse](rm)
}

func FromCheckoutRM(rm *readmodel.CheckoutRM) (*CheckoutResponse, error) {
	return mapInto[CheckoutResponse](rm)
}

func FromSettlementRM(rm *readmodel.SettlementRM) (*SettlementResponse, error) {
	return mapInto[SettlementResponse](rm)
}

// mapInto copies a read model into its response twin; field names match one to one.
func mapInto[T any](src any) (*T, error) {
	var dst T
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, errs.Wrap(err, "map read model to response")
	}
	return &dst, nil
}
