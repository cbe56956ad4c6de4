package readmodel

const (
	ConfirmLabel    = "Confirm sale"
	ProcessingLabel = "Processing..."
)

type ProductCardRM struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Barcode       string `json:"barcode,omitempty"`
	StockQuantity int    `json:"stock_quantity"`
}

type ClientOptionRM struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type CartLineRM struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CartRM struct {
	Lines     []CartLineRM `json:"lines"`
	ItemCount int          `json:"item_count"`
	Total     string       `json:"total"`
	Empty     bool         `json:"empty"`
}

// CheckoutRM is the payment dialog. ConfirmEnabled/ConfirmLabel model the
// confirm button being locked while a sale is in flight.
type CheckoutRM struct {
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

type TerminalRM struct {
	TerminalID string           `json:"terminal_id"`
	Products   []ProductCardRM  `json:"products"`
	Clients    []ClientOptionRM `json:"clients"`
	Cart       CartRM           `json:"cart"`
	Checkout   CheckoutRM       `json:"checkout"`
}

// SearchRM answers the search/scan input. ClearTerm is set after a scan-to-add.
type SearchRM struct {
	Term      string          `json:"term"`
	ClearTerm bool            `json:"clear_term"`
	Added     *CartLineRM     `json:"added,omitempty"`
	Products  []ProductCardRM `json:"products"`
	Cart      CartRM          `json:"cart"`
}

type SettlementRM struct {
	SaleID     int64      `json:"sale_id"`
	AmountPaid string     `json:"amount_paid"`
	Total      string     `json:"total"`
	Change     string     `json:"change"`
	ReceiptURL string     `json:"receipt_url"`
	Cart       CartRM     `json:"cart"`
	Checkout   CheckoutRM `json:"checkout"`
}
