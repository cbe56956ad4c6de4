package backend

import (
	"encoding/json"
	"strings"

	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/domain/checkout"

	"github.com/shopspring/decimal"
)

type productDTO struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Barcode       *string         `json:"barcode"`
	StockQuantity int             `json:"stock_quantity"`
}

func (d productDTO) toDomain() catalog.Product {
	var barcode string
	if d.Barcode != nil {
		barcode = *d.Barcode
	}
	return catalog.NewProduct(catalog.ProductID(d.ID), d.Name, d.Price, barcode, d.StockQuantity)
}

type clientDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (d clientDTO) toDomain() catalog.Client {
	return catalog.NewClient(catalog.ClientID(d.ID), d.Name)
}

type saleItemDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type saleRequestDTO struct {
	Items      []saleItemDTO `json:"items"`
	ClientID   *int64        `json:"client_id,omitempty"`
	AmountPaid json.Number   `json:"amount_paid"`
}

func newSaleRequestDTO(req checkout.Request) saleRequestDTO {
	items := make([]saleItemDTO, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, saleItemDTO{ProductID: int64(it.ProductID), Quantity: it.Quantity})
	}
	var clientID *int64
	if req.ClientID != nil {
		id := int64(*req.ClientID)
		clientID = &id
	}
	return saleRequestDTO{
		Items:      items,
		ClientID:   clientID,
		AmountPaid: json.Number(req.AmountPaid.String()),
	}
}

type saleResponseDTO struct {
	ID *int64 `json:"id"`
}

// errorDTO covers both `{"detail": "..."}` and the validation form
// `{"detail": [{"msg": "..."}]}`.
type errorDTO struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItemDTO struct {
	Msg string `json:"msg"`
}

func parseDetail(body []byte) string {
	var e errorDTO
	if err := json.Unmarshal(body, &e); err != nil || len(e.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var items []validationItemDTO
	if err := json.Unmarshal(e.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if m := strings.TrimSpace(it.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
