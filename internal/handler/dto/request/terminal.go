package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/usecase/commands"
)

// Text accepts a JSON string or a bare number and keeps the raw text, so
// operator input like "10,50" and 10.5 reach the domain parser unchanged.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

func (t *Text) Ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	// Invalid or missing quantities count as 1.
	Quantity Text `json:"quantity" swaggertype:"string"`
}

func (r *AddItemRequest) ToDomain() (catalog.ProductID, string) {
	return catalog.ProductID(r.ProductID), strings.TrimSpace(string(r.Quantity))
}

type BeginCheckoutRequest struct {
	// Omit for a walk-in sale.
	ClientID *int64 `json:"client_id" binding:"omitempty,min=1"`
}

type UpdateCheckoutRequest struct {
	AmountPaid *Text  `json:"amount_paid" swaggertype:"string"`
	ClientID   *int64 `json:"client_id" binding:"omitempty,min=1"`
	WalkIn     bool   `json:"walk_in"`
}

func (r *UpdateCheckoutRequest) ToInput() commands.UpdateCheckoutInput {
	return commands.UpdateCheckoutInput{
		AmountPaid: r.AmountPaid.Ptr(),
		ClientID:   r.ClientID,
		WalkIn:     r.WalkIn,
	}
}
