package shared

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports_mock.go -package=sharedmock

import (
	"context"

	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/domain/checkout"
)

// SyncGateway is the only way the terminal talks to the backend.
type SyncGateway interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
	// FetchClients degrades to an empty list when the backend has no client directory.
	FetchClients(ctx context.Context) ([]catalog.Client, error)
	SubmitSale(ctx context.Context, req checkout.Request) (checkout.SaleResult, error)
	FetchReceipt(ctx context.Context, saleID int64) (*Receipt, error)
}

// CheckoutRecorder receives business events for metrics.
type CheckoutRecorder interface {
	CheckoutSettled()
	CheckoutFailed(reason string)
	CatalogRefreshed(list string, err error)
}

type Receipt struct {
	SaleID      int64
	ContentType string
	Filename    string
	Body        []byte
}
