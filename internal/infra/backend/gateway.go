package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/domain/checkout"
	"pos-terminal/internal/pkg/config"
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/usecase/shared"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	opFetchProducts = "fetch products"
	opFetchClients  = "fetch clients"
	opSubmitSale    = "submit sale"
	opFetchReceipt  = "fetch receipt"

	maxJSONBody    = 8 << 20
	maxReceiptBody = 16 << 20
)

var ErrMissingSaleID = errs.New("sale response has no id")

// Gateway is the HTTP implementation of shared.SyncGateway.
type Gateway struct {
	client  *http.Client
	cfg     config.BackendConfig
	baseURL string
	logger  *slog.Logger
}

func NewGateway(cfg config.Config, logger *slog.Logger) *Gateway {
	client := &http.Client{
		Timeout:   cfg.Backend.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return NewGatewayWithClient(cfg.Backend, client, logger)
}

func NewGatewayWithClient(cfg config.BackendConfig, client *http.Client, logger *slog.Logger) *Gateway {
	return &Gateway{
		client:  client,
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger.With("component", "backend_gateway"),
	}
}

func (g *Gateway) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	resp, err := g.do(ctx, opFetchProducts, http.MethodGet, g.cfg.ProductsPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := g.checkStatus(opFetchProducts, resp); err != nil {
		return nil, err
	}

	var dtos []productDTO
	if err := decodeJSON(resp.Body, &dtos); err != nil {
		return nil, shared.NewTransportError(opFetchProducts, err)
	}
	products := make([]catalog.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (g *Gateway) FetchClients(ctx context.Context) ([]catalog.Client, error) {
	resp, err := g.do(ctx, opFetchClients, http.MethodGet, g.cfg.ClientsPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// the client directory is optional on the backend side
	if !isSuccess(resp.StatusCode) {
		g.logger.Info("client directory unavailable", "status", resp.StatusCode)
		drain(resp.Body)
		return []catalog.Client{}, nil
	}

	var dtos []clientDTO
	if err := decodeJSON(resp.Body, &dtos); err != nil {
		return nil, shared.NewTransportError(opFetchClients, err)
	}
	clients := make([]catalog.Client, 0, len(dtos))
	for _, d := range dtos {
		clients = append(clients, d.toDomain())
	}
	return clients, nil
}

func (g *Gateway) SubmitSale(ctx context.Context, req checkout.Request) (checkout.SaleResult, error) {
	body, err := json.Marshal(newSaleRequestDTO(req))
	if err != nil {
		return checkout.SaleResult{}, errs.Wrap(err, "encode sale request")
	}

	resp, err := g.do(ctx, opSubmitSale, http.MethodPost, g.cfg.SalesPath, body)
	if err != nil {
		return checkout.SaleResult{}, err
	}
	defer resp.Body.Close()

	if err := g.checkStatus(opSubmitSale, resp); err != nil {
		return checkout.SaleResult{}, err
	}

	// the sale may already exist at this point, so an unreadable answer is not a rejection
	var dto saleResponseDTO
	if err := decodeJSON(resp.Body, &dto); err != nil {
		return checkout.SaleResult{}, shared.NewTransportError(opSubmitSale, err)
	}
	if dto.ID == nil {
		return checkout.SaleResult{}, shared.NewTransportError(opSubmitSale, ErrMissingSaleID)
	}
	g.logger.Info("sale accepted", "sale_id", *dto.ID, "items", len(req.Items))
	return checkout.SaleResult{ID: *dto.ID}, nil
}

func (g *Gateway) FetchReceipt(ctx context.Context, saleID int64) (*shared.Receipt, error) {
	path := strings.ReplaceAll(g.cfg.ReceiptPath, "{id}", strconv.FormatInt(saleID, 10))
	resp, err := g.do(ctx, opFetchReceipt, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := g.checkStatus(opFetchReceipt, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReceiptBody))
	if err != nil {
		return nil, shared.NewTransportError(opFetchReceipt, err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return &shared.Receipt{
		SaleID:      saleID,
		ContentType: contentType,
		Filename:    receiptFilename(resp.Header.Get("Content-Disposition"), saleID),
		Body:        body,
	}, nil
}

func (g *Gateway) do(ctx context.Context, op, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, errs.Wrapf(err, "build %s request", op)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.APIToken)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("backend unreachable", "op", op, "error", err)
		return nil, shared.NewTransportError(op, err)
	}
	g.logger.Debug("backend call", "op", op, "method", method, "path", path, "status", resp.StatusCode)
	return resp, nil
}

// checkStatus classifies non-2xx answers. A readable detail or any 4xx is a
// rejection; a bare 5xx is treated like an unreachable backend.
func (g *Gateway) checkStatus(op string, resp *http.Response) error {
	if isSuccess(resp.StatusCode) {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	detail := parseDetail(raw)
	switch {
	case detail != "":
		return shared.NewSyncError(op, resp.StatusCode, detail)
	case resp.StatusCode < http.StatusInternalServerError:
		return shared.NewSyncError(op, resp.StatusCode, http.StatusText(resp.StatusCode))
	default:
		return shared.NewTransportError(op, errs.Newf("backend answered %d", resp.StatusCode))
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func decodeJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(io.LimitReader(r, maxJSONBody)).Decode(v); err != nil {
		return errs.Wrap(err, "decode backend response")
	}
	return nil
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, maxJSONBody))
}

func receiptFilename(disposition string, saleID int64) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return params["filename"]
		}
	}
	return "remito-" + strconv.FormatInt(saleID, 10)
}
