//go:build unit

package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/domain/checkout"
	"pos-terminal/internal/infra/backend"
	"pos-terminal/internal/pkg/config"
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/usecase/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, handler http.Handler) *backend.Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig().Backend
	cfg.BaseURL = srv.URL
	cfg.APIToken = "backend-token"
	return backend.NewGatewayWithClient(cfg, &http.Client{Timeout: 2 * time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGateway_FetchProducts(t *testing.T) {
	t.Run("商品一覧を取得できる", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			assert.Equal(t, "Bearer backend-token", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `[
				{"id": 1, "name": "Cola", "price": 2.5, "barcode": "7790001000011", "stock_quantity": 10},
				{"id": 2, "name": "Chips", "price": 3, "barcode": null, "stock_quantity": 0}
			]`)
		}))

		products, err := g.FetchProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, catalog.ProductID(1), products[0].ID())
		assert.True(t, decimal.RequireFromString("2.50").Equal(products[0].Price()))
		assert.Equal(t, "7790001000011", products[0].Barcode())
		assert.False(t, products[1].HasBarcode())
	})

	t.Run("detailなしの5xxは通信エラー扱い", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, err := g.FetchProducts(context.Background())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrTransport))
	})

	t.Run("壊れたJSONは通信エラー扱い", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"not": "a list"`)
		}))

		_, err := g.FetchProducts(context.Background())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrTransport))
	})
}

func TestGateway_FetchClients(t *testing.T) {
	t.Run("エンドポイントがなければ空リスト", func(t *testing.T) {
		g := newGateway(t, http.NotFoundHandler())

		clients, err := g.FetchClients(context.Background())
		require.NoError(t, err)
		assert.Empty(t, clients)
	})

	t.Run("顧客一覧を取得できる", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[{"id": 10, "name": "Kiosco Norte"}]`)
		}))

		clients, err := g.FetchClients(context.Background())
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, catalog.ClientID(10), clients[0].ID())
		assert.Equal(t, "Kiosco Norte", clients[0].Name())
	})

	t.Run("到達できなければ通信エラー", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		cfg := config.NewTestConfig().Backend
		cfg.BaseURL = srv.URL
		srv.Close()
		g := backend.NewGatewayWithClient(cfg, &http.Client{Timeout: time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := g.FetchClients(context.Background())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrTransport))
	})
}

func TestGateway_SubmitSale(t *testing.T) {
	clientID := catalog.ClientID(10)
	req := checkout.Request{
		Items: []checkout.RequestItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		ClientID:   &clientID,
		AmountPaid: decimal.RequireFromString("10"),
	}

	t.Run("正常系: 販売IDを返す", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/sales", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			dec := json.NewDecoder(r.Body)
			dec.UseNumber()
			require.NoError(t, dec.Decode(&body))
			items := body["items"].([]any)
			require.Len(t, items, 2)
			first := items[0].(map[string]any)
			assert.Equal(t, json.Number("1"), first["product_id"])
			assert.Equal(t, json.Number("2"), first["quantity"])
			assert.Equal(t, json.Number("10"), body["client_id"])
			assert.Equal(t, json.Number("10"), body["amount_paid"])

			_, _ = io.WriteString(w, `{"id": 501, "total": 8.0}`)
		}))

		result, err := g.SubmitSale(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(501), result.ID)
	})

	t.Run("支払額は丸めずに送る", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			dec := json.NewDecoder(r.Body)
			dec.UseNumber()
			require.NoError(t, dec.Decode(&body))
			assert.Equal(t, json.Number("10.005"), body["amount_paid"])
			_, _ = io.WriteString(w, `{"id": 503}`)
		}))

		precise := req
		precise.AmountPaid = decimal.RequireFromString("10.005")
		result, err := g.SubmitSale(context.Background(), precise)
		require.NoError(t, err)
		assert.Equal(t, int64(503), result.ID)
	})

	t.Run("来店客の販売はclient_idを送らない", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, ok := body["client_id"]
			assert.False(t, ok)
			_, _ = io.WriteString(w, `{"id": 502}`)
		}))

		walkIn := req
		walkIn.ClientID = nil
		_, err := g.SubmitSale(context.Background(), walkIn)
		require.NoError(t, err)
	})

	t.Run("detail文字列はそのまま拒否理由になる", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"detail": "Insufficient stock for Cola"}`)
		}))

		_, err := g.SubmitSale(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSyncRejected))
		assert.Equal(t, "Insufficient stock for Cola", shared.OperatorMessage(err))

		var syncErr *shared.SyncError
		require.ErrorAs(t, err, &syncErr)
		assert.Equal(t, http.StatusBadRequest, syncErr.StatusCode)
	})

	t.Run("バリデーション形式のdetailはmsgを連結する", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"detail": [{"loc": ["body", "items"], "msg": "field required"}, {"msg": "bad amount"}]}`)
		}))

		_, err := g.SubmitSale(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, "field required; bad amount", shared.OperatorMessage(err))
	})

	t.Run("detailのない4xxはステータス文言で拒否", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))

		_, err := g.SubmitSale(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSyncRejected))
		assert.Equal(t, "Conflict", shared.OperatorMessage(err))
	})

	t.Run("detail付きの5xxは拒否扱い", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"detail": "database locked"}`)
		}))

		_, err := g.SubmitSale(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSyncRejected))
	})

	t.Run("IDのない成功応答は通信エラー扱い", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"ok": true}`)
		}))

		_, err := g.SubmitSale(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrTransport))
		assert.Equal(t, shared.ConnectivityMessage, shared.OperatorMessage(err))
	})
}

func TestGateway_FetchReceipt(t *testing.T) {
	t.Run("帳票を取得できる", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/sales/501/remito", r.URL.Path)
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="remito_501.pdf"`)
			_, _ = io.WriteString(w, "%PDF-1.4")
		}))

		receipt, err := g.FetchReceipt(context.Background(), 501)
		require.NoError(t, err)
		assert.Equal(t, int64(501), receipt.SaleID)
		assert.Equal(t, "application/pdf", receipt.ContentType)
		assert.Equal(t, "remito_501.pdf", receipt.Filename)
		assert.Equal(t, []byte("%PDF-1.4"), receipt.Body)
	})

	t.Run("存在しない販売は拒否", func(t *testing.T) {
		g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail": "Sale not found"}`)
		}))

		_, err := g.FetchReceipt(context.Background(), 999)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSyncRejected))
	})
}
