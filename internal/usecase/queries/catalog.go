package queries

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/usecase/shared"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
)

var (
	ErrProductNotFound = errs.Mark(errs.New("product not found in catalog"), errs.ErrNotFound)
	ErrClientNotFound  = errs.Mark(errs.New("client not found"), errs.ErrNotFound)
)

const (
	listProducts = "products"
	listClients  = "clients"
)

// CatalogCache holds the last lists fetched from the backend. Lists are only
// ever replaced wholesale.
type CatalogCache struct {
	gateway  shared.SyncGateway
	recorder shared.CheckoutRecorder
	logger   *slog.Logger

	mu          sync.RWMutex
	products    []catalog.Product
	productsSeq uint64
	clients     []catalog.Client
	loaded      bool

	sfg     singleflight.Group // collapses concurrent refreshes of the same list
	fetches atomic.Uint64      // numbers product fetches in start order
}

func NewCatalogCache(gateway shared.SyncGateway, recorder shared.CheckoutRecorder, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		gateway:  gateway,
		recorder: recorder,
		logger:   logger,
	}
}

// RefreshProducts keeps the previous list when the backend call fails.
// Concurrent callers share one backend request.
func (c *CatalogCache) RefreshProducts(ctx context.Context) error {
	return c.refreshProducts(ctx, false)
}

// ReloadProducts always issues a new backend request instead of joining one
// already in flight, so the result reflects every write made before the call.
func (c *CatalogCache) ReloadProducts(ctx context.Context) error {
	return c.refreshProducts(ctx, true)
}

func (c *CatalogCache) refreshProducts(ctx context.Context, fresh bool) error {
	if fresh {
		c.sfg.Forget(listProducts)
	}
	// the shared fetch outlives any single caller
	fetchCtx := context.WithoutCancel(ctx)
	err := c.await(ctx, listProducts, func() (any, error) {
		seq := c.fetches.Add(1)
		products, err := c.gateway.FetchProducts(fetchCtx)
		c.recorder.CatalogRefreshed(listProducts, err)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if seq < c.productsSeq {
			c.logger.Debug("discarding product list older than the cached one")
			return nil, nil
		}
		c.products = products
		c.productsSeq = seq
		c.loaded = true
		c.logger.Debug("product catalog refreshed", "count", len(products))
		return nil, nil
	})
	return errs.Wrap(err, "refresh products")
}

// RefreshClients falls back to an empty directory on failure: sales are then walk-in only.
func (c *CatalogCache) RefreshClients(ctx context.Context) error {
	fetchCtx := context.WithoutCancel(ctx)
	err := c.await(ctx, listClients, func() (any, error) {
		clients, err := c.gateway.FetchClients(fetchCtx)
		c.recorder.CatalogRefreshed(listClients, err)
		if err != nil {
			clients = nil
		}
		c.mu.Lock()
		c.clients = clients
		c.mu.Unlock()
		return nil, err
	})
	return errs.Wrap(err, "refresh clients")
}

// await joins the flight for key but stops waiting when ctx is done.
func (c *CatalogCache) await(ctx context.Context, key string, fn func() (any, error)) error {
	select {
	case res := <-c.sfg.DoChan(key, fn):
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh reloads both lists; only the product failure is returned.
func (c *CatalogCache) Refresh(ctx context.Context) error {
	if err := c.RefreshClients(ctx); err != nil {
		c.logger.Warn("client directory unavailable, walk-in sales only", "error", err)
	}
	return c.RefreshProducts(ctx)
}

func (c *CatalogCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *CatalogCache) Products(_ context.Context) []catalog.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.products)
}

func (c *CatalogCache) Clients(_ context.Context) []catalog.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.clients)
}

func (c *CatalogCache) ProductByID(id catalog.ProductID) (catalog.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := slices.IndexFunc(c.products, func(p catalog.Product) bool { return p.ID() == id })
	if i < 0 {
		return catalog.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

func (c *CatalogCache) ClientByID(id catalog.ClientID) (catalog.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := slices.IndexFunc(c.clients, func(cl catalog.Client) bool { return cl.ID() == id })
	if i < 0 {
		return catalog.Client{}, ErrClientNotFound
	}
	return c.clients[i], nil
}

// Search matches name case-insensitively or barcode as a substring, in catalog order.
func (c *CatalogCache) Search(_ context.Context, term string) []catalog.Product {
	term = strings.TrimSpace(term)

	c.mu.RLock()
	defer c.mu.RUnlock()
	if term == "" {
		return slices.Clone(c.products)
	}

	// Casers are stateful, one per call
	fold := cases.Fold()
	needle := fold.String(term)
	result := make([]catalog.Product, 0)
	for _, p := range c.products {
		if strings.Contains(fold.String(p.Name()), needle) ||
			(p.HasBarcode() && strings.Contains(fold.String(p.Barcode()), needle)) {
			result = append(result, p)
		}
	}
	return result
}

// MatchBarcode returns the product whose barcode equals term exactly.
func (c *CatalogCache) MatchBarcode(term string) (catalog.Product, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return catalog.Product{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	i := slices.IndexFunc(c.products, func(p catalog.Product) bool { return p.Barcode() == term })
	if i < 0 {
		return catalog.Product{}, false
	}
	return c.products[i], true
}
