package commands

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/pkg/clock"
	"pos-terminal/internal/pkg/config"
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/usecase/queries"
	"pos-terminal/internal/usecase/readmodel"
	"pos-terminal/internal/usecase/shared"
)

var ErrInvalidTerminalID = errs.Mark(errs.New("terminal id is required"), errs.ErrDomainValidation)

// catalogRetryInterval spaces out lazy catalog loads while the backend is down.
const catalogRetryInterval = 30 * time.Second

//go:generate mockgen -source=terminal_commands.go -destination=../../../tests/mock/commands/terminal_commands_mock.go -package=commandsmock

type TerminalCommands interface {
	View(ctx context.Context, terminalID string) (*readmodel.TerminalRM, error)
	Search(ctx context.Context, terminalID, term, quantity string) (*readmodel.SearchRM, error)
	AddItem(ctx context.Context, terminalID string, productID catalog.ProductID, quantity string) (*readmodel.CartRM, error)
	RemoveItem(ctx context.Context, terminalID string, productID catalog.ProductID) (*readmodel.CartRM, error)
	BeginCheckout(ctx context.Context, terminalID string, clientID *int64) (*readmodel.CheckoutRM, error)
	UpdateCheckout(ctx context.Context, terminalID string, in UpdateCheckoutInput) (*readmodel.CheckoutRM, error)
	CancelCheckout(ctx context.Context, terminalID string) (*readmodel.CheckoutRM, error)
	ConfirmCheckout(ctx context.Context, terminalID string) (*readmodel.SettlementRM, error)
	Receipt(ctx context.Context, terminalID string, saleID int64) (*shared.Receipt, error)
	Subscribe(ctx context.Context, terminalID string, fn ViewListener) (unsubscribe func(), err error)
	RefreshCatalog(ctx context.Context) error
}

// TerminalRegistry owns the live terminal sessions keyed by terminal id.
type TerminalRegistry struct {
	deps    TerminalDeps
	idleTTL time.Duration

	mu        sync.Mutex
	terminals map[string]*Terminal
}

func NewTerminalRegistry(
	catalogCache *queries.CatalogCache,
	gateway shared.SyncGateway,
	recorder shared.CheckoutRecorder,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *TerminalRegistry {
	return &TerminalRegistry{
		deps: TerminalDeps{
			Catalog:  catalogCache,
			Gateway:  gateway,
			Recorder: recorder,
			Format:   readmodel.NewFormatter(cfg.Terminal.CurrencySymbol),
			Clock:    clk,
			Logger:   logger,
		},
		idleTTL:   cfg.Terminal.IdleTTL,
		terminals: make(map[string]*Terminal),
	}
}

// Get returns the session for id, creating it on first use.
func (r *TerminalRegistry) Get(id string) (*Terminal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidTerminalID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// touched under r.mu so Sweep cannot evict a session a request is about to use
	if t, ok := r.terminals[id]; ok {
		t.touch()
		return t, nil
	}
	t := NewTerminal(id, r.deps)
	r.terminals[id] = t
	r.deps.Logger.Info("terminal session opened", "terminal_id", id)
	return t, nil
}

func (r *TerminalRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.terminals)
}

// Sweep drops sessions idle for longer than the configured TTL. Sessions that
// are submitting or have a live event stream are kept.
func (r *TerminalRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, t := range r.terminals {
		if t.Busy() || !clock.IdleFor(r.deps.Clock, t.IdleSince(), r.idleTTL) {
			continue
		}
		delete(r.terminals, id)
		evicted++
		r.deps.Logger.Info("terminal session evicted", "terminal_id", id)
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (r *TerminalRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *TerminalRegistry) each(fn func(*Terminal)) {
	r.mu.Lock()
	terminals := make([]*Terminal, 0, len(r.terminals))
	for _, t := range r.terminals {
		terminals = append(terminals, t)
	}
	r.mu.Unlock()

	for _, t := range terminals {
		fn(t)
	}
}

type terminalCommandsImpl struct {
	registry *TerminalRegistry
	catalog  *queries.CatalogCache
	clock    clock.Clock
	logger   *slog.Logger

	loadMu      sync.Mutex
	lastLoadTry time.Time
}

func NewTerminalCommands(registry *TerminalRegistry, catalogCache *queries.CatalogCache, logger *slog.Logger) TerminalCommands {
	return &terminalCommandsImpl{
		registry: registry,
		catalog:  catalogCache,
		clock:    registry.deps.Clock,
		logger:   logger,
	}
}

func (uc *terminalCommandsImpl) View(ctx context.Context, terminalID string) (*readmodel.TerminalRM, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.View(ctx), nil
}

func (uc *terminalCommandsImpl) Search(ctx context.Context, terminalID, term, quantity string) (*readmodel.SearchRM, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.Search(ctx, term, quantity)
}

func (uc *terminalCommandsImpl) AddItem(ctx context.Context, terminalID string, productID catalog.ProductID, quantity string) (*readmodel.CartRM, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.AddItem(ctx, productID, quantity)
}

func (uc *terminalCommandsImpl) RemoveItem(ctx context.Context, terminalID string, productID catalog.ProductID) (*readmodel.CartRM, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.RemoveItem(ctx, productID)
}

func (uc *terminalCommandsImpl) BeginCheckout(ctx context.Context, terminalID string, clientID *int64) (*readmodel.CheckoutRM, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.BeginCheckout(ctx, clientID)
}

func (uc *terminalCommandsImpl) UpdateCheckout(ctx context.Context, terminalID string, in UpdateCheckoutInput) (*readmodel.CheckoutRM, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.UpdateCheckout(ctx, in)
}

func (uc *terminalCommandsImpl) CancelCheckout(ctx context.Context, terminalID string) (*readmodel.CheckoutRM, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.CancelCheckout(ctx)
}

func (uc *terminalCommandsImpl) ConfirmCheckout(ctx context.Context, terminalID string) (*readmodel.SettlementRM, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.ConfirmCheckout(ctx)
}

func (uc *terminalCommandsImpl) Receipt(ctx context.Context, terminalID string, saleID int64) (*shared.Receipt, error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.Receipt(ctx, saleID)
}

func (uc *terminalCommandsImpl) Subscribe(ctx context.Context, terminalID string, fn ViewListener) (func(), error) {
	t, err := uc.terminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return t.Subscribe(fn), nil
}

// RefreshCatalog reloads both lists and re-renders every open session.
func (uc *terminalCommandsImpl) RefreshCatalog(ctx context.Context) error {
	err := uc.catalog.Refresh(ctx)
	uc.registry.each(func(t *Terminal) { t.Publish() })
	if err != nil {
		return errs.Wrap(err, "refresh catalog")
	}
	return nil
}

// terminal resolves the session and loads the catalog on first use.
func (uc *terminalCommandsImpl) terminal(ctx context.Context, terminalID string) (*Terminal, error) {
	t, err := uc.registry.Get(terminalID)
	if err != nil {
		return nil, err
	}
	uc.ensureCatalog(ctx)
	return t, nil
}

// ensureCatalog loads the catalog on first use. While the backend is down at
// most one request per catalogRetryInterval waits on it; the rest browse the
// empty catalog.
func (uc *terminalCommandsImpl) ensureCatalog(ctx context.Context) {
	if uc.catalog.Loaded() {
		return
	}
	now := uc.clock.Now()
	uc.loadMu.Lock()
	if !uc.lastLoadTry.IsZero() && now.Sub(uc.lastLoadTry) < catalogRetryInterval {
		uc.loadMu.Unlock()
		return
	}
	uc.lastLoadTry = now
	uc.loadMu.Unlock()

	if err := uc.catalog.Refresh(ctx); err != nil {
		uc.logger.Warn("catalog not loaded yet", "error", err, "retry_in", catalogRetryInterval)
	}
}
